package handler

import (
	"encoding/json"
	"net/http"

	"storefront/internal/api/util"
	"storefront/internal/core/model"
	"storefront/internal/core/service"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

type createOrderRequest struct {
	User            string  `json:"user"`
	ProductID       string  `json:"productId"`
	ProductName     string  `json:"productName"`
	ProductQuantity int64   `json:"productQuantity"`
	TotalPrice      float64 `json:"totalPrice"`
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, err := util.GetUserClaims(r)
	if err != nil {
		http.Error(w, "Invalid authorization token", http.StatusUnauthorized)
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	order, err := h.orderService.PlaceOrder(claims.UserID, req.User, req.ProductID, req.ProductQuantity, req.ProductName, req.TotalPrice)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// List returns orders newest first. Admins see every order; everyone
// else sees their own. Unlike the catalog listing there is no default
// limit: an absent limit means all orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, err := util.GetUserClaims(r)
	if err != nil {
		http.Error(w, "Invalid authorization token", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query()
	limit := parseIntDefault(query.Get("limit"), 0)
	skip := parseIntDefault(query.Get("skip"), 0)

	orders, err := h.orderService.ListOrders(claims.UserID, claims.Admin, limit, skip)
	if err != nil {
		writeError(w, err)
		return
	}
	if orders == nil {
		orders = []*model.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}
