package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/api/util"
	"storefront/internal/core/model"
	"storefront/internal/core/service"
)

const defaultReadLimit = 6

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

type createProductRequest struct {
	Name      string  `json:"name"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
	UniqueKey string  `json:"uniqueKey"`
}

type updateProductRequest struct {
	Name      *string  `json:"name"`
	Quantity  *int64   `json:"quantity"`
	Price     *float64 `json:"price"`
	UniqueKey *string  `json:"uniqueKey"`
}

// Read lists the catalog. Query parameters: limit (default 6), skip,
// sort ("desc" for descending), by (sort field, default name), plus
// field filters; anything outside the filter allow-list is dropped.
func (h *ProductHandler) Read(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := parseIntDefault(query.Get("limit"), defaultReadLimit)
	skip := parseIntDefault(query.Get("skip"), 0)
	sortDesc := query.Get("sort") == "desc"
	sortBy := query.Get("by")
	if sortBy == "" {
		sortBy = "name"
	}

	filters := make(map[string]string)
	for field, values := range query {
		switch field {
		case "limit", "skip", "sort", "by":
			continue
		}
		if len(values) > 0 {
			filters[field] = values[0]
		}
	}

	products, err := h.productService.FindProducts(filters, limit, skip, sortBy, sortDesc)
	if err != nil {
		writeError(w, err)
		return
	}
	if products == nil {
		products = []*model.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, err := util.GetUserClaims(r)
	if err != nil {
		http.Error(w, "Invalid authorization token", http.StatusUnauthorized)
		return
	}
	if !util.CanManageCatalog(claims) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
		return
	}

	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	product, err := h.productService.CreateProduct(req.Name, req.Quantity, req.Price, req.UniqueKey)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, err := util.GetUserClaims(r)
	if err != nil {
		http.Error(w, "Invalid authorization token", http.StatusUnauthorized)
		return
	}
	if !util.CanManageCatalog(claims) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
		return
	}

	id := pathID(r.URL.Path, "/update")
	if id == "" {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Product not found"})
		return
	}

	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	product, err := h.productService.UpdateProduct(id, service.ProductUpdate{
		Name:      req.Name,
		Quantity:  req.Quantity,
		Price:     req.Price,
		UniqueKey: req.UniqueKey,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Delete removes one product by id, or the entire catalog when no id is
// given. The bulk path is deliberate: both operations sit behind the
// catalog-manage capability.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, err := util.GetUserClaims(r)
	if err != nil {
		http.Error(w, "Invalid authorization token", http.StatusUnauthorized)
		return
	}
	if !util.CanManageCatalog(claims) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
		return
	}

	id := pathID(r.URL.Path, "/delete")
	if id == "" {
		count, err := h.productService.DeleteAllProducts()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int64{"deletedCount": count})
		return
	}

	product, err := h.productService.DeleteProduct(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// pathID extracts the trailing id from prefix-style routes like
// /update/{id}; it returns "" when no id is present.
func pathID(path, prefix string) string {
	return strings.Trim(strings.TrimPrefix(path, prefix), "/")
}

// parseIntDefault falls back on anything that is not a non-negative
// integer; a negative limit must not turn into "no limit" downstream.
func parseIntDefault(value string, fallback int64) int64 {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
