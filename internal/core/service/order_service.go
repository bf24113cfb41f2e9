package service

import (
	"fmt"
	"log"

	"storefront/internal/core/model"
	"storefront/internal/core/repository"
)

type OrderService interface {
	// PlaceOrder creates an order for callerID and decrements the
	// referenced product's stock. userID must equal callerID; the order
	// always belongs to the authenticated caller.
	PlaceOrder(callerID, userID, productID string, quantity int64, productName string, totalPrice float64) (*model.Order, error)
	// ListOrders returns orders newest first: all of them for an admin,
	// otherwise only the caller's. Limit 0 means no limit.
	ListOrders(userID string, admin bool, limit, skip int64) ([]*model.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	products  ProductService
}

func NewOrderService(orderRepo repository.OrderRepository, products ProductService) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		products:  products,
	}
}

// PlaceOrder runs a two-collection saga: insert the order, then apply an
// atomic conditional decrement (quantity >= n) to the product. The guard
// keeps stock from going negative and makes one of two concurrent
// oversized orders lose cleanly. When the decrement does not go through,
// the order is compensated by deleting it; a failed compensation is
// surfaced as ErrPartialOrder.
func (s *orderService) PlaceOrder(callerID, userID, productID string, quantity int64, productName string, totalPrice float64) (*model.Order, error) {
	if userID != callerID {
		return nil, fmt.Errorf("%w: order user must be the authenticated caller", ErrUnauthorized)
	}
	if productID == "" || productName == "" {
		return nil, fmt.Errorf("%w: product is required", ErrValidation)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}

	// The existence check goes through the product service so repeated
	// orders against the same product hit its cache.
	if _, err := s.products.GetProduct(productID); err != nil {
		return nil, err
	}

	order := model.NewOrder(userID, productName, quantity, totalPrice)
	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	decremented, err := s.products.DecrementStock(productID, quantity)
	if err != nil {
		return nil, s.compensate(order, err)
	}
	if !decremented {
		return nil, s.compensate(order, fmt.Errorf("%w: product %s", ErrInsufficientStock, productID))
	}
	return order, nil
}

// compensate deletes the order created by a failed placement. If the
// delete itself fails, the store holds an order whose stock was never
// adjusted, which is reported as ErrPartialOrder rather than the
// original cause.
func (s *orderService) compensate(order *model.Order, cause error) error {
	if err := s.orderRepo.Delete(order.ID); err != nil {
		log.Printf("Failed to compensate order %s: %v", order.ID, err)
		return fmt.Errorf("%w: order %s: %v", ErrPartialOrder, order.ID, cause)
	}
	return cause
}

func (s *orderService) ListOrders(userID string, admin bool, limit, skip int64) ([]*model.Order, error) {
	if admin {
		return s.orderRepo.FindAll(limit, skip)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: invalid user ID", ErrValidation)
	}
	return s.orderRepo.FindByUser(userID, limit, skip)
}
