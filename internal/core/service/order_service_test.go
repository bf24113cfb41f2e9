package service

import (
	"errors"
	"testing"
	"time"

	"storefront/internal/core/model"
	"storefront/internal/core/repository"
)

func newOrderFixture(t *testing.T) (OrderService, *model.Product, repository.ProductRepository, repository.OrderRepository) {
	t.Helper()
	productRepo := repository.NewInMemoryProductRepository()
	orderRepo := repository.NewInMemoryOrderRepository()

	product := model.NewProduct("widget", 10, 9.99, "Widget-1")
	if err := productRepo.Create(product); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	return NewOrderService(orderRepo, NewProductService(productRepo)), product, productRepo, orderRepo
}

func TestPlaceOrderDecrementsStock(t *testing.T) {
	svc, product, productRepo, _ := newOrderFixture(t)

	order, err := svc.PlaceOrder("user-1", "user-1", product.ID, 3, "widget", 29.97)
	if err != nil {
		t.Fatalf("PlaceOrder() unexpected error: %v", err)
	}
	if order.User != "user-1" || order.ProductQuantity != 3 || order.ProductName != "widget" {
		t.Errorf("order fields = %+v", order)
	}

	stored, _ := productRepo.FindByID(product.ID)
	if stored.Quantity != 7 {
		t.Errorf("quantity = %d, want 7", stored.Quantity)
	}
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	svc, product, productRepo, orderRepo := newOrderFixture(t)

	// Two orders of 6 against a stock of 10: the first wins, the second
	// must fail on the conditional decrement instead of driving the
	// quantity negative.
	if _, err := svc.PlaceOrder("user-1", "user-1", product.ID, 6, "widget", 59.94); err != nil {
		t.Fatalf("PlaceOrder() unexpected error: %v", err)
	}
	if _, err := svc.PlaceOrder("user-2", "user-2", product.ID, 6, "widget", 59.94); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("PlaceOrder() error = %v, want ErrInsufficientStock", err)
	}

	stored, _ := productRepo.FindByID(product.ID)
	if stored.Quantity != 4 {
		t.Errorf("quantity = %d, want 4", stored.Quantity)
	}

	// The losing order must have been compensated away.
	orders, _ := orderRepo.FindAll(0, 0)
	if len(orders) != 1 {
		t.Errorf("orders = %d, want 1 after compensation", len(orders))
	}
}

func TestPlaceOrderOwnerMismatch(t *testing.T) {
	svc, product, _, orderRepo := newOrderFixture(t)

	if _, err := svc.PlaceOrder("caller", "somebody-else", product.ID, 1, "widget", 9.99); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("PlaceOrder() error = %v, want ErrUnauthorized", err)
	}
	orders, _ := orderRepo.FindAll(0, 0)
	if len(orders) != 0 {
		t.Errorf("orders = %d, want 0", len(orders))
	}
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	svc, _, _, _ := newOrderFixture(t)

	if _, err := svc.PlaceOrder("user-1", "user-1", "missing", 1, "widget", 9.99); !errors.Is(err, ErrNotFound) {
		t.Errorf("PlaceOrder() error = %v, want ErrNotFound", err)
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	svc, product, _, _ := newOrderFixture(t)

	tests := []struct {
		name     string
		quantity int64
	}{
		{name: "zero quantity", quantity: 0},
		{name: "negative quantity", quantity: -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.PlaceOrder("user-1", "user-1", product.ID, tt.quantity, "widget", 0); !errors.Is(err, ErrValidation) {
				t.Errorf("PlaceOrder() error = %v, want ErrValidation", err)
			}
		})
	}
}

type failingDeleteOrderRepo struct {
	repository.OrderRepository
}

func (r *failingDeleteOrderRepo) Delete(id string) error {
	return errors.New("store unavailable")
}

func TestPlaceOrderPartialFailureIsSurfaced(t *testing.T) {
	productRepo := repository.NewInMemoryProductRepository()
	orderRepo := &failingDeleteOrderRepo{repository.NewInMemoryOrderRepository()}
	svc := NewOrderService(orderRepo, NewProductService(productRepo))

	product := model.NewProduct("widget", 2, 9.99, "Widget-1")
	if err := productRepo.Create(product); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	// Decrement fails (not enough stock) and the compensating delete
	// fails too: the stranded order must be reported, not swallowed.
	if _, err := svc.PlaceOrder("user-1", "user-1", product.ID, 5, "widget", 49.95); !errors.Is(err, ErrPartialOrder) {
		t.Errorf("PlaceOrder() error = %v, want ErrPartialOrder", err)
	}
}

func TestListOrders(t *testing.T) {
	productRepo := repository.NewInMemoryProductRepository()
	orderRepo := repository.NewInMemoryOrderRepository()
	svc := NewOrderService(orderRepo, NewProductService(productRepo))

	base := time.Now()
	for i := 0; i < 3; i++ {
		order := model.NewOrder("user-1", "widget", 1, 9.99)
		order.CreatedAt = base.Add(time.Duration(i) * time.Second)
		if err := orderRepo.Create(order); err != nil {
			t.Fatalf("Create() unexpected error: %v", err)
		}
	}
	other := model.NewOrder("user-2", "gadget", 2, 19.98)
	other.CreatedAt = base.Add(10 * time.Second)
	if err := orderRepo.Create(other); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	// Admins see everything, newest first.
	all, err := svc.ListOrders("admin-user", true, 0, 0)
	if err != nil {
		t.Fatalf("ListOrders() unexpected error: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("len = %d, want 4", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].CreatedAt.Before(all[i].CreatedAt) {
			t.Fatalf("orders not sorted newest first")
		}
	}

	// Non-admins only see their own.
	own, err := svc.ListOrders("user-1", false, 0, 0)
	if err != nil {
		t.Fatalf("ListOrders() unexpected error: %v", err)
	}
	if len(own) != 3 {
		t.Errorf("len = %d, want 3", len(own))
	}
	for _, order := range own {
		if order.User != "user-1" {
			t.Errorf("order %s belongs to %s", order.ID, order.User)
		}
	}

	// Unlike the catalog, no limit means all orders; an explicit limit
	// still pages.
	limited, err := svc.ListOrders("admin-user", true, 2, 1)
	if err != nil {
		t.Fatalf("ListOrders() unexpected error: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("len = %d, want 2", len(limited))
	}
}
