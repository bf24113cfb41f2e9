package repository

import (
	"fmt"
	"sort"
	"sync"

	"storefront/internal/core/model"
)

type inMemoryOrderRepository struct {
	orders map[string]*model.Order
	mutex  sync.RWMutex
}

func NewInMemoryOrderRepository() OrderRepository {
	return &inMemoryOrderRepository{
		orders: make(map[string]*model.Order),
	}
}

func (r *inMemoryOrderRepository) Create(order *model.Order) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.orders[order.ID]; exists {
		return fmt.Errorf("order with ID %s already exists", order.ID)
	}

	r.orders[order.ID] = order
	return nil
}

func (r *inMemoryOrderRepository) Delete(id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.orders[id]; !exists {
		return fmt.Errorf("order with ID %s not found", id)
	}

	delete(r.orders, id)
	return nil
}

func (r *inMemoryOrderRepository) FindAll(limit, skip int64) ([]*model.Order, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var orders []*model.Order
	for _, order := range r.orders {
		orders = append(orders, order)
	}
	return page(orders, limit, skip), nil
}

func (r *inMemoryOrderRepository) FindByUser(userID string, limit, skip int64) ([]*model.Order, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var orders []*model.Order
	for _, order := range r.orders {
		if order.User == userID {
			orders = append(orders, order)
		}
	}
	return page(orders, limit, skip), nil
}

// page sorts newest first and applies skip/limit.
func page(orders []*model.Order, limit, skip int64) []*model.Order {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	if skip > 0 {
		if skip >= int64(len(orders)) {
			return nil
		}
		orders = orders[skip:]
	}
	if limit > 0 && limit < int64(len(orders)) {
		orders = orders[:limit]
	}
	return orders
}
