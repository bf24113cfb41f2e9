package repository

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"storefront/internal/core/model"
)

type inMemoryProductRepository struct {
	products map[string]*model.Product
	mutex    sync.RWMutex
}

func NewInMemoryProductRepository() ProductRepository {
	return &inMemoryProductRepository{
		products: make(map[string]*model.Product),
	}
}

func (r *inMemoryProductRepository) Create(product *model.Product) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.products[product.ID]; exists {
		return fmt.Errorf("product with ID %s already exists", product.ID)
	}
	for _, existing := range r.products {
		if existing.Name == product.Name {
			return fmt.Errorf("product with name %s already exists", product.Name)
		}
		if existing.UniqueKey == product.UniqueKey {
			return fmt.Errorf("product with uniqueKey %s already exists", product.UniqueKey)
		}
	}

	r.products[product.ID] = product
	return nil
}

func (r *inMemoryProductRepository) Update(product *model.Product) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.products[product.ID]; !exists {
		return fmt.Errorf("product with ID %s not found", product.ID)
	}

	r.products[product.ID] = product
	return nil
}

func (r *inMemoryProductRepository) Delete(id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.products[id]; !exists {
		return fmt.Errorf("product with ID %s not found", id)
	}

	delete(r.products, id)
	return nil
}

func (r *inMemoryProductRepository) DeleteAll() (int64, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	count := int64(len(r.products))
	r.products = make(map[string]*model.Product)
	return count, nil
}

func (r *inMemoryProductRepository) FindByID(id string) (*model.Product, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	if product, exists := r.products[id]; exists {
		return product, nil
	}
	return nil, nil
}

func (r *inMemoryProductRepository) FindByName(name string) (*model.Product, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, product := range r.products {
		if product.Name == name {
			return product, nil
		}
	}
	return nil, nil
}

func (r *inMemoryProductRepository) FindByUniqueKey(key string) (*model.Product, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, product := range r.products {
		if product.UniqueKey == key {
			return product, nil
		}
	}
	return nil, nil
}

func (r *inMemoryProductRepository) Find(query ProductQuery) ([]*model.Product, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var matched []*model.Product
	for _, product := range r.products {
		if matchesFilter(product, query.Filter) {
			matched = append(matched, product)
		}
	}

	sortProducts(matched, query.SortBy, query.SortDesc)

	if query.Skip > 0 {
		if query.Skip >= int64(len(matched)) {
			return nil, nil
		}
		matched = matched[query.Skip:]
	}
	if query.Limit > 0 && query.Limit < int64(len(matched)) {
		matched = matched[:query.Limit]
	}
	return matched, nil
}

func (r *inMemoryProductRepository) DecrementQuantity(id string, n int64) (bool, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	product, exists := r.products[id]
	if !exists || product.Quantity < n {
		return false, nil
	}
	product.Quantity -= n
	product.UpdatedAt = time.Now()
	return true, nil
}

func matchesFilter(product *model.Product, filter map[string]interface{}) bool {
	for field, value := range filter {
		switch field {
		case "name":
			if s, ok := value.(string); !ok || product.Name != s {
				return false
			}
		case "quantity":
			if n, ok := value.(int64); !ok || product.Quantity != n {
				return false
			}
		case "price":
			if f, ok := value.(float64); !ok || product.Price != f {
				return false
			}
		case "uniquekey":
			if s, ok := value.(string); !ok || product.UniqueKey != s {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func sortProducts(products []*model.Product, sortBy string, desc bool) {
	sort.Slice(products, func(i, j int) bool {
		if desc {
			i, j = j, i
		}
		a, b := products[i], products[j]
		switch sortBy {
		case "quantity":
			return a.Quantity < b.Quantity
		case "price":
			return a.Price < b.Price
		case "uniquekey":
			return a.UniqueKey < b.UniqueKey
		default:
			return a.Name < b.Name
		}
	})
}
