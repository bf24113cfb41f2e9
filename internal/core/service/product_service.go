package service

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"storefront/internal/cache"
	"storefront/internal/core/model"
	"storefront/internal/core/repository"
)

// uniqueKey must start with a capital letter and contain only letters,
// numbers, dashes and underscores.
var uniqueKeyPattern = regexp.MustCompile(`^[A-Z][A-Za-z0-9-_]*$`)

const productCacheTTL = time.Minute

// filterFields maps the query-facing field names onto the store's
// canonical keys. Anything not listed here is silently dropped: the
// filter surface is an allow-list, not a validator.
var filterFields = map[string]string{
	"name":      "name",
	"quantity":  "quantity",
	"price":     "price",
	"uniqueKey": "uniquekey",
}

// ProductUpdate is a partial merge; nil fields are left untouched.
type ProductUpdate struct {
	Name      *string
	Quantity  *int64
	Price     *float64
	UniqueKey *string
}

type ProductService interface {
	CreateProduct(name string, quantity int64, price float64, uniqueKey string) (*model.Product, error)
	GetProduct(id string) (*model.Product, error)
	// FindProducts lists the catalog. Filters are restricted to the
	// allow-list (name, quantity, price, uniqueKey); name filters match
	// case-insensitively. When any filter is present, limit and skip are
	// not applied, matching the established query surface.
	FindProducts(filters map[string]string, limit, skip int64, sortBy string, sortDesc bool) ([]*model.Product, error)
	UpdateProduct(id string, update ProductUpdate) (*model.Product, error)
	DeleteProduct(id string) (*model.Product, error)
	DeleteAllProducts() (int64, error)
	// DecrementStock atomically subtracts n from the product's quantity
	// when at least n units are in stock, and reports whether the
	// decrement was applied.
	DecrementStock(id string, n int64) (bool, error)
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{
		productRepo: productRepo,
	}
}

func (s *productService) CreateProduct(name string, quantity int64, price float64, uniqueKey string) (*model.Product, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}
	if price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if !uniqueKeyPattern.MatchString(uniqueKey) {
		return nil, fmt.Errorf("%w: uniqueKey must start with a capital letter and contain only letters, numbers, dashes and underscores", ErrValidation)
	}

	name = strings.ToLower(name)
	existing, err := s.productRepo.FindByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: product %s", ErrConflict, name)
	}

	existing, err = s.productRepo.FindByUniqueKey(uniqueKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: uniqueKey %s is taken", ErrConflict, uniqueKey)
	}

	product := model.NewProduct(name, quantity, price, uniqueKey)
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) GetProduct(id string) (*model.Product, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: invalid product ID", ErrValidation)
	}

	ctx := context.Background()
	var cached model.Product
	if err := cache.Get(ctx, cache.ProductKey(id), &cached); err == nil {
		return &cached, nil
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
	}

	if err := cache.Set(ctx, cache.ProductKey(id), product, productCacheTTL); err != nil {
		log.Printf("Failed to cache product %s: %v", id, err)
	}
	return product, nil
}

func (s *productService) FindProducts(filters map[string]string, limit, skip int64, sortBy string, sortDesc bool) ([]*model.Product, error) {
	filter := make(map[string]interface{})
	for field, value := range filters {
		key, ok := filterFields[field]
		if !ok {
			continue
		}
		switch key {
		case "quantity":
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: quantity filter must be a number", ErrValidation)
			}
			filter[key] = n
		case "price":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: price filter must be a number", ErrValidation)
			}
			filter[key] = f
		case "name":
			filter[key] = strings.ToLower(value)
		default:
			filter[key] = value
		}
	}

	// Filtered lookups return every match; limit and skip only apply to
	// the plain catalog listing.
	if len(filter) > 0 {
		limit, skip = 0, 0
	}

	sortKey, ok := filterFields[sortBy]
	if !ok {
		sortKey = "name"
	}

	return s.productRepo.Find(repository.ProductQuery{
		Filter:   filter,
		Limit:    limit,
		Skip:     skip,
		SortBy:   sortKey,
		SortDesc: sortDesc,
	})
}

func (s *productService) UpdateProduct(id string, update ProductUpdate) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
	}

	// The update is applied to a copy: FindByID may hand back the stored
	// product itself, and a rejected field must not leave the earlier
	// fields already written.
	updated := *product
	if update.Name != nil {
		name := strings.ToLower(*update.Name)
		if name != product.Name {
			existing, err := s.productRepo.FindByName(name)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, fmt.Errorf("%w: product %s", ErrConflict, name)
			}
		}
		updated.Name = name
	}
	if update.Quantity != nil {
		if *update.Quantity < 0 {
			return nil, fmt.Errorf("%w: quantity must not be negative", ErrValidation)
		}
		updated.Quantity = *update.Quantity
	}
	if update.Price != nil {
		if *update.Price < 0 {
			return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
		}
		updated.Price = *update.Price
	}
	if update.UniqueKey != nil {
		key := *update.UniqueKey
		if !uniqueKeyPattern.MatchString(key) {
			return nil, fmt.Errorf("%w: uniqueKey must start with a capital letter and contain only letters, numbers, dashes and underscores", ErrValidation)
		}
		if key != product.UniqueKey {
			existing, err := s.productRepo.FindByUniqueKey(key)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, fmt.Errorf("%w: uniqueKey %s is taken", ErrConflict, key)
			}
		}
		updated.UniqueKey = key
	}

	updated.UpdatedAt = time.Now()
	if err := s.productRepo.Update(&updated); err != nil {
		return nil, err
	}

	if err := cache.Delete(context.Background(), cache.ProductKey(id)); err != nil {
		log.Printf("Failed to invalidate product cache for %s: %v", id, err)
	}
	return &updated, nil
}

func (s *productService) DeleteProduct(id string) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
	}

	if err := s.productRepo.Delete(id); err != nil {
		return nil, err
	}

	if err := cache.Delete(context.Background(), cache.ProductKey(id)); err != nil {
		log.Printf("Failed to invalidate product cache for %s: %v", id, err)
	}
	return product, nil
}

func (s *productService) DeleteAllProducts() (int64, error) {
	return s.productRepo.DeleteAll()
}

func (s *productService) DecrementStock(id string, n int64) (bool, error) {
	decremented, err := s.productRepo.DecrementQuantity(id, n)
	if err != nil || !decremented {
		return decremented, err
	}

	if err := cache.Delete(context.Background(), cache.ProductKey(id)); err != nil {
		log.Printf("Failed to invalidate product cache for %s: %v", id, err)
	}
	return true, nil
}
