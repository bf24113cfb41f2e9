package model

import (
	"strings"
	"time"

	"storefront/internal/core/util"
)

// Product is a catalog entry. Name is stored lowercased and acts as a
// case-insensitive dedup key; UniqueKey is a human-assigned identifier,
// unique across the catalog.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Quantity  int64     `json:"quantity"`
	Price     float64   `json:"price"`
	UniqueKey string    `json:"uniqueKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewProduct(name string, quantity int64, price float64, uniqueKey string) *Product {
	now := time.Now()
	return &Product{
		ID:        util.GenerateID(),
		Name:      strings.ToLower(name),
		Quantity:  quantity,
		Price:     price,
		UniqueKey: uniqueKey,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
