package model

import (
	"time"

	"storefront/internal/core/util"
)

// Order is immutable once created. It references the user by id and the
// product only by name; the product link is resolved at creation time to
// adjust stock and is not maintained afterward.
type Order struct {
	ID              string    `json:"id"`
	User            string    `json:"user"`
	ProductName     string    `json:"productName"`
	ProductQuantity int64     `json:"productQuantity"`
	TotalPrice      float64   `json:"totalPrice"`
	CreatedAt       time.Time `json:"createdAt"`
}

func NewOrder(userID, productName string, productQuantity int64, totalPrice float64) *Order {
	return &Order{
		ID:              util.GenerateID(),
		User:            userID,
		ProductName:     productName,
		ProductQuantity: productQuantity,
		TotalPrice:      totalPrice,
		CreatedAt:       time.Now(),
	}
}
