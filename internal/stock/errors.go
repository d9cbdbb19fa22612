// Package stock holds the error kinds shared by the cylinder, regulator
// and stove inventory services.
package stock

import (
	"errors"
	"fmt"
)

// ErrItemNotFound indicates no inventory item matches (store, id).
var ErrItemNotFound = errors.New("stock: item not found")

// ErrInvalidQuantity indicates a non-positive quantity.
var ErrInvalidQuantity = errors.New("stock: quantity must be positive")

// ErrInvalidPrice indicates a negative unit price.
var ErrInvalidPrice = errors.New("stock: unit price must not be negative")

// ErrInsufficientStock is the sentinel matched by errors.Is for any
// InsufficientStockError.
var ErrInsufficientStock = errors.New("stock: insufficient stock")

// InsufficientStockError carries the context needed to render a precise
// user-facing message.
type InsufficientStockError struct {
	Item      string
	ItemID    int64
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock: %s %d has %d available, %d requested", e.Item, e.ItemID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
