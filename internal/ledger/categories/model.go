package categories

import (
	"errors"
	"time"
)

// Kind classifies the cash effect of a business event.
type Kind string

const (
	KindCashInflow  Kind = "CASH_INFLOW"
	KindCashOutflow Kind = "CASH_OUTFLOW"
	KindNonCash     Kind = "NON_CASH"
)

// Category maps a business event code to the two accounts it touches.
type Category struct {
	ID            int64
	StoreID       int64
	Code          string
	DebitAccount  string
	CreditAccount string
	Kind          Kind
	// Template may carry {{placeholder}} tokens rendered into the
	// entry details for audit readability.
	Template  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ErrCategoryNotFound indicates no category matches (store, code).
var ErrCategoryNotFound = errors.New("categories: category not found")

// ErrDuplicateCode indicates a code collision within a store.
var ErrDuplicateCode = errors.New("categories: code already exists for store")
