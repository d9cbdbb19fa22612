package stoves

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gasline-erp/gasline-erp/internal/ledger"
)

// Stove tracks one brand+burner-count unit for a store. Stock and
// Defected are disjoint, matching the regulator rule.
type Stove struct {
	ID        int64
	StoreID   int64
	Brand     string
	Burners   int
	Price     decimal.Decimal
	Stock     int64
	Defected  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BuyInput describes a supplier purchase.
type BuyInput struct {
	StoreID      int64
	ActorID      int64
	StoveID      int64
	Quantity     int64
	PricePerUnit decimal.Decimal
	Method       ledger.PaymentMethod
	SupplierID   *int64
	Ref          string
}

// SellInput describes a walk-in sale.
type SellInput struct {
	StoreID    int64
	ActorID    int64
	StoveID    int64
	Quantity   int64
	Method     ledger.PaymentMethod
	CustomerID *int64
	Ref        string
}

// DefectInput marks or unmarks units as defected.
type DefectInput struct {
	StoreID  int64
	ActorID  int64
	StoveID  int64
	Quantity int64
	Mark     bool
}

// Result pairs the updated stove with its ledger entry.
type Result struct {
	Stove Stove
	Entry ledger.Entry
}
