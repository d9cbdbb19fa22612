package cylinders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gasline-erp/gasline-erp/internal/ledger"
)

// Cylinder tracks one brand+size unit type for a store. Defected is a
// sub-pool of Full: marking a defect never moves the unit out of Full,
// it only removes it from the sellable count.
type Cylinder struct {
	ID        int64
	StoreID   int64
	Brand     string
	Size      string
	Price     decimal.Decimal
	Full      int64
	Empty     int64
	Defected  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Sellable is the number of full cylinders free of defect marks.
func (c Cylinder) Sellable() int64 {
	return c.Full - c.Defected
}

// BuyInput describes a supplier purchase.
type BuyInput struct {
	StoreID      int64
	ActorID      int64
	CylinderID   int64
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
	CylinderID int64
	Quantity   int64
	Method     ledger.PaymentMethod
	CustomerID *int64
	Ref        string
}

// DefectInput marks or unmarks units as defected.
type DefectInput struct {
	StoreID    int64
	ActorID    int64
	CylinderID int64
	Quantity   int64
	Mark       bool
}

// Result pairs the updated cylinder with the ledger entry the operation
// produced, returned as one logical result.
type Result struct {
	Cylinder Cylinder
	Entry    ledger.Entry
}
