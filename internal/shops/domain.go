package shops

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gasline-erp/gasline-erp/internal/ledger"
	"github.com/gasline-erp/gasline-erp/internal/stock/cylinders"
)

// Shop is a wholesale counterparty. TotalDue is the single source of
// truth for how much the shop owes and moves in lockstep with the
// ledger entries recorded against it.
type Shop struct {
	ID              int64
	StoreID         int64
	Name            string
	Phone           string
	Address         string
	TotalDue        decimal.Decimal
	TotalPurchases  decimal.Decimal
	TotalPayments   decimal.Decimal
	TotalDeliveries int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ExchangeLine names one cylinder type and a unit count.
type ExchangeLine struct {
	CylinderID int64
	Quantity   int64
}

// ExchangeInput describes a full/empty swap with split payment.
// TotalPrice must equal PaidAmount + Due.
type ExchangeInput struct {
	StoreID    int64
	ActorID    int64
	ShopID     int64
	Take       []ExchangeLine
	Give       []ExchangeLine
	TotalPrice decimal.Decimal
	PaidAmount decimal.Decimal
	Due        decimal.Decimal
	Method     ledger.PaymentMethod
	VehicleID  *int64
	Ref        string
}

// ExchangeResult returns the shop's new aggregate state, the touched
// cylinders and the created entries as one logical result.
type ExchangeResult struct {
	Shop      Shop
	Cylinders []cylinders.Cylinder
	Entries   []ledger.Entry
}

// ClearDueInput describes a due payment from a shop.
type ClearDueInput struct {
	StoreID int64
	ActorID int64
	ShopID  int64
	Amount  decimal.Decimal
	Method  ledger.PaymentMethod
	Ref     string
}

// ClearDueResult pairs the updated shop with the payment entry.
type ClearDueResult struct {
	Shop  Shop
	Entry ledger.Entry
}

// ErrShopNotFound indicates no shop matches (store, id).
var ErrShopNotFound = errors.New("shops: shop not found")

// ErrMismatchedExchange is the sentinel matched by errors.Is for any
// MismatchedExchangeError.
var ErrMismatchedExchange = errors.New("shops: exchange quantities mismatch")

// MismatchedExchangeError reports the take/give totals of a rejected
// exchange. A shop must receive exactly as many units as it returns.
type MismatchedExchangeError struct {
	TakeQty int64
	GiveQty int64
}

func (e *MismatchedExchangeError) Error() string {
	return fmt.Sprintf("shops: exchange takes %d but gives %d units", e.TakeQty, e.GiveQty)
}

func (e *MismatchedExchangeError) Is(target error) bool {
	return target == ErrMismatchedExchange
}

// ErrOverpayment is the sentinel matched by errors.Is for any
// OverpaymentError.
var ErrOverpayment = errors.New("shops: payment exceeds outstanding due")

// OverpaymentError reports a due clearance above the owed amount.
// Overpay is rejected rather than clamped so no value disappears.
type OverpaymentError struct {
	ShopID      int64
	Requested   decimal.Decimal
	Outstanding decimal.Decimal
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("shops: shop %d owes %s, payment of %s rejected", e.ShopID, e.Outstanding.String(), e.Requested.String())
}

func (e *OverpaymentError) Is(target error) bool {
	return target == ErrOverpayment
}
