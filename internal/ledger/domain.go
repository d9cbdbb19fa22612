package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod enumerates how cash changed hands.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "CASH"
	PaymentBank   PaymentMethod = "BANK"
	PaymentMobile PaymentMethod = "MOBILE"
	// PaymentNone is used for pure reclassification entries.
	PaymentNone PaymentMethod = "NONE"
)

// CounterpartyKind classifies who sits on the other side of an entry.
type CounterpartyKind string

const (
	CounterpartySupplier CounterpartyKind = "SUPPLIER"
	CounterpartyCustomer CounterpartyKind = "CUSTOMER"
	CounterpartyShop     CounterpartyKind = "SHOP"
	CounterpartyInternal CounterpartyKind = "INTERNAL"
)

// Counterparty pairs the classification with an optional entity id.
type Counterparty struct {
	Kind CounterpartyKind
	ID   *int64
}

// CorrelationKind enumerates the entities an entry may be traced back to.
type CorrelationKind string

const (
	CorrelateCylinder  CorrelationKind = "CYLINDER"
	CorrelateRegulator CorrelationKind = "REGULATOR"
	CorrelateStove     CorrelationKind = "STOVE"
	CorrelateVehicle   CorrelationKind = "VEHICLE"
	CorrelateShop      CorrelationKind = "SHOP"
	CorrelateStaff     CorrelationKind = "STAFF"
)

// CorrelationRef links an entry to at most one originating entity.
type CorrelationRef struct {
	Kind CorrelationKind
	ID   int64
}

// Entry is one immutable financial record. Corrections are made by
// recording offsetting entries, never by mutating history.
type Entry struct {
	ID            uuid.UUID
	StoreID       int64
	DebitAccount  string
	CreditAccount string
	Amount        decimal.Decimal
	Category      string
	PaymentMethod PaymentMethod
	Counterparty  Counterparty
	Correlation   *CorrelationRef
	Ref           string
	Details       map[string]any
	ActorID       int64
	CreatedAt     time.Time
}

// RecordInput groups everything needed to record one monetary leg.
type RecordInput struct {
	StoreID       int64
	ActorID       int64
	Category      string
	Amount        decimal.Decimal
	PaymentMethod PaymentMethod
	Counterparty  Counterparty
	Correlation   *CorrelationRef
	Ref           string
	// Payload feeds the category's description template.
	Payload map[string]string
	// Extra is merged into the entry details alongside the description.
	Extra map[string]any
}

// ErrInvalidAmount indicates a negative amount where a non-negative one is required.
var ErrInvalidAmount = errors.New("ledger: amount must not be negative")

// ErrMisconfiguredCategory flags a store-setup defect, not a user error.
var ErrMisconfiguredCategory = errors.New("ledger: category references unusable account")

// ConfigError reports which category/account pair is broken for a store.
type ConfigError struct {
	StoreID     int64
	Category    string
	AccountCode string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("ledger: store %d category %q references missing or inactive account %q", e.StoreID, e.Category, e.AccountCode)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrMisconfiguredCategory
}
