package accounts

import (
	"errors"
	"time"
)

// AccountType enumerates chart of accounts classifications.
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeIncome    AccountType = "INCOME"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// Account models a chart of accounts node. The classification never
// changes after creation; accounts are retired by deactivation.
type Account struct {
	ID        int64
	StoreID   int64
	Code      string
	Name      string
	Type      AccountType
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ErrAccountNotFound indicates no account matches (store, code).
var ErrAccountNotFound = errors.New("accounts: account not found")

// ErrDuplicateCode indicates a code collision within a store.
var ErrDuplicateCode = errors.New("accounts: code already exists for store")
