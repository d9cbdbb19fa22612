package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gasline-erp/gasline-erp/internal/ledger/accounts"
	"github.com/gasline-erp/gasline-erp/internal/ledger/categories"
)

// EntryWriter persists one entry. Inventory services implement it on
// their transaction repositories so the entry commits or rolls back
// together with the counter changes it describes.
type EntryWriter interface {
	InsertEntry(ctx context.Context, entry Entry) error
}

// Recorder turns a resolved category plus an amount into one immutable
// entry against two resolved accounts. Callers invoke Record exactly
// once per monetary leg of a business operation.
type Recorder struct {
	accounts   *accounts.Registry
	categories *categories.Registry
	now        func() time.Time
	newID      func() uuid.UUID
}

func NewRecorder(acc *accounts.Registry, cat *categories.Registry) *Recorder {
	return &Recorder{accounts: acc, categories: cat, now: time.Now, newID: uuid.New}
}

// WithNow overrides the clock, for tests.
func (r *Recorder) WithNow(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Record resolves the category and both of its accounts, validates the
// amount and writes one entry through w. Resolution happens before any
// write so a misconfigured store fails the whole operation.
func (r *Recorder) Record(ctx context.Context, w EntryWriter, in RecordInput) (Entry, error) {
	cat, err := r.categories.Resolve(in.StoreID, in.Category)
	if err != nil {
		return Entry{}, err
	}
	debit, err := r.resolveAccount(in.StoreID, in.Category, cat.DebitAccount)
	if err != nil {
		return Entry{}, err
	}
	credit, err := r.resolveAccount(in.StoreID, in.Category, cat.CreditAccount)
	if err != nil {
		return Entry{}, err
	}
	if in.Amount.IsNegative() {
		return Entry{}, ErrInvalidAmount
	}

	details := make(map[string]any, len(in.Extra)+1)
	details["description"] = categories.Render(cat, in.Payload)
	for k, v := range in.Extra {
		details[k] = v
	}

	entry := Entry{
		ID:            r.newID(),
		StoreID:       in.StoreID,
		DebitAccount:  debit.Code,
		CreditAccount: credit.Code,
		Amount:        in.Amount,
		Category:      cat.Code,
		PaymentMethod: in.PaymentMethod,
		Counterparty:  in.Counterparty,
		Correlation:   in.Correlation,
		Ref:           in.Ref,
		Details:       details,
		ActorID:       in.ActorID,
		CreatedAt:     r.now().UTC(),
	}
	if err := w.InsertEntry(ctx, entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func (r *Recorder) resolveAccount(storeID int64, category, code string) (accounts.Account, error) {
	acc, err := r.accounts.Resolve(storeID, code)
	if err != nil || !acc.IsActive {
		return accounts.Account{}, &ConfigError{StoreID: storeID, Category: category, AccountCode: code}
	}
	return acc, nil
}
