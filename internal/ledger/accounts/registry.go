package accounts

import (
	"context"
	"fmt"
	"sync"
)

// Registry is the in-memory chart of accounts lookup, keyed by
// (store, code). It is loaded once at startup and refreshed whenever a
// store is seeded. Resolution is read-only; account mutation is an
// administrative operation outside the ledger core.
type Registry struct {
	repo Repository

	mu       sync.RWMutex
	accounts map[string]Account
}

func NewRegistry(repo Repository) *Registry {
	return &Registry{repo: repo, accounts: make(map[string]Account)}
}

func key(storeID int64, code string) string {
	return fmt.Sprintf("%d:%s", storeID, code)
}

// Load populates the registry from storage.
func (r *Registry) Load(ctx context.Context) error {
	all, err := r.repo.ListAll(ctx)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts = make(map[string]Account, len(all))
	for _, a := range all {
		r.accounts[key(a.StoreID, a.Code)] = a
	}
	return nil
}

// Resolve returns the account for (storeID, code).
func (r *Registry) Resolve(storeID int64, code string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	acc, ok := r.accounts[key(storeID, code)]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return acc, nil
}

// ListByStore returns the store's accounts ordered by code, from storage.
func (r *Registry) ListByStore(ctx context.Context, storeID int64) ([]Account, error) {
	return r.repo.ListByStore(ctx, storeID)
}

// SeedStore inserts the base chart for a newly onboarded store and adds
// the inserted accounts to the in-memory map. Codes already present for
// the store are left untouched.
func (r *Registry) SeedStore(ctx context.Context, storeID int64) error {
	for _, base := range BaseChart {
		acc := Account{
			StoreID:  storeID,
			Code:     base.Code,
			Name:     base.Name,
			Type:     base.Type,
			IsActive: true,
		}
		inserted, err := r.repo.Insert(ctx, acc)
		if err != nil {
			if err == ErrDuplicateCode {
				continue
			}
			return fmt.Errorf("accounts: seed store %d: %w", storeID, err)
		}
		r.mu.Lock()
		r.accounts[key(storeID, inserted.Code)] = inserted
		r.mu.Unlock()
	}
	return nil
}

// Deactivate retires an account and updates the map.
func (r *Registry) Deactivate(ctx context.Context, storeID int64, code string) error {
	if err := r.repo.Deactivate(ctx, storeID, code); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if acc, ok := r.accounts[key(storeID, code)]; ok {
		acc.IsActive = false
		r.accounts[key(storeID, code)] = acc
	}
	return nil
}
