// Package ledgertest provides in-memory registries and a pre-seeded
// recorder for service tests.
package ledgertest

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gasline-erp/gasline-erp/internal/ledger"
	"github.com/gasline-erp/gasline-erp/internal/ledger/accounts"
	"github.com/gasline-erp/gasline-erp/internal/ledger/categories"
)

// AccountRepo is an in-memory accounts.Repository.
type AccountRepo struct {
	byKey  map[string]accounts.Account
	nextID int64
}

func NewAccountRepo() *AccountRepo {
	return &AccountRepo{byKey: make(map[string]accounts.Account), nextID: 1}
}

func accountKey(storeID int64, code string) string {
	return fmt.Sprintf("%d:%s", storeID, code)
}

func (r *AccountRepo) ListAll(ctx context.Context) ([]accounts.Account, error) {
	out := make([]accounts.Account, 0, len(r.byKey))
	for _, a := range r.byKey {
		out = append(out, a)
	}
	return out, nil
}

func (r *AccountRepo) ListByStore(ctx context.Context, storeID int64) ([]accounts.Account, error) {
	var out []accounts.Account
	for _, a := range r.byKey {
		if a.StoreID == storeID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *AccountRepo) Insert(ctx context.Context, acc accounts.Account) (accounts.Account, error) {
	k := accountKey(acc.StoreID, acc.Code)
	if _, exists := r.byKey[k]; exists {
		return accounts.Account{}, accounts.ErrDuplicateCode
	}
	acc.ID = r.nextID
	r.nextID++
	r.byKey[k] = acc
	return acc, nil
}

func (r *AccountRepo) Deactivate(ctx context.Context, storeID int64, code string) error {
	k := accountKey(storeID, code)
	acc, ok := r.byKey[k]
	if !ok {
		return accounts.ErrAccountNotFound
	}
	acc.IsActive = false
	r.byKey[k] = acc
	return nil
}

// CategoryRepo is an in-memory categories.Repository.
type CategoryRepo struct {
	byKey  map[string]categories.Category
	nextID int64
}

func NewCategoryRepo() *CategoryRepo {
	return &CategoryRepo{byKey: make(map[string]categories.Category), nextID: 1}
}

func (r *CategoryRepo) ListAll(ctx context.Context) ([]categories.Category, error) {
	out := make([]categories.Category, 0, len(r.byKey))
	for _, c := range r.byKey {
		out = append(out, c)
	}
	return out, nil
}

func (r *CategoryRepo) ListByStore(ctx context.Context, storeID int64) ([]categories.Category, error) {
	var out []categories.Category
	for _, c := range r.byKey {
		if c.StoreID == storeID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *CategoryRepo) Insert(ctx context.Context, cat categories.Category) (categories.Category, error) {
	k := fmt.Sprintf("%d:%s", cat.StoreID, cat.Code)
	if _, exists := r.byKey[k]; exists {
		return categories.Category{}, categories.ErrDuplicateCode
	}
	cat.ID = r.nextID
	r.nextID++
	r.byKey[k] = cat
	return cat, nil
}

// Registries returns registries seeded with the base chart and base
// categories for storeID.
func Registries(t *testing.T, storeID int64) (*accounts.Registry, *categories.Registry) {
	t.Helper()
	ctx := context.Background()

	acc := accounts.NewRegistry(NewAccountRepo())
	require.NoError(t, acc.Load(ctx))
	require.NoError(t, acc.SeedStore(ctx, storeID))

	cat := categories.NewRegistry(NewCategoryRepo())
	require.NoError(t, cat.Load(ctx))
	require.NoError(t, cat.SeedStore(ctx, storeID))

	return acc, cat
}

// Recorder returns a ledger recorder backed by seeded registries.
func Recorder(t *testing.T, storeID int64) *ledger.Recorder {
	t.Helper()
	acc, cat := Registries(t, storeID)
	return ledger.NewRecorder(acc, cat)
}
