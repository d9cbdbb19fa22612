package accounts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	byKey  map[string]Account
	nextID int64
}

func newMemRepo() *memRepo {
	return &memRepo{byKey: make(map[string]Account), nextID: 1}
}

func (m *memRepo) ListAll(ctx context.Context) ([]Account, error) {
	out := make([]Account, 0, len(m.byKey))
	for _, a := range m.byKey {
		out = append(out, a)
	}
	return out, nil
}

func (m *memRepo) ListByStore(ctx context.Context, storeID int64) ([]Account, error) {
	var out []Account
	for _, a := range m.byKey {
		if a.StoreID == storeID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memRepo) Insert(ctx context.Context, acc Account) (Account, error) {
	k := key(acc.StoreID, acc.Code)
	if _, exists := m.byKey[k]; exists {
		return Account{}, ErrDuplicateCode
	}
	acc.ID = m.nextID
	m.nextID++
	m.byKey[k] = acc
	return acc, nil
}

func (m *memRepo) Deactivate(ctx context.Context, storeID int64, code string) error {
	k := key(storeID, code)
	acc, ok := m.byKey[k]
	if !ok {
		return ErrAccountNotFound
	}
	acc.IsActive = false
	m.byKey[k] = acc
	return nil
}

func TestSeedStorePopulatesBaseChart(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry(newMemRepo())
	require.NoError(t, reg.Load(ctx))
	require.NoError(t, reg.SeedStore(ctx, 1))

	for _, base := range BaseChart {
		acc, err := reg.Resolve(1, base.Code)
		require.NoError(t, err, "code %s", base.Code)
		assert.Equal(t, base.Name, acc.Name)
		assert.Equal(t, base.Type, acc.Type)
		assert.True(t, acc.IsActive)
	}
}

func TestSeedStoreIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	reg := NewRegistry(repo)
	require.NoError(t, reg.Load(ctx))
	require.NoError(t, reg.SeedStore(ctx, 1))
	require.NoError(t, reg.SeedStore(ctx, 1))

	all, err := repo.ListByStore(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, all, len(BaseChart))
}

func TestResolveIsStoreScoped(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry(newMemRepo())
	require.NoError(t, reg.Load(ctx))
	require.NoError(t, reg.SeedStore(ctx, 1))

	_, err := reg.Resolve(2, "1000")
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestResolveUnknownCode(t *testing.T) {
	reg := NewRegistry(newMemRepo())
	_, err := reg.Resolve(1, "9999")
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestDeactivateUpdatesMap(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry(newMemRepo())
	require.NoError(t, reg.Load(ctx))
	require.NoError(t, reg.SeedStore(ctx, 1))

	require.NoError(t, reg.Deactivate(ctx, 1, "1000"))
	acc, err := reg.Resolve(1, "1000")
	require.NoError(t, err)
	assert.False(t, acc.IsActive)
}

func TestLoadReplacesState(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	reg := NewRegistry(repo)
	require.NoError(t, reg.Load(ctx))
	require.NoError(t, reg.SeedStore(ctx, 1))

	// A reload from an emptied store drops stale codes.
	repo.byKey = map[string]Account{}
	require.NoError(t, reg.Load(ctx))
	_, err := reg.Resolve(1, "1000")
	require.ErrorIs(t, err, ErrAccountNotFound)
}
