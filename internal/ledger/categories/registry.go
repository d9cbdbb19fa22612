package categories

import (
	"context"
	"fmt"
	"sync"
)

// Registry is the in-memory (store, code) → Category lookup, loaded at
// startup and refreshed on store seeding.
type Registry struct {
	repo Repository

	mu         sync.RWMutex
	categories map[string]Category
}

func NewRegistry(repo Repository) *Registry {
	return &Registry{repo: repo, categories: make(map[string]Category)}
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
	r.categories = make(map[string]Category, len(all))
	for _, c := range all {
		r.categories[key(c.StoreID, c.Code)] = c
	}
	return nil
}

// Resolve returns the category for (storeID, code).
func (r *Registry) Resolve(storeID int64, code string) (Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cat, ok := r.categories[key(storeID, code)]
	if !ok {
		return Category{}, ErrCategoryNotFound
	}
	return cat, nil
}

// ListByStore returns the store's categories ordered by code, from storage.
func (r *Registry) ListByStore(ctx context.Context, storeID int64) ([]Category, error) {
	return r.repo.ListByStore(ctx, storeID)
}

// SeedStore inserts the base category list for a newly onboarded store.
// Codes already present for the store are left untouched.
func (r *Registry) SeedStore(ctx context.Context, storeID int64) error {
	for _, base := range BaseCategories {
		cat := base
		cat.StoreID = storeID
		inserted, err := r.repo.Insert(ctx, cat)
		if err != nil {
			if err == ErrDuplicateCode {
				continue
			}
			return fmt.Errorf("categories: seed store %d: %w", storeID, err)
		}
		r.mu.Lock()
		r.categories[key(storeID, inserted.Code)] = inserted
		r.mu.Unlock()
	}
	return nil
}
