package categories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository encapsulates DB operations for event categories.
type Repository interface {
	ListAll(ctx context.Context) ([]Category, error)
	ListByStore(ctx context.Context, storeID int64) ([]Category, error)
	Insert(ctx context.Context, cat Category) (Category, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const selectColumns = `id, store_id, code, debit_account, credit_account, kind, template, created_at, updated_at`

func (r *repository) ListAll(ctx context.Context) ([]Category, error) {
	rows, err := r.db.Query(ctx, `SELECT `+selectColumns+` FROM categories ORDER BY store_id, code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCategories(rows)
}

func (r *repository) ListByStore(ctx context.Context, storeID int64) ([]Category, error) {
	rows, err := r.db.Query(ctx, `SELECT `+selectColumns+` FROM categories WHERE store_id=$1 ORDER BY code`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCategories(rows)
}

func (r *repository) Insert(ctx context.Context, cat Category) (Category, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO categories (store_id, code, debit_account, credit_account, kind, template)
VALUES ($1,$2,$3,$4,$5,$6) RETURNING id, created_at, updated_at`,
		cat.StoreID, cat.Code, cat.DebitAccount, cat.CreditAccount, cat.Kind, cat.Template)
	if err := row.Scan(&cat.ID, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Category{}, ErrDuplicateCode
		}
		return Category{}, err
	}
	return cat, nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanCategories(rows rowScanner) ([]Category, error) {
	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.StoreID, &c.Code, &c.DebitAccount, &c.CreditAccount, &c.Kind, &c.Template, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
