package accounts

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository encapsulates DB operations for the chart of accounts.
type Repository interface {
	ListAll(ctx context.Context) ([]Account, error)
	ListByStore(ctx context.Context, storeID int64) ([]Account, error)
	Insert(ctx context.Context, acc Account) (Account, error)
	Deactivate(ctx context.Context, storeID int64, code string) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const selectColumns = `id, store_id, code, name, type, is_active, created_at, updated_at`

func (r *repository) ListAll(ctx context.Context) ([]Account, error) {
	rows, err := r.db.Query(ctx, `SELECT `+selectColumns+` FROM accounts ORDER BY store_id, code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAccounts(rows)
}

func (r *repository) ListByStore(ctx context.Context, storeID int64) ([]Account, error) {
	rows, err := r.db.Query(ctx, `SELECT `+selectColumns+` FROM accounts WHERE store_id=$1 ORDER BY code`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAccounts(rows)
}

func (r *repository) Insert(ctx context.Context, acc Account) (Account, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO accounts (store_id, code, name, type, is_active)
VALUES ($1,$2,$3,$4,$5) RETURNING id, created_at, updated_at`,
		acc.StoreID, acc.Code, acc.Name, acc.Type, acc.IsActive)
	if err := row.Scan(&acc.ID, &acc.CreatedAt, &acc.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Account{}, ErrDuplicateCode
		}
		return Account{}, err
	}
	return acc, nil
}

func (r *repository) Deactivate(ctx context.Context, storeID int64, code string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE accounts SET is_active=false, updated_at=NOW() WHERE store_id=$1 AND code=$2`, storeID, code)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanAccounts(rows rowScanner) ([]Account, error) {
	var out []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.StoreID, &a.Code, &a.Name, &a.Type, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
