package stoves

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/gasline-erp/gasline-erp/internal/ledger"
	"github.com/gasline-erp/gasline-erp/internal/platform/db"
	"github.com/gasline-erp/gasline-erp/internal/stock"
)

// Repository encapsulates DB operations for stoves.
type Repository interface {
	List(ctx context.Context, storeID int64) ([]Stove, error)
	Create(ctx context.Context, st Stove) (Stove, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes the methods available within a transaction.
type TxRepository interface {
	GetForUpdate(ctx context.Context, storeID, id int64) (Stove, error)
	UpdateCounters(ctx context.Context, st Stove) error
	InsertEntry(ctx context.Context, entry ledger.Entry) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, storeID int64) ([]Stove, error) {
	rows, err := r.db.Query(ctx, `SELECT id, store_id, brand, burners, price::text, stock_count, defected_count, created_at, updated_at
FROM stoves WHERE store_id=$1 ORDER BY brand, burners`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Stove
	for rows.Next() {
		st, err := scanStove(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (r *repository) Create(ctx context.Context, st Stove) (Stove, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO stoves (store_id, brand, burners, price, stock_count, defected_count)
VALUES ($1,$2,$3,$4,$5,$6) RETURNING id, created_at, updated_at`,
		st.StoreID, st.Brand, st.Burners, st.Price.StringFixed(2), st.Stock, st.Defected)
	if err := row.Scan(&st.ID, &st.CreatedAt, &st.UpdatedAt); err != nil {
		return Stove{}, err
	}
	return st, nil
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

type txRepository struct {
	tx pgx.Tx
}

func (r *txRepository) GetForUpdate(ctx context.Context, storeID, id int64) (Stove, error) {
	row := r.tx.QueryRow(ctx, `SELECT id, store_id, brand, burners, price::text, stock_count, defected_count, created_at, updated_at
FROM stoves WHERE store_id=$1 AND id=$2 FOR UPDATE`, storeID, id)
	st, err := scanStove(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Stove{}, stock.ErrItemNotFound
		}
		return Stove{}, err
	}
	return st, nil
}

func (r *txRepository) UpdateCounters(ctx context.Context, st Stove) error {
	cmd, err := r.tx.Exec(ctx, `UPDATE stoves SET stock_count=$3, defected_count=$4, updated_at=NOW()
WHERE store_id=$1 AND id=$2`, st.StoreID, st.ID, st.Stock, st.Defected)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return stock.ErrItemNotFound
	}
	return nil
}

func (r *txRepository) InsertEntry(ctx context.Context, entry ledger.Entry) error {
	return ledger.InsertEntryTx(ctx, r.tx, entry)
}

type stoveScanner interface {
	Scan(dest ...any) error
}

func scanStove(row stoveScanner) (Stove, error) {
	var st Stove
	var price string
	if err := row.Scan(&st.ID, &st.StoreID, &st.Brand, &st.Burners, &price, &st.Stock, &st.Defected, &st.CreatedAt, &st.UpdatedAt); err != nil {
		return Stove{}, err
	}
	var err error
	st.Price, err = decimal.NewFromString(price)
	if err != nil {
		return Stove{}, fmt.Errorf("stoves: bad price %q: %w", price, err)
	}
	return st, nil
}
