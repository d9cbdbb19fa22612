package regulators

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

// Repository encapsulates DB operations for regulators.
type Repository interface {
	List(ctx context.Context, storeID int64) ([]Regulator, error)
	Create(ctx context.Context, reg Regulator) (Regulator, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes the methods available within a transaction.
type TxRepository interface {
	GetForUpdate(ctx context.Context, storeID, id int64) (Regulator, error)
	UpdateCounters(ctx context.Context, reg Regulator) error
	InsertEntry(ctx context.Context, entry ledger.Entry) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, storeID int64) ([]Regulator, error) {
	rows, err := r.db.Query(ctx, `SELECT id, store_id, brand, type, price::text, stock_count, defected_count, created_at, updated_at
FROM regulators WHERE store_id=$1 ORDER BY brand, type`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Regulator
	for rows.Next() {
		reg, err := scanRegulator(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}

func (r *repository) Create(ctx context.Context, reg Regulator) (Regulator, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO regulators (store_id, brand, type, price, stock_count, defected_count)
VALUES ($1,$2,$3,$4,$5,$6) RETURNING id, created_at, updated_at`,
		reg.StoreID, reg.Brand, reg.Type, reg.Price.StringFixed(2), reg.Stock, reg.Defected)
	if err := row.Scan(&reg.ID, &reg.CreatedAt, &reg.UpdatedAt); err != nil {
		return Regulator{}, err
	}
	return reg, nil
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

type txRepository struct {
	tx pgx.Tx
}

func (r *txRepository) GetForUpdate(ctx context.Context, storeID, id int64) (Regulator, error) {
	row := r.tx.QueryRow(ctx, `SELECT id, store_id, brand, type, price::text, stock_count, defected_count, created_at, updated_at
FROM regulators WHERE store_id=$1 AND id=$2 FOR UPDATE`, storeID, id)
	reg, err := scanRegulator(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Regulator{}, stock.ErrItemNotFound
		}
		return Regulator{}, err
	}
	return reg, nil
}

func (r *txRepository) UpdateCounters(ctx context.Context, reg Regulator) error {
	cmd, err := r.tx.Exec(ctx, `UPDATE regulators SET stock_count=$3, defected_count=$4, updated_at=NOW()
WHERE store_id=$1 AND id=$2`, reg.StoreID, reg.ID, reg.Stock, reg.Defected)
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

type regulatorScanner interface {
	Scan(dest ...any) error
}

func scanRegulator(row regulatorScanner) (Regulator, error) {
	var reg Regulator
	var price string
	if err := row.Scan(&reg.ID, &reg.StoreID, &reg.Brand, &reg.Type, &price, &reg.Stock, &reg.Defected, &reg.CreatedAt, &reg.UpdatedAt); err != nil {
		return Regulator{}, err
	}
	var err error
	reg.Price, err = decimal.NewFromString(price)
	if err != nil {
		return Regulator{}, fmt.Errorf("regulators: bad price %q: %w", price, err)
	}
	return reg, nil
}
