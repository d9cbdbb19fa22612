package cylinders

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

// Repository encapsulates DB operations for cylinders.
type Repository interface {
	List(ctx context.Context, storeID int64) ([]Cylinder, error)
	Create(ctx context.Context, c Cylinder) (Cylinder, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes the methods available within a transaction. It
// is also the ledger.EntryWriter for this module so counter changes and
// entries share one boundary.
type TxRepository interface {
	GetForUpdate(ctx context.Context, storeID, id int64) (Cylinder, error)
	UpdateCounters(ctx context.Context, c Cylinder) error
	InsertEntry(ctx context.Context, entry ledger.Entry) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, storeID int64) ([]Cylinder, error) {
	rows, err := r.db.Query(ctx, `SELECT id, store_id, brand, size, price::text, full_count, empty_count, defected_count, created_at, updated_at
FROM cylinders WHERE store_id=$1 ORDER BY brand, size`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Cylinder
	for rows.Next() {
		c, err := scanCylinder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repository) Create(ctx context.Context, c Cylinder) (Cylinder, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO cylinders (store_id, brand, size, price, full_count, empty_count, defected_count)
VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id, created_at, updated_at`,
		c.StoreID, c.Brand, c.Size, c.Price.StringFixed(2), c.Full, c.Empty, c.Defected)
	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return Cylinder{}, err
	}
	return c, nil
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

type txRepository struct {
	tx pgx.Tx
}

func (r *txRepository) GetForUpdate(ctx context.Context, storeID, id int64) (Cylinder, error) {
	row := r.tx.QueryRow(ctx, `SELECT id, store_id, brand, size, price::text, full_count, empty_count, defected_count, created_at, updated_at
FROM cylinders WHERE store_id=$1 AND id=$2 FOR UPDATE`, storeID, id)
	c, err := scanCylinder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Cylinder{}, stock.ErrItemNotFound
		}
		return Cylinder{}, err
	}
	return c, nil
}

func (r *txRepository) UpdateCounters(ctx context.Context, c Cylinder) error {
	cmd, err := r.tx.Exec(ctx, `UPDATE cylinders SET full_count=$3, empty_count=$4, defected_count=$5, updated_at=NOW()
WHERE store_id=$1 AND id=$2`, c.StoreID, c.ID, c.Full, c.Empty, c.Defected)
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

type cylinderScanner interface {
	Scan(dest ...any) error
}

func scanCylinder(row cylinderScanner) (Cylinder, error) {
	var c Cylinder
	var price string
	if err := row.Scan(&c.ID, &c.StoreID, &c.Brand, &c.Size, &price, &c.Full, &c.Empty, &c.Defected, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return Cylinder{}, err
	}
	var err error
	c.Price, err = decimal.NewFromString(price)
	if err != nil {
		return Cylinder{}, fmt.Errorf("cylinders: bad price %q: %w", price, err)
	}
	return c, nil
}
