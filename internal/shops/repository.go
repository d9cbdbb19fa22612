package shops

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
	"github.com/gasline-erp/gasline-erp/internal/stock/cylinders"
)

// Repository encapsulates DB operations for shops.
type Repository interface {
	Get(ctx context.Context, storeID, shopID int64) (Shop, error)
	List(ctx context.Context, storeID int64) ([]Shop, error)
	Create(ctx context.Context, shop Shop) (Shop, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes the methods available within an exchange or due
// clearance transaction. Cylinder row operations are duplicated from the
// cylinders repository because they must run on this transaction.
type TxRepository interface {
	GetShopForUpdate(ctx context.Context, storeID, shopID int64) (Shop, error)
	UpdateAggregates(ctx context.Context, shop Shop) error
	GetCylinderForUpdate(ctx context.Context, storeID, id int64) (cylinders.Cylinder, error)
	UpdateCylinderCounters(ctx context.Context, c cylinders.Cylinder) error
	InsertEntry(ctx context.Context, entry ledger.Entry) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const shopColumns = `id, store_id, name, phone, address, total_due::text, total_purchases::text, total_payments::text, total_deliveries, created_at, updated_at`

func (r *repository) Get(ctx context.Context, storeID, shopID int64) (Shop, error) {
	row := r.db.QueryRow(ctx, `SELECT `+shopColumns+` FROM shops WHERE store_id=$1 AND id=$2`, storeID, shopID)
	shop, err := scanShop(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Shop{}, ErrShopNotFound
		}
		return Shop{}, err
	}
	return shop, nil
}

func (r *repository) List(ctx context.Context, storeID int64) ([]Shop, error) {
	rows, err := r.db.Query(ctx, `SELECT `+shopColumns+` FROM shops WHERE store_id=$1 ORDER BY name`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Shop
	for rows.Next() {
		shop, err := scanShop(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, shop)
	}
	return out, rows.Err()
}

func (r *repository) Create(ctx context.Context, shop Shop) (Shop, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO shops (store_id, name, phone, address, total_due, total_purchases, total_payments, total_deliveries)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id, created_at, updated_at`,
		shop.StoreID, shop.Name, shop.Phone, shop.Address,
		shop.TotalDue.StringFixed(2), shop.TotalPurchases.StringFixed(2), shop.TotalPayments.StringFixed(2), shop.TotalDeliveries)
	if err := row.Scan(&shop.ID, &shop.CreatedAt, &shop.UpdatedAt); err != nil {
		return Shop{}, err
	}
	return shop, nil
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

type txRepository struct {
	tx pgx.Tx
}

func (r *txRepository) GetShopForUpdate(ctx context.Context, storeID, shopID int64) (Shop, error) {
	row := r.tx.QueryRow(ctx, `SELECT `+shopColumns+` FROM shops WHERE store_id=$1 AND id=$2 FOR UPDATE`, storeID, shopID)
	shop, err := scanShop(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Shop{}, ErrShopNotFound
		}
		return Shop{}, err
	}
	return shop, nil
}

func (r *txRepository) UpdateAggregates(ctx context.Context, shop Shop) error {
	cmd, err := r.tx.Exec(ctx, `UPDATE shops SET total_due=$3, total_purchases=$4, total_payments=$5, total_deliveries=$6, updated_at=NOW()
WHERE store_id=$1 AND id=$2`, shop.StoreID, shop.ID,
		shop.TotalDue.StringFixed(2), shop.TotalPurchases.StringFixed(2), shop.TotalPayments.StringFixed(2), shop.TotalDeliveries)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrShopNotFound
	}
	return nil
}

func (r *txRepository) GetCylinderForUpdate(ctx context.Context, storeID, id int64) (cylinders.Cylinder, error) {
	row := r.tx.QueryRow(ctx, `SELECT id, store_id, brand, size, price::text, full_count, empty_count, defected_count, created_at, updated_at
FROM cylinders WHERE store_id=$1 AND id=$2 FOR UPDATE`, storeID, id)
	var c cylinders.Cylinder
	var price string
	if err := row.Scan(&c.ID, &c.StoreID, &c.Brand, &c.Size, &price, &c.Full, &c.Empty, &c.Defected, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cylinders.Cylinder{}, stock.ErrItemNotFound
		}
		return cylinders.Cylinder{}, err
	}
	var err error
	c.Price, err = decimal.NewFromString(price)
	if err != nil {
		return cylinders.Cylinder{}, fmt.Errorf("shops: bad cylinder price %q: %w", price, err)
	}
	return c, nil
}

func (r *txRepository) UpdateCylinderCounters(ctx context.Context, c cylinders.Cylinder) error {
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

type shopScanner interface {
	Scan(dest ...any) error
}

func scanShop(row shopScanner) (Shop, error) {
	var s Shop
	var due, purchases, payments string
	if err := row.Scan(&s.ID, &s.StoreID, &s.Name, &s.Phone, &s.Address, &due, &purchases, &payments, &s.TotalDeliveries, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return Shop{}, err
	}
	var err error
	if s.TotalDue, err = decimal.NewFromString(due); err != nil {
		return Shop{}, fmt.Errorf("shops: bad total_due %q: %w", due, err)
	}
	if s.TotalPurchases, err = decimal.NewFromString(purchases); err != nil {
		return Shop{}, fmt.Errorf("shops: bad total_purchases %q: %w", purchases, err)
	}
	if s.TotalPayments, err = decimal.NewFromString(payments); err != nil {
		return Shop{}, fmt.Errorf("shops: bad total_payments %q: %w", payments, err)
	}
	return s, nil
}
