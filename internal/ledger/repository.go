package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Filter narrows entry listing. Zero values mean "any".
type Filter struct {
	StoreID  int64
	Category string
	ShopID   int64
	Limit    int
}

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// clampLimit maps a requested page size onto [1, maxListLimit], with
// defaultListLimit for unset or non-positive values.
func clampLimit(n int) int {
	switch {
	case n <= 0:
		return defaultListLimit
	case n > maxListLimit:
		return maxListLimit
	}
	return n
}

// Repository is the read surface over ledger entries. There is
// deliberately no update or delete: entries are append-only.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]Entry, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, filter Filter) ([]Entry, error) {
	query := `SELECT id, store_id, debit_account, credit_account, amount::text, category, payment_method,
counterparty_kind, counterparty_id, correlation_kind, correlation_id, ref, details, actor_id, created_at
FROM ledger_entries WHERE store_id=$1`
	args := []any{filter.StoreID}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category=$%d", len(args))
	}
	if filter.ShopID != 0 {
		args = append(args, filter.ShopID)
		query += fmt.Sprintf(" AND counterparty_kind='SHOP' AND counterparty_id=$%d", len(args))
	}
	query += " ORDER BY created_at DESC"
	args = append(args, clampLimit(filter.Limit))
	query += fmt.Sprintf(" LIMIT $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e           Entry
			amount      string
			cpID        *int64
			corrKind    *string
			corrID      *int64
			detailsJSON []byte
		)
		if err := rows.Scan(&e.ID, &e.StoreID, &e.DebitAccount, &e.CreditAccount, &amount, &e.Category, &e.PaymentMethod,
			&e.Counterparty.Kind, &cpID, &corrKind, &corrID, &e.Ref, &detailsJSON, &e.ActorID, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("ledger: bad amount %q: %w", amount, err)
		}
		e.Counterparty.ID = cpID
		if corrKind != nil && corrID != nil {
			e.Correlation = &CorrelationRef{Kind: CorrelationKind(*corrKind), ID: *corrID}
		}
		if len(detailsJSON) > 0 {
			if err := json.Unmarshal(detailsJSON, &e.Details); err != nil {
				return nil, err
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// InsertEntryTx writes one entry inside the caller's transaction. The
// inventory and shop transaction repositories build their EntryWriter
// on top of this so every leg shares the operation's boundary.
func InsertEntryTx(ctx context.Context, tx pgx.Tx, e Entry) error {
	detailsJSON, err := json.Marshal(e.Details)
	if err != nil {
		return err
	}
	var corrKind *CorrelationKind
	var corrID *int64
	if e.Correlation != nil {
		corrKind = &e.Correlation.Kind
		corrID = &e.Correlation.ID
	}
	_, err = tx.Exec(ctx, `INSERT INTO ledger_entries
(id, store_id, debit_account, credit_account, amount, category, payment_method,
 counterparty_kind, counterparty_id, correlation_kind, correlation_id, ref, details, actor_id, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		e.ID, e.StoreID, e.DebitAccount, e.CreditAccount, e.Amount.StringFixed(2), e.Category, e.PaymentMethod,
		e.Counterparty.Kind, e.Counterparty.ID, corrKind, corrID, e.Ref, detailsJSON, e.ActorID, e.CreatedAt)
	return err
}
