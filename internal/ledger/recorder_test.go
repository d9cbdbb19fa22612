package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gasline-erp/gasline-erp/internal/ledger"
	"github.com/gasline-erp/gasline-erp/internal/ledger/categories"
	"github.com/gasline-erp/gasline-erp/internal/ledger/ledgertest"
)

type memWriter struct {
	entries []ledger.Entry
	err     error
}

func (w *memWriter) InsertEntry(ctx context.Context, entry ledger.Entry) error {
	if w.err != nil {
		return w.err
	}
	w.entries = append(w.entries, entry)
	return nil
}

func TestRecordCreatesEntry(t *testing.T) {
	recorder := ledgertest.Recorder(t, 1)
	at := time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC)
	recorder.WithNow(func() time.Time { return at })
	writer := &memWriter{}

	supplierID := int64(7)
	entry, err := recorder.Record(context.Background(), writer, ledger.RecordInput{
		StoreID:       1,
		ActorID:       42,
		Category:      "cylinder-purchase",
		Amount:        decimal.NewFromInt(5000),
		PaymentMethod: ledger.PaymentCash,
		Counterparty:  ledger.Counterparty{Kind: ledger.CounterpartySupplier, ID: &supplierID},
		Correlation:   &ledger.CorrelationRef{Kind: ledger.CorrelateCylinder, ID: 3},
		Ref:           "PO-1001",
		Payload:       map[string]string{"quantity": "10", "size": "12kg", "price": "500"},
		Extra:         map[string]any{"quantity": int64(10)},
	})
	require.NoError(t, err)

	assert.Equal(t, "1200", entry.DebitAccount)
	assert.Equal(t, "1000", entry.CreditAccount)
	assert.True(t, entry.Amount.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, "cylinder-purchase", entry.Category)
	assert.Equal(t, ledger.PaymentCash, entry.PaymentMethod)
	assert.Equal(t, ledger.CounterpartySupplier, entry.Counterparty.Kind)
	require.NotNil(t, entry.Correlation)
	assert.Equal(t, ledger.CorrelateCylinder, entry.Correlation.Kind)
	assert.Equal(t, int64(3), entry.Correlation.ID)
	assert.Equal(t, at, entry.CreatedAt)
	assert.Equal(t, "Bought 10 cylinders (12kg) at 500 each", entry.Details["description"])
	assert.Equal(t, int64(10), entry.Details["quantity"])
	assert.NotEqual(t, entry.ID.String(), "00000000-0000-0000-0000-000000000000")

	require.Len(t, writer.entries, 1)
	assert.Equal(t, entry.ID, writer.entries[0].ID)
}

func TestRecordUnknownCategory(t *testing.T) {
	recorder := ledgertest.Recorder(t, 1)
	writer := &memWriter{}

	_, err := recorder.Record(context.Background(), writer, ledger.RecordInput{
		StoreID:  1,
		Category: "no-such-category",
		Amount:   decimal.NewFromInt(100),
	})
	require.ErrorIs(t, err, categories.ErrCategoryNotFound)
	assert.Empty(t, writer.entries)
}

func TestRecordCategoryScopedToStore(t *testing.T) {
	recorder := ledgertest.Recorder(t, 1)
	writer := &memWriter{}

	_, err := recorder.Record(context.Background(), writer, ledger.RecordInput{
		StoreID:  2,
		Category: "cylinder-sale",
		Amount:   decimal.NewFromInt(100),
	})
	require.ErrorIs(t, err, categories.ErrCategoryNotFound)
}

func TestRecordNegativeAmount(t *testing.T) {
	recorder := ledgertest.Recorder(t, 1)
	writer := &memWriter{}

	_, err := recorder.Record(context.Background(), writer, ledger.RecordInput{
		StoreID:  1,
		Category: "cylinder-sale",
		Amount:   decimal.NewFromInt(-1),
	})
	require.ErrorIs(t, err, ledger.ErrInvalidAmount)
	assert.Empty(t, writer.entries)
}

func TestRecordZeroAmountAllowed(t *testing.T) {
	recorder := ledgertest.Recorder(t, 1)
	writer := &memWriter{}

	entry, err := recorder.Record(context.Background(), writer, ledger.RecordInput{
		StoreID:       1,
		Category:      "cylinder-defect",
		Amount:        decimal.Zero,
		PaymentMethod: ledger.PaymentNone,
		Payload:       map[string]string{"quantity": "2", "size": "12kg", "state": "defected"},
	})
	require.NoError(t, err)
	assert.True(t, entry.Amount.IsZero())
	assert.Equal(t, "Marked 2 cylinders (12kg) as defected", entry.Details["description"])
}

func TestRecordInactiveAccount(t *testing.T) {
	acc, cat := ledgertest.Registries(t, 1)
	require.NoError(t, acc.Deactivate(context.Background(), 1, "4000"))
	recorder := ledger.NewRecorder(acc, cat)
	writer := &memWriter{}

	_, err := recorder.Record(context.Background(), writer, ledger.RecordInput{
		StoreID:  1,
		Category: "cylinder-sale",
		Amount:   decimal.NewFromInt(100),
	})
	require.ErrorIs(t, err, ledger.ErrMisconfiguredCategory)

	var cfgErr *ledger.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, int64(1), cfgErr.StoreID)
	assert.Equal(t, "cylinder-sale", cfgErr.Category)
	assert.Equal(t, "4000", cfgErr.AccountCode)
	assert.Empty(t, writer.entries)
}

func TestRecordWriterErrorPropagates(t *testing.T) {
	recorder := ledgertest.Recorder(t, 1)
	boom := errors.New("insert failed")
	writer := &memWriter{err: boom}

	_, err := recorder.Record(context.Background(), writer, ledger.RecordInput{
		StoreID:  1,
		Category: "cylinder-sale",
		Amount:   decimal.NewFromInt(100),
	})
	require.ErrorIs(t, err, boom)
}
