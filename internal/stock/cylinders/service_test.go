package cylinders

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gasline-erp/gasline-erp/internal/ledger"
	"github.com/gasline-erp/gasline-erp/internal/ledger/ledgertest"
	"github.com/gasline-erp/gasline-erp/internal/shared"
	"github.com/gasline-erp/gasline-erp/internal/stock"
)

type memRepository struct {
	cylinders map[int64]Cylinder
	entries   []ledger.Entry
	nextID    int64
}

func newMemRepository() *memRepository {
	return &memRepository{cylinders: make(map[int64]Cylinder), nextID: 1}
}

func (m *memRepository) List(ctx context.Context, storeID int64) ([]Cylinder, error) {
	var out []Cylinder
	for _, c := range m.cylinders {
		if c.StoreID == storeID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memRepository) Create(ctx context.Context, c Cylinder) (Cylinder, error) {
	c.ID = m.nextID
	m.nextID++
	m.cylinders[c.ID] = c
	return c, nil
}

// WithTx snapshots state and restores it when fn fails, mirroring a
// database rollback.
func (m *memRepository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	snapshot := make(map[int64]Cylinder, len(m.cylinders))
	for id, c := range m.cylinders {
		snapshot[id] = c
	}
	entryMark := len(m.entries)
	if err := fn(ctx, &memTxRepository{repo: m}); err != nil {
		m.cylinders = snapshot
		m.entries = m.entries[:entryMark]
		return err
	}
	return nil
}

type memTxRepository struct {
	repo *memRepository
}

func (t *memTxRepository) GetForUpdate(ctx context.Context, storeID, id int64) (Cylinder, error) {
	c, ok := t.repo.cylinders[id]
	if !ok || c.StoreID != storeID {
		return Cylinder{}, stock.ErrItemNotFound
	}
	return c, nil
}

func (t *memTxRepository) UpdateCounters(ctx context.Context, c Cylinder) error {
	t.repo.cylinders[c.ID] = c
	return nil
}

func (t *memTxRepository) InsertEntry(ctx context.Context, entry ledger.Entry) error {
	t.repo.entries = append(t.repo.entries, entry)
	return nil
}

type memAudit struct {
	logs []shared.AuditLog
}

func (a *memAudit) Record(ctx context.Context, log shared.AuditLog) error {
	a.logs = append(a.logs, log)
	return nil
}

func newTestService(t *testing.T) (*Service, *memRepository, *memAudit) {
	t.Helper()
	repo := newMemRepository()
	audit := &memAudit{}
	return NewService(repo, ledgertest.Recorder(t, 1), audit), repo, audit
}

func seedCylinder(repo *memRepository, c Cylinder) Cylinder {
	if c.StoreID == 0 {
		c.StoreID = 1
	}
	created, _ := repo.Create(context.Background(), c)
	return created
}

func TestBuyAddsStockAndRecordsPurchase(t *testing.T) {
	svc, repo, audit := newTestService(t)
	c := seedCylinder(repo, Cylinder{Brand: "Omera", Size: "12kg", Price: decimal.NewFromInt(1400)})

	res, err := svc.Buy(context.Background(), BuyInput{
		StoreID:      1,
		ActorID:      9,
		CylinderID:   c.ID,
		Quantity:     10,
		PricePerUnit: decimal.NewFromInt(500),
		Method:       ledger.PaymentCash,
		Ref:          "PO-1",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), res.Cylinder.Full)
	assert.Equal(t, int64(10), repo.cylinders[c.ID].Full)

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.Equal(t, "cylinder-purchase", entry.Category)
	assert.Equal(t, "1200", entry.DebitAccount)
	assert.Equal(t, "1000", entry.CreditAccount)
	assert.True(t, entry.Amount.Equal(decimal.NewFromInt(5000)))
	require.NotNil(t, entry.Correlation)
	assert.Equal(t, ledger.CorrelateCylinder, entry.Correlation.Kind)
	assert.Equal(t, c.ID, entry.Correlation.ID)
	assert.Equal(t, "Bought 10 cylinders (12kg) at 500 each", entry.Details["description"])

	require.Len(t, audit.logs, 1)
	assert.Equal(t, "cylinder.buy", audit.logs[0].Action)
}

func TestBuyRejectsBadInput(t *testing.T) {
	svc, repo, _ := newTestService(t)
	c := seedCylinder(repo, Cylinder{Size: "12kg", Price: decimal.NewFromInt(1400)})

	_, err := svc.Buy(context.Background(), BuyInput{StoreID: 1, CylinderID: c.ID, Quantity: 0, PricePerUnit: decimal.NewFromInt(500)})
	require.ErrorIs(t, err, stock.ErrInvalidQuantity)

	_, err = svc.Buy(context.Background(), BuyInput{StoreID: 1, CylinderID: c.ID, Quantity: 1, PricePerUnit: decimal.NewFromInt(-5)})
	require.ErrorIs(t, err, stock.ErrInvalidPrice)

	assert.Empty(t, repo.entries)
}

func TestSellDecrementsStockAtCatalogPrice(t *testing.T) {
	svc, repo, _ := newTestService(t)
	c := seedCylinder(repo, Cylinder{Size: "12kg", Price: decimal.NewFromInt(1400), Full: 10})

	res, err := svc.Sell(context.Background(), SellInput{
		StoreID:    1,
		CylinderID: c.ID,
		Quantity:   3,
		Method:     ledger.PaymentMobile,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), res.Cylinder.Full)
	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.Equal(t, "cylinder-sale", entry.Category)
	assert.Equal(t, "1000", entry.DebitAccount)
	assert.Equal(t, "4000", entry.CreditAccount)
	assert.True(t, entry.Amount.Equal(decimal.NewFromInt(4200)))
	assert.Equal(t, ledger.PaymentMobile, entry.PaymentMethod)
}

func TestSellInsufficientStock(t *testing.T) {
	svc, repo, audit := newTestService(t)
	c := seedCylinder(repo, Cylinder{Size: "12kg", Price: decimal.NewFromInt(1400), Full: 2})

	_, err := svc.Sell(context.Background(), SellInput{StoreID: 1, CylinderID: c.ID, Quantity: 5, Method: ledger.PaymentCash})
	require.ErrorIs(t, err, stock.ErrInsufficientStock)

	var stockErr *stock.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(5), stockErr.Requested)
	assert.Equal(t, int64(2), stockErr.Available)

	assert.Equal(t, int64(2), repo.cylinders[c.ID].Full)
	assert.Empty(t, repo.entries)
	assert.Empty(t, audit.logs)
}

func TestSellExcludesDefectedUnits(t *testing.T) {
	svc, repo, _ := newTestService(t)
	c := seedCylinder(repo, Cylinder{Size: "12kg", Price: decimal.NewFromInt(1400), Full: 5, Defected: 3})

	_, err := svc.Sell(context.Background(), SellInput{StoreID: 1, CylinderID: c.ID, Quantity: 3, Method: ledger.PaymentCash})
	require.ErrorIs(t, err, stock.ErrInsufficientStock)

	res, err := svc.Sell(context.Background(), SellInput{StoreID: 1, CylinderID: c.ID, Quantity: 2, Method: ledger.PaymentCash})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Cylinder.Full)
}

func TestMarkDefectedKeepsFullCount(t *testing.T) {
	svc, repo, _ := newTestService(t)
	c := seedCylinder(repo, Cylinder{Size: "12kg", Price: decimal.NewFromInt(1400), Full: 10})

	res, err := svc.MarkDefected(context.Background(), DefectInput{StoreID: 1, CylinderID: c.ID, Quantity: 4, Mark: true})
	require.NoError(t, err)

	// Defected cylinders stay in the Full pool; only sellability moves.
	assert.Equal(t, int64(10), res.Cylinder.Full)
	assert.Equal(t, int64(4), res.Cylinder.Defected)
	assert.Equal(t, int64(6), res.Cylinder.Sellable())

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.Equal(t, "cylinder-defect", entry.Category)
	assert.True(t, entry.Amount.IsZero())
	assert.Equal(t, ledger.PaymentNone, entry.PaymentMethod)
	assert.Equal(t, ledger.CounterpartyInternal, entry.Counterparty.Kind)
}

func TestUnmarkDefectedRestoresSellability(t *testing.T) {
	svc, repo, _ := newTestService(t)
	c := seedCylinder(repo, Cylinder{Size: "12kg", Price: decimal.NewFromInt(1400), Full: 10, Defected: 4})

	res, err := svc.MarkDefected(context.Background(), DefectInput{StoreID: 1, CylinderID: c.ID, Quantity: 4, Mark: false})
	require.NoError(t, err)

	assert.Equal(t, int64(10), res.Cylinder.Full)
	assert.Equal(t, int64(0), res.Cylinder.Defected)
	assert.Equal(t, int64(10), res.Cylinder.Sellable())
	assert.Equal(t, int64(0), repo.cylinders[c.ID].Defected)
}

func TestUnmarkMoreThanDefectedFails(t *testing.T) {
	svc, repo, _ := newTestService(t)
	c := seedCylinder(repo, Cylinder{Size: "12kg", Price: decimal.NewFromInt(1400), Full: 10, Defected: 1})

	_, err := svc.MarkDefected(context.Background(), DefectInput{StoreID: 1, CylinderID: c.ID, Quantity: 2, Mark: false})
	require.ErrorIs(t, err, stock.ErrInsufficientStock)
	assert.Equal(t, int64(1), repo.cylinders[c.ID].Defected)
}

func TestBuyRollsBackOnMisconfiguredStore(t *testing.T) {
	repo := newMemRepository()
	acc, cat := ledgertest.Registries(t, 1)
	require.NoError(t, acc.Deactivate(context.Background(), 1, "1200"))
	svc := NewService(repo, ledger.NewRecorder(acc, cat), nil)

	c := seedCylinder(repo, Cylinder{Size: "12kg", Price: decimal.NewFromInt(1400), Full: 5})

	_, err := svc.Buy(context.Background(), BuyInput{
		StoreID:      1,
		CylinderID:   c.ID,
		Quantity:     10,
		PricePerUnit: decimal.NewFromInt(500),
		Method:       ledger.PaymentCash,
	})
	require.ErrorIs(t, err, ledger.ErrMisconfiguredCategory)

	// Counter change rolled back with the failed entry.
	assert.Equal(t, int64(5), repo.cylinders[c.ID].Full)
	assert.Empty(t, repo.entries)
}

func TestOperationsAreStoreScoped(t *testing.T) {
	svc, repo, _ := newTestService(t)
	c := seedCylinder(repo, Cylinder{StoreID: 2, Size: "12kg", Price: decimal.NewFromInt(1400), Full: 5})

	_, err := svc.Sell(context.Background(), SellInput{StoreID: 1, CylinderID: c.ID, Quantity: 1, Method: ledger.PaymentCash})
	require.ErrorIs(t, err, stock.ErrItemNotFound)
}
