package cylinders

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gasline-erp/gasline-erp/internal/ledger"
	"github.com/gasline-erp/gasline-erp/internal/shared"
	"github.com/gasline-erp/gasline-erp/internal/stock"
)

// AuditPort abstracts audit logging functionality.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service coordinates cylinder inventory operations and their paired
// ledger entries.
type Service struct {
	repo     Repository
	recorder *ledger.Recorder
	audit    AuditPort
}

func NewService(repo Repository, recorder *ledger.Recorder, audit AuditPort) *Service {
	return &Service{repo: repo, recorder: recorder, audit: audit}
}

// List returns a store's cylinders.
func (s *Service) List(ctx context.Context, storeID int64) ([]Cylinder, error) {
	return s.repo.List(ctx, storeID)
}

// Buy adds full cylinders and records one purchase entry.
func (s *Service) Buy(ctx context.Context, in BuyInput) (Result, error) {
	if in.Quantity <= 0 {
		return Result{}, stock.ErrInvalidQuantity
	}
	if in.PricePerUnit.IsNegative() {
		return Result{}, stock.ErrInvalidPrice
	}
	var res Result
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		c, err := tx.GetForUpdate(ctx, in.StoreID, in.CylinderID)
		if err != nil {
			return err
		}
		c.Full += in.Quantity
		if err := tx.UpdateCounters(ctx, c); err != nil {
			return err
		}
		amount := in.PricePerUnit.Mul(decimal.NewFromInt(in.Quantity))
		entry, err := s.recorder.Record(ctx, tx, ledger.RecordInput{
			StoreID:       in.StoreID,
			ActorID:       in.ActorID,
			Category:      "cylinder-purchase",
			Amount:        amount,
			PaymentMethod: in.Method,
			Counterparty:  ledger.Counterparty{Kind: ledger.CounterpartySupplier, ID: in.SupplierID},
			Correlation:   &ledger.CorrelationRef{Kind: ledger.CorrelateCylinder, ID: c.ID},
			Ref:           in.Ref,
			Payload: map[string]string{
				"quantity": fmt.Sprintf("%d", in.Quantity),
				"size":     c.Size,
				"price":    in.PricePerUnit.String(),
			},
			Extra: map[string]any{"quantity": in.Quantity, "unit_price": in.PricePerUnit.String()},
		})
		if err != nil {
			return err
		}
		res = Result{Cylinder: c, Entry: entry}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	s.recordAudit(ctx, in.StoreID, in.ActorID, "cylinder.buy", res)
	return res, nil
}

// Sell removes sellable cylinders and records one sale entry. Units
// under a defect mark are never sold.
func (s *Service) Sell(ctx context.Context, in SellInput) (Result, error) {
	if in.Quantity <= 0 {
		return Result{}, stock.ErrInvalidQuantity
	}
	var res Result
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		c, err := tx.GetForUpdate(ctx, in.StoreID, in.CylinderID)
		if err != nil {
			return err
		}
		if c.Sellable() < in.Quantity {
			return &stock.InsufficientStockError{Item: "cylinder", ItemID: c.ID, Requested: in.Quantity, Available: c.Sellable()}
		}
		c.Full -= in.Quantity
		if err := tx.UpdateCounters(ctx, c); err != nil {
			return err
		}
		amount := c.Price.Mul(decimal.NewFromInt(in.Quantity))
		entry, err := s.recorder.Record(ctx, tx, ledger.RecordInput{
			StoreID:       in.StoreID,
			ActorID:       in.ActorID,
			Category:      "cylinder-sale",
			Amount:        amount,
			PaymentMethod: in.Method,
			Counterparty:  ledger.Counterparty{Kind: ledger.CounterpartyCustomer, ID: in.CustomerID},
			Correlation:   &ledger.CorrelationRef{Kind: ledger.CorrelateCylinder, ID: c.ID},
			Ref:           in.Ref,
			Payload: map[string]string{
				"quantity": fmt.Sprintf("%d", in.Quantity),
				"size":     c.Size,
				"price":    c.Price.String(),
			},
			Extra: map[string]any{"quantity": in.Quantity, "unit_price": c.Price.String()},
		})
		if err != nil {
			return err
		}
		res = Result{Cylinder: c, Entry: entry}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	s.recordAudit(ctx, in.StoreID, in.ActorID, "cylinder.sell", res)
	return res, nil
}

// MarkDefected moves units into or out of the defect pool. For
// cylinders the pool lives inside Full, so neither direction changes
// the Full counter; only the sellable count moves.
func (s *Service) MarkDefected(ctx context.Context, in DefectInput) (Result, error) {
	if in.Quantity <= 0 {
		return Result{}, stock.ErrInvalidQuantity
	}
	var res Result
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		c, err := tx.GetForUpdate(ctx, in.StoreID, in.CylinderID)
		if err != nil {
			return err
		}
		if in.Mark {
			if c.Sellable() < in.Quantity {
				return &stock.InsufficientStockError{Item: "cylinder", ItemID: c.ID, Requested: in.Quantity, Available: c.Sellable()}
			}
			c.Defected += in.Quantity
		} else {
			if c.Defected < in.Quantity {
				return &stock.InsufficientStockError{Item: "cylinder", ItemID: c.ID, Requested: in.Quantity, Available: c.Defected}
			}
			c.Defected -= in.Quantity
		}
		if err := tx.UpdateCounters(ctx, c); err != nil {
			return err
		}
		entry, err := s.recorder.Record(ctx, tx, ledger.RecordInput{
			StoreID:       in.StoreID,
			ActorID:       in.ActorID,
			Category:      "cylinder-defect",
			Amount:        decimal.Zero,
			PaymentMethod: ledger.PaymentNone,
			Counterparty:  ledger.Counterparty{Kind: ledger.CounterpartyInternal},
			Correlation:   &ledger.CorrelationRef{Kind: ledger.CorrelateCylinder, ID: c.ID},
			Payload: map[string]string{
				"quantity": fmt.Sprintf("%d", in.Quantity),
				"size":     c.Size,
				"state":    defectState(in.Mark),
			},
			Extra: map[string]any{"quantity": in.Quantity, "marked": in.Mark},
		})
		if err != nil {
			return err
		}
		res = Result{Cylinder: c, Entry: entry}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	s.recordAudit(ctx, in.StoreID, in.ActorID, "cylinder.defect", res)
	return res, nil
}

func defectState(mark bool) string {
	if mark {
		return "defected"
	}
	return "restored"
}

func (s *Service) recordAudit(ctx context.Context, storeID, actorID int64, action string, res Result) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		StoreID:  storeID,
		ActorID:  actorID,
		Action:   action,
		Entity:   "cylinder",
		EntityID: fmt.Sprintf("%d", res.Cylinder.ID),
		Meta: map[string]any{
			"entry_id": res.Entry.ID.String(),
			"full":     res.Cylinder.Full,
			"empty":    res.Cylinder.Empty,
			"defected": res.Cylinder.Defected,
		},
	})
}
