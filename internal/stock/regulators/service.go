package regulators

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

// Service coordinates regulator inventory operations.
type Service struct {
	repo     Repository
	recorder *ledger.Recorder
	audit    AuditPort
}

func NewService(repo Repository, recorder *ledger.Recorder, audit AuditPort) *Service {
	return &Service{repo: repo, recorder: recorder, audit: audit}
}

// List returns a store's regulators.
func (s *Service) List(ctx context.Context, storeID int64) ([]Regulator, error) {
	return s.repo.List(ctx, storeID)
}

// Buy adds stock and records one purchase entry.
func (s *Service) Buy(ctx context.Context, in BuyInput) (Result, error) {
	if in.Quantity <= 0 {
		return Result{}, stock.ErrInvalidQuantity
	}
	if in.PricePerUnit.IsNegative() {
		return Result{}, stock.ErrInvalidPrice
	}
	var res Result
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		reg, err := tx.GetForUpdate(ctx, in.StoreID, in.RegulatorID)
		if err != nil {
			return err
		}
		reg.Stock += in.Quantity
		if err := tx.UpdateCounters(ctx, reg); err != nil {
			return err
		}
		entry, err := s.recorder.Record(ctx, tx, ledger.RecordInput{
			StoreID:       in.StoreID,
			ActorID:       in.ActorID,
			Category:      "regulator-purchase",
			Amount:        in.PricePerUnit.Mul(decimal.NewFromInt(in.Quantity)),
			PaymentMethod: in.Method,
			Counterparty:  ledger.Counterparty{Kind: ledger.CounterpartySupplier, ID: in.SupplierID},
			Correlation:   &ledger.CorrelationRef{Kind: ledger.CorrelateRegulator, ID: reg.ID},
			Ref:           in.Ref,
			Payload: map[string]string{
				"quantity": fmt.Sprintf("%d", in.Quantity),
				"type":     reg.Type,
				"price":    in.PricePerUnit.String(),
			},
			Extra: map[string]any{"quantity": in.Quantity, "unit_price": in.PricePerUnit.String()},
		})
		if err != nil {
			return err
		}
		res = Result{Regulator: reg, Entry: entry}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	s.recordAudit(ctx, in.StoreID, in.ActorID, "regulator.buy", res)
	return res, nil
}

// Sell removes stock and records one sale entry.
func (s *Service) Sell(ctx context.Context, in SellInput) (Result, error) {
	if in.Quantity <= 0 {
		return Result{}, stock.ErrInvalidQuantity
	}
	var res Result
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		reg, err := tx.GetForUpdate(ctx, in.StoreID, in.RegulatorID)
		if err != nil {
			return err
		}
		if reg.Stock < in.Quantity {
			return &stock.InsufficientStockError{Item: "regulator", ItemID: reg.ID, Requested: in.Quantity, Available: reg.Stock}
		}
		reg.Stock -= in.Quantity
		if err := tx.UpdateCounters(ctx, reg); err != nil {
			return err
		}
		entry, err := s.recorder.Record(ctx, tx, ledger.RecordInput{
			StoreID:       in.StoreID,
			ActorID:       in.ActorID,
			Category:      "regulator-sale",
			Amount:        reg.Price.Mul(decimal.NewFromInt(in.Quantity)),
			PaymentMethod: in.Method,
			Counterparty:  ledger.Counterparty{Kind: ledger.CounterpartyCustomer, ID: in.CustomerID},
			Correlation:   &ledger.CorrelationRef{Kind: ledger.CorrelateRegulator, ID: reg.ID},
			Ref:           in.Ref,
			Payload: map[string]string{
				"quantity": fmt.Sprintf("%d", in.Quantity),
				"type":     reg.Type,
				"price":    reg.Price.String(),
			},
			Extra: map[string]any{"quantity": in.Quantity, "unit_price": reg.Price.String()},
		})
		if err != nil {
			return err
		}
		res = Result{Regulator: reg, Entry: entry}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	s.recordAudit(ctx, in.StoreID, in.ActorID, "regulator.sell", res)
	return res, nil
}

// MarkDefected moves units between the Stock and Defected pools. Unlike
// cylinders the pools are disjoint, so unmarking restores Stock.
func (s *Service) MarkDefected(ctx context.Context, in DefectInput) (Result, error) {
	if in.Quantity <= 0 {
		return Result{}, stock.ErrInvalidQuantity
	}
	var res Result
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		reg, err := tx.GetForUpdate(ctx, in.StoreID, in.RegulatorID)
		if err != nil {
			return err
		}
		if in.Mark {
			if reg.Stock < in.Quantity {
				return &stock.InsufficientStockError{Item: "regulator", ItemID: reg.ID, Requested: in.Quantity, Available: reg.Stock}
			}
			reg.Stock -= in.Quantity
			reg.Defected += in.Quantity
		} else {
			if reg.Defected < in.Quantity {
				return &stock.InsufficientStockError{Item: "regulator", ItemID: reg.ID, Requested: in.Quantity, Available: reg.Defected}
			}
			reg.Defected -= in.Quantity
			reg.Stock += in.Quantity
		}
		if err := tx.UpdateCounters(ctx, reg); err != nil {
			return err
		}
		entry, err := s.recorder.Record(ctx, tx, ledger.RecordInput{
			StoreID:       in.StoreID,
			ActorID:       in.ActorID,
			Category:      "regulator-defect",
			Amount:        decimal.Zero,
			PaymentMethod: ledger.PaymentNone,
			Counterparty:  ledger.Counterparty{Kind: ledger.CounterpartyInternal},
			Correlation:   &ledger.CorrelationRef{Kind: ledger.CorrelateRegulator, ID: reg.ID},
			Payload: map[string]string{
				"quantity": fmt.Sprintf("%d", in.Quantity),
				"type":     reg.Type,
				"state":    defectState(in.Mark),
			},
			Extra: map[string]any{"quantity": in.Quantity, "marked": in.Mark},
		})
		if err != nil {
			return err
		}
		res = Result{Regulator: reg, Entry: entry}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	s.recordAudit(ctx, in.StoreID, in.ActorID, "regulator.defect", res)
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
		Entity:   "regulator",
		EntityID: fmt.Sprintf("%d", res.Regulator.ID),
		Meta: map[string]any{
			"entry_id": res.Entry.ID.String(),
			"stock":    res.Regulator.Stock,
			"defected": res.Regulator.Defected,
		},
	})
}
