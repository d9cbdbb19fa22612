package shops

import (
	"context"
	"fmt"

	"github.com/gasline-erp/gasline-erp/internal/ledger"
	"github.com/gasline-erp/gasline-erp/internal/shared"
	"github.com/gasline-erp/gasline-erp/internal/stock"
	"github.com/gasline-erp/gasline-erp/internal/stock/cylinders"
)

// AuditPort abstracts audit logging functionality.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service coordinates shop exchanges and due clearance.
type Service struct {
	repo     Repository
	recorder *ledger.Recorder
	audit    AuditPort
}

func NewService(repo Repository, recorder *ledger.Recorder, audit AuditPort) *Service {
	return &Service{repo: repo, recorder: recorder, audit: audit}
}

// Get returns one shop with its aggregates.
func (s *Service) Get(ctx context.Context, storeID, shopID int64) (Shop, error) {
	return s.repo.Get(ctx, storeID, shopID)
}

// List returns a store's shops.
func (s *Service) List(ctx context.Context, storeID int64) ([]Shop, error) {
	return s.repo.List(ctx, storeID)
}

// Create registers a shop.
func (s *Service) Create(ctx context.Context, shop Shop) (Shop, error) {
	return s.repo.Create(ctx, shop)
}

// Exchange atomically receives empties, delivers fulls, moves the shop
// aggregates and posts up to two entries: a cash leg for the paid
// portion and a receivable leg for the due portion. Either everything
// commits or nothing does.
func (s *Service) Exchange(ctx context.Context, in ExchangeInput) (ExchangeResult, error) {
	if err := validateExchange(in); err != nil {
		return ExchangeResult{}, err
	}
	var res ExchangeResult
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		shop, err := tx.GetShopForUpdate(ctx, in.StoreID, in.ShopID)
		if err != nil {
			return err
		}

		var totalIn, totalOut int64
		touched := make(map[int64]cylinders.Cylinder)
		for _, line := range in.Take {
			c, err := s.lockCylinder(ctx, tx, in.StoreID, line.CylinderID, touched)
			if err != nil {
				return err
			}
			c.Empty += line.Quantity
			totalIn += line.Quantity
			touched[c.ID] = c
		}
		for _, line := range in.Give {
			c, err := s.lockCylinder(ctx, tx, in.StoreID, line.CylinderID, touched)
			if err != nil {
				return err
			}
			if c.Sellable() < line.Quantity {
				return &stock.InsufficientStockError{Item: "cylinder", ItemID: c.ID, Requested: line.Quantity, Available: c.Sellable()}
			}
			c.Full -= line.Quantity
			totalOut += line.Quantity
			touched[c.ID] = c
		}
		if totalIn != totalOut {
			return &MismatchedExchangeError{TakeQty: totalIn, GiveQty: totalOut}
		}

		for _, c := range touched {
			if err := tx.UpdateCylinderCounters(ctx, c); err != nil {
				return err
			}
		}

		shop.TotalDue = shop.TotalDue.Add(in.Due)
		shop.TotalPurchases = shop.TotalPurchases.Add(in.TotalPrice)
		shop.TotalPayments = shop.TotalPayments.Add(in.PaidAmount)
		shop.TotalDeliveries += totalOut
		if err := tx.UpdateAggregates(ctx, shop); err != nil {
			return err
		}

		var entries []ledger.Entry
		extra := map[string]any{
			"total":    in.TotalPrice.String(),
			"paid":     in.PaidAmount.String(),
			"due":      in.Due.String(),
			"quantity": totalOut,
		}
		if in.VehicleID != nil {
			extra["vehicle_id"] = *in.VehicleID
		}
		if in.PaidAmount.IsPositive() {
			entry, err := s.recorder.Record(ctx, tx, ledger.RecordInput{
				StoreID:       in.StoreID,
				ActorID:       in.ActorID,
				Category:      "exchange-cash",
				Amount:        in.PaidAmount,
				PaymentMethod: in.Method,
				Counterparty:  ledger.Counterparty{Kind: ledger.CounterpartyShop, ID: &shop.ID},
				Correlation:   &ledger.CorrelationRef{Kind: ledger.CorrelateShop, ID: shop.ID},
				Ref:           in.Ref,
				Payload: map[string]string{
					"shop":     shop.Name,
					"quantity": fmt.Sprintf("%d", totalOut),
					"paid":     in.PaidAmount.String(),
					"total":    in.TotalPrice.String(),
				},
				Extra: extra,
			})
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		if in.Due.IsPositive() {
			// The due leg posts the receivable amount itself so the
			// ledger balances against the shop's TotalDue growth.
			entry, err := s.recorder.Record(ctx, tx, ledger.RecordInput{
				StoreID:       in.StoreID,
				ActorID:       in.ActorID,
				Category:      "exchange-credit",
				Amount:        in.Due,
				PaymentMethod: ledger.PaymentNone,
				Counterparty:  ledger.Counterparty{Kind: ledger.CounterpartyShop, ID: &shop.ID},
				Correlation:   &ledger.CorrelationRef{Kind: ledger.CorrelateShop, ID: shop.ID},
				Ref:           in.Ref,
				Payload: map[string]string{
					"shop":  shop.Name,
					"due":   in.Due.String(),
					"total": in.TotalPrice.String(),
				},
				Extra: extra,
			})
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}

		res.Shop = shop
		res.Entries = entries
		res.Cylinders = res.Cylinders[:0]
		for _, c := range touched {
			res.Cylinders = append(res.Cylinders, c)
		}
		return nil
	})
	if err != nil {
		return ExchangeResult{}, err
	}
	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			StoreID:  in.StoreID,
			ActorID:  in.ActorID,
			Action:   "shop.exchange",
			Entity:   "shop",
			EntityID: fmt.Sprintf("%d", in.ShopID),
			Meta: map[string]any{
				"total":   in.TotalPrice.String(),
				"paid":    in.PaidAmount.String(),
				"due":     in.Due.String(),
				"entries": len(res.Entries),
			},
		})
	}
	return res, nil
}

// ClearDue settles part of a shop's outstanding due. Payments above the
// outstanding amount are rejected, never truncated.
func (s *Service) ClearDue(ctx context.Context, in ClearDueInput) (ClearDueResult, error) {
	if !in.Amount.IsPositive() {
		return ClearDueResult{}, ledger.ErrInvalidAmount
	}
	var res ClearDueResult
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		shop, err := tx.GetShopForUpdate(ctx, in.StoreID, in.ShopID)
		if err != nil {
			return err
		}
		if in.Amount.GreaterThan(shop.TotalDue) {
			return &OverpaymentError{ShopID: shop.ID, Requested: in.Amount, Outstanding: shop.TotalDue}
		}
		shop.TotalDue = shop.TotalDue.Sub(in.Amount)
		shop.TotalPayments = shop.TotalPayments.Add(in.Amount)
		if err := tx.UpdateAggregates(ctx, shop); err != nil {
			return err
		}
		entry, err := s.recorder.Record(ctx, tx, ledger.RecordInput{
			StoreID:       in.StoreID,
			ActorID:       in.ActorID,
			Category:      "due-payment",
			Amount:        in.Amount,
			PaymentMethod: in.Method,
			Counterparty:  ledger.Counterparty{Kind: ledger.CounterpartyShop, ID: &shop.ID},
			Correlation:   &ledger.CorrelationRef{Kind: ledger.CorrelateShop, ID: shop.ID},
			Ref:           in.Ref,
			Payload: map[string]string{
				"shop":   shop.Name,
				"amount": in.Amount.String(),
			},
			Extra: map[string]any{"amount": in.Amount.String(), "remaining_due": shop.TotalDue.String()},
		})
		if err != nil {
			return err
		}
		res = ClearDueResult{Shop: shop, Entry: entry}
		return nil
	})
	if err != nil {
		return ClearDueResult{}, err
	}
	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			StoreID:  in.StoreID,
			ActorID:  in.ActorID,
			Action:   "shop.clear-due",
			Entity:   "shop",
			EntityID: fmt.Sprintf("%d", in.ShopID),
			Meta: map[string]any{
				"amount":        in.Amount.String(),
				"remaining_due": res.Shop.TotalDue.String(),
			},
		})
	}
	return res, nil
}

// lockCylinder locks a row once per transaction; later lines against
// the same cylinder reuse the in-progress copy.
func (s *Service) lockCylinder(ctx context.Context, tx TxRepository, storeID, id int64, touched map[int64]cylinders.Cylinder) (cylinders.Cylinder, error) {
	if c, ok := touched[id]; ok {
		return c, nil
	}
	return tx.GetCylinderForUpdate(ctx, storeID, id)
}

func validateExchange(in ExchangeInput) error {
	if len(in.Take) == 0 && len(in.Give) == 0 {
		return stock.ErrInvalidQuantity
	}
	for _, line := range append(append([]ExchangeLine{}, in.Take...), in.Give...) {
		if line.Quantity <= 0 {
			return stock.ErrInvalidQuantity
		}
	}
	if in.TotalPrice.IsNegative() || in.PaidAmount.IsNegative() || in.Due.IsNegative() {
		return ledger.ErrInvalidAmount
	}
	// Split completeness: the two legs must reconstruct the total.
	if !in.PaidAmount.Add(in.Due).Equal(in.TotalPrice) {
		return ledger.ErrInvalidAmount
	}
	return nil
}
