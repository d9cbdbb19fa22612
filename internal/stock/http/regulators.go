package stockhttp

import (
	"net/http"

	"github.com/gasline-erp/gasline-erp/internal/ledger"
	"github.com/gasline-erp/gasline-erp/internal/platform/httpx"
	"github.com/gasline-erp/gasline-erp/internal/stock/regulators"
)

type regulatorView struct {
	ID       int64  `json:"id"`
	Brand    string `json:"brand"`
	Type     string `json:"type"`
	Price    string `json:"price"`
	Stock    int64  `json:"stock"`
	Defected int64  `json:"defected"`
}

func newRegulatorView(reg regulators.Regulator) regulatorView {
	return regulatorView{
		ID:       reg.ID,
		Brand:    reg.Brand,
		Type:     reg.Type,
		Price:    reg.Price.StringFixed(2),
		Stock:    reg.Stock,
		Defected: reg.Defected,
	}
}

func (h *Handler) listRegulators(w http.ResponseWriter, r *http.Request) {
	id, ok := sharedIdentity(w, r)
	if !ok {
		return
	}
	items, err := h.regulators.List(r.Context(), id.StoreID)
	if err != nil {
		h.fail(w, "list regulators", err)
		return
	}
	views := make([]regulatorView, 0, len(items))
	for _, reg := range items {
		views = append(views, newRegulatorView(reg))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"regulators": views})
}

func (h *Handler) buyRegulators(w http.ResponseWriter, r *http.Request) {
	id, itemID, ok := h.requestScope(w, r)
	if !ok {
		return
	}
	req, price, ok := h.decodeBuy(w, r)
	if !ok {
		return
	}
	res, err := h.regulators.Buy(r.Context(), regulators.BuyInput{
		StoreID:      id.StoreID,
		ActorID:      id.ActorID,
		RegulatorID:  itemID,
		Quantity:     req.Quantity,
		PricePerUnit: price,
		Method:       ledger.PaymentMethod(req.Method),
		SupplierID:   req.SupplierID,
		Ref:          req.Ref,
	})
	if err != nil {
		h.fail(w, "buy regulators", err)
		return
	}
	h.respondOp(w, newRegulatorView(res.Regulator), res.Entry)
}

func (h *Handler) sellRegulators(w http.ResponseWriter, r *http.Request) {
	id, itemID, ok := h.requestScope(w, r)
	if !ok {
		return
	}
	req, ok := h.decodeSell(w, r)
	if !ok {
		return
	}
	res, err := h.regulators.Sell(r.Context(), regulators.SellInput{
		StoreID:     id.StoreID,
		ActorID:     id.ActorID,
		RegulatorID: itemID,
		Quantity:    req.Quantity,
		Method:      ledger.PaymentMethod(req.Method),
		CustomerID:  req.CustomerID,
		Ref:         req.Ref,
	})
	if err != nil {
		h.fail(w, "sell regulators", err)
		return
	}
	h.respondOp(w, newRegulatorView(res.Regulator), res.Entry)
}

func (h *Handler) defectRegulators(w http.ResponseWriter, r *http.Request) {
	id, itemID, ok := h.requestScope(w, r)
	if !ok {
		return
	}
	req, ok := h.decodeDefect(w, r)
	if !ok {
		return
	}
	res, err := h.regulators.MarkDefected(r.Context(), regulators.DefectInput{
		StoreID:     id.StoreID,
		ActorID:     id.ActorID,
		RegulatorID: itemID,
		Quantity:    req.Quantity,
		Mark:        *req.Mark,
	})
	if err != nil {
		h.fail(w, "mark regulator defects", err)
		return
	}
	h.respondOp(w, newRegulatorView(res.Regulator), res.Entry)
}
