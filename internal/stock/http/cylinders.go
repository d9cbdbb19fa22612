package stockhttp

import (
	"net/http"

	"github.com/gasline-erp/gasline-erp/internal/ledger"
	"github.com/gasline-erp/gasline-erp/internal/platform/httpx"
	"github.com/gasline-erp/gasline-erp/internal/stock/cylinders"
)

type cylinderView struct {
	ID       int64  `json:"id"`
	Brand    string `json:"brand"`
	Size     string `json:"size"`
	Price    string `json:"price"`
	Full     int64  `json:"full"`
	Empty    int64  `json:"empty"`
	Defected int64  `json:"defected"`
	Sellable int64  `json:"sellable"`
}

func newCylinderView(c cylinders.Cylinder) cylinderView {
	return cylinderView{
		ID:       c.ID,
		Brand:    c.Brand,
		Size:     c.Size,
		Price:    c.Price.StringFixed(2),
		Full:     c.Full,
		Empty:    c.Empty,
		Defected: c.Defected,
		Sellable: c.Sellable(),
	}
}

func (h *Handler) listCylinders(w http.ResponseWriter, r *http.Request) {
	id, ok := sharedIdentity(w, r)
	if !ok {
		return
	}
	items, err := h.cylinders.List(r.Context(), id.StoreID)
	if err != nil {
		h.fail(w, "list cylinders", err)
		return
	}
	views := make([]cylinderView, 0, len(items))
	for _, c := range items {
		views = append(views, newCylinderView(c))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"cylinders": views})
}

func (h *Handler) buyCylinders(w http.ResponseWriter, r *http.Request) {
	id, itemID, ok := h.requestScope(w, r)
	if !ok {
		return
	}
	req, price, ok := h.decodeBuy(w, r)
	if !ok {
		return
	}
	res, err := h.cylinders.Buy(r.Context(), cylinders.BuyInput{
		StoreID:      id.StoreID,
		ActorID:      id.ActorID,
		CylinderID:   itemID,
		Quantity:     req.Quantity,
		PricePerUnit: price,
		Method:       ledger.PaymentMethod(req.Method),
		SupplierID:   req.SupplierID,
		Ref:          req.Ref,
	})
	if err != nil {
		h.fail(w, "buy cylinders", err)
		return
	}
	h.respondOp(w, newCylinderView(res.Cylinder), res.Entry)
}

func (h *Handler) sellCylinders(w http.ResponseWriter, r *http.Request) {
	id, itemID, ok := h.requestScope(w, r)
	if !ok {
		return
	}
	req, ok := h.decodeSell(w, r)
	if !ok {
		return
	}
	res, err := h.cylinders.Sell(r.Context(), cylinders.SellInput{
		StoreID:    id.StoreID,
		ActorID:    id.ActorID,
		CylinderID: itemID,
		Quantity:   req.Quantity,
		Method:     ledger.PaymentMethod(req.Method),
		CustomerID: req.CustomerID,
		Ref:        req.Ref,
	})
	if err != nil {
		h.fail(w, "sell cylinders", err)
		return
	}
	h.respondOp(w, newCylinderView(res.Cylinder), res.Entry)
}

func (h *Handler) defectCylinders(w http.ResponseWriter, r *http.Request) {
	id, itemID, ok := h.requestScope(w, r)
	if !ok {
		return
	}
	req, ok := h.decodeDefect(w, r)
	if !ok {
		return
	}
	res, err := h.cylinders.MarkDefected(r.Context(), cylinders.DefectInput{
		StoreID:    id.StoreID,
		ActorID:    id.ActorID,
		CylinderID: itemID,
		Quantity:   req.Quantity,
		Mark:       *req.Mark,
	})
	if err != nil {
		h.fail(w, "mark cylinder defects", err)
		return
	}
	h.respondOp(w, newCylinderView(res.Cylinder), res.Entry)
}
