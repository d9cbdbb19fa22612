package stockhttp

import (
	"net/http"

	"github.com/gasline-erp/gasline-erp/internal/ledger"
	"github.com/gasline-erp/gasline-erp/internal/platform/httpx"
	"github.com/gasline-erp/gasline-erp/internal/stock/stoves"
)

type stoveView struct {
	ID       int64  `json:"id"`
	Brand    string `json:"brand"`
	Burners  int    `json:"burners"`
	Price    string `json:"price"`
	Stock    int64  `json:"stock"`
	Defected int64  `json:"defected"`
}

func newStoveView(st stoves.Stove) stoveView {
	return stoveView{
		ID:       st.ID,
		Brand:    st.Brand,
		Burners:  st.Burners,
		Price:    st.Price.StringFixed(2),
		Stock:    st.Stock,
		Defected: st.Defected,
	}
}

func (h *Handler) listStoves(w http.ResponseWriter, r *http.Request) {
	id, ok := sharedIdentity(w, r)
	if !ok {
		return
	}
	items, err := h.stoves.List(r.Context(), id.StoreID)
	if err != nil {
		h.fail(w, "list stoves", err)
		return
	}
	views := make([]stoveView, 0, len(items))
	for _, st := range items {
		views = append(views, newStoveView(st))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"stoves": views})
}

func (h *Handler) buyStoves(w http.ResponseWriter, r *http.Request) {
	id, itemID, ok := h.requestScope(w, r)
	if !ok {
		return
	}
	req, price, ok := h.decodeBuy(w, r)
	if !ok {
		return
	}
	res, err := h.stoves.Buy(r.Context(), stoves.BuyInput{
		StoreID:      id.StoreID,
		ActorID:      id.ActorID,
		StoveID:      itemID,
		Quantity:     req.Quantity,
		PricePerUnit: price,
		Method:       ledger.PaymentMethod(req.Method),
		SupplierID:   req.SupplierID,
		Ref:          req.Ref,
	})
	if err != nil {
		h.fail(w, "buy stoves", err)
		return
	}
	h.respondOp(w, newStoveView(res.Stove), res.Entry)
}

func (h *Handler) sellStoves(w http.ResponseWriter, r *http.Request) {
	id, itemID, ok := h.requestScope(w, r)
	if !ok {
		return
	}
	req, ok := h.decodeSell(w, r)
	if !ok {
		return
	}
	res, err := h.stoves.Sell(r.Context(), stoves.SellInput{
		StoreID:    id.StoreID,
		ActorID:    id.ActorID,
		StoveID:    itemID,
		Quantity:   req.Quantity,
		Method:     ledger.PaymentMethod(req.Method),
		CustomerID: req.CustomerID,
		Ref:        req.Ref,
	})
	if err != nil {
		h.fail(w, "sell stoves", err)
		return
	}
	h.respondOp(w, newStoveView(res.Stove), res.Entry)
}

func (h *Handler) defectStoves(w http.ResponseWriter, r *http.Request) {
	id, itemID, ok := h.requestScope(w, r)
	if !ok {
		return
	}
	req, ok := h.decodeDefect(w, r)
	if !ok {
		return
	}
	res, err := h.stoves.MarkDefected(r.Context(), stoves.DefectInput{
		StoreID:  id.StoreID,
		ActorID:  id.ActorID,
		StoveID:  itemID,
		Quantity: req.Quantity,
		Mark:     *req.Mark,
	})
	if err != nil {
		h.fail(w, "mark stove defects", err)
		return
	}
	h.respondOp(w, newStoveView(res.Stove), res.Entry)
}
