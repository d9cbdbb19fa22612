// Package shopshttp exposes shop exchange and due clearance over JSON.
package shopshttp

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/gasline-erp/gasline-erp/internal/ledger"
	"github.com/gasline-erp/gasline-erp/internal/platform/httpx"
	"github.com/gasline-erp/gasline-erp/internal/shared"
	"github.com/gasline-erp/gasline-erp/internal/shops"
	"github.com/gasline-erp/gasline-erp/internal/stock/cylinders"
)

// Handler wires the shop service.
type Handler struct {
	logger   *slog.Logger
	service  *shops.Service
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *shops.Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers shop routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.show)
	r.Post("/{id}/exchange", h.exchange)
	r.Post("/{id}/clear-due", h.clearDue)
}

type shopView struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Phone           string `json:"phone,omitempty"`
	Address         string `json:"address,omitempty"`
	TotalDue        string `json:"total_due"`
	TotalPurchases  string `json:"total_purchases"`
	TotalPayments   string `json:"total_payments"`
	TotalDeliveries int64  `json:"total_deliveries"`
}

func newShopView(s shops.Shop) shopView {
	return shopView{
		ID:              s.ID,
		Name:            s.Name,
		Phone:           s.Phone,
		Address:         s.Address,
		TotalDue:        s.TotalDue.StringFixed(2),
		TotalPurchases:  s.TotalPurchases.StringFixed(2),
		TotalPayments:   s.TotalPayments.StringFixed(2),
		TotalDeliveries: s.TotalDeliveries,
	}
}

type exchangeLineRequest struct {
	CylinderID int64 `json:"cylinder_id" validate:"required,gt=0"`
	Quantity   int64 `json:"quantity" validate:"required,gt=0"`
}

type exchangeRequest struct {
	Take       []exchangeLineRequest `json:"take" validate:"dive"`
	Give       []exchangeLineRequest `json:"give" validate:"dive"`
	TotalPrice string                `json:"total_price" validate:"required"`
	PaidAmount string                `json:"paid_amount" validate:"required"`
	Due        string                `json:"due" validate:"required"`
	Method     string                `json:"payment_method" validate:"required,oneof=CASH BANK MOBILE NONE"`
	VehicleID  *int64                `json:"vehicle_id"`
	Ref        string                `json:"ref"`
}

type clearDueRequest struct {
	Amount string `json:"amount" validate:"required"`
	Method string `json:"payment_method" validate:"required,oneof=CASH BANK MOBILE"`
	Ref    string `json:"ref"`
}

type createShopRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (h *Handler) identity(w http.ResponseWriter, r *http.Request) (shared.Identity, bool) {
	id, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
	}
	return id, ok
}

func (h *Handler) shopID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid shop id")
		return 0, false
	}
	return id, true
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	all, err := h.service.List(r.Context(), id.StoreID)
	if err != nil {
		h.fail(w, "list shops", err)
		return
	}
	views := make([]shopView, 0, len(all))
	for _, s := range all {
		views = append(views, newShopView(s))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"shops": views})
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	shopID, ok := h.shopID(w, r)
	if !ok {
		return
	}
	shop, err := h.service.Get(r.Context(), id.StoreID, shopID)
	if err != nil {
		h.fail(w, "get shop", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"shop": newShopView(shop)})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	var req createShopRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	shop, err := h.service.Create(r.Context(), shops.Shop{
		StoreID: id.StoreID,
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		TotalDue:       decimal.Zero,
		TotalPurchases: decimal.Zero,
		TotalPayments:  decimal.Zero,
	})
	if err != nil {
		h.fail(w, "create shop", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"shop": newShopView(shop)})
}

func (h *Handler) exchange(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	shopID, ok := h.shopID(w, r)
	if !ok {
		return
	}
	var req exchangeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	total, paid, due, ok := h.parseSplit(w, req.TotalPrice, req.PaidAmount, req.Due)
	if !ok {
		return
	}
	in := shops.ExchangeInput{
		StoreID:    id.StoreID,
		ActorID:    id.ActorID,
		ShopID:     shopID,
		TotalPrice: total,
		PaidAmount: paid,
		Due:        due,
		Method:     ledger.PaymentMethod(req.Method),
		VehicleID:  req.VehicleID,
		Ref:        req.Ref,
	}
	for _, line := range req.Take {
		in.Take = append(in.Take, shops.ExchangeLine{CylinderID: line.CylinderID, Quantity: line.Quantity})
	}
	for _, line := range req.Give {
		in.Give = append(in.Give, shops.ExchangeLine{CylinderID: line.CylinderID, Quantity: line.Quantity})
	}
	res, err := h.service.Exchange(r.Context(), in)
	if err != nil {
		h.fail(w, "shop exchange", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"shop":      newShopView(res.Shop),
		"cylinders": cylinderSummaries(res.Cylinders),
		"entries":   ledger.NewEntryViews(res.Entries),
	})
}

func (h *Handler) clearDue(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	shopID, ok := h.shopID(w, r)
	if !ok {
		return
	}
	var req clearDueRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", fmt.Sprintf("invalid amount %q", req.Amount))
		return
	}
	res, err := h.service.ClearDue(r.Context(), shops.ClearDueInput{
		StoreID: id.StoreID,
		ActorID: id.ActorID,
		ShopID:  shopID,
		Amount:  amount,
		Method:  ledger.PaymentMethod(req.Method),
		Ref:     req.Ref,
	})
	if err != nil {
		h.fail(w, "clear due", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"shop":  newShopView(res.Shop),
		"entry": ledger.NewEntryView(res.Entry),
	})
}

func (h *Handler) parseSplit(w http.ResponseWriter, totalStr, paidStr, dueStr string) (total, paid, due decimal.Decimal, ok bool) {
	var err error
	if total, err = decimal.NewFromString(totalStr); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", fmt.Sprintf("invalid total_price %q", totalStr))
		return
	}
	if paid, err = decimal.NewFromString(paidStr); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", fmt.Sprintf("invalid paid_amount %q", paidStr))
		return
	}
	if due, err = decimal.NewFromString(dueStr); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", fmt.Sprintf("invalid due %q", dueStr))
		return
	}
	ok = true
	return
}

type cylinderSummary struct {
	ID       int64 `json:"id"`
	Full     int64 `json:"full"`
	Empty    int64 `json:"empty"`
	Defected int64 `json:"defected"`
}

func cylinderSummaries(items []cylinders.Cylinder) []cylinderSummary {
	out := make([]cylinderSummary, 0, len(items))
	for _, c := range items {
		out = append(out, cylinderSummary{ID: c.ID, Full: c.Full, Empty: c.Empty, Defected: c.Defected})
	}
	return out
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	h.logger.Error(op, slog.Any("error", err))
	httpx.RespondError(w, err)
}
