// Package stockhttp exposes the inventory operations over JSON.
package stockhttp

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
	"github.com/gasline-erp/gasline-erp/internal/stock/cylinders"
	"github.com/gasline-erp/gasline-erp/internal/stock/regulators"
	"github.com/gasline-erp/gasline-erp/internal/stock/stoves"
)

type buyRequest struct {
	Quantity     int64  `json:"quantity" validate:"required,gt=0"`
	PricePerUnit string `json:"price_per_unit" validate:"required"`
	Method       string `json:"payment_method" validate:"required,oneof=CASH BANK MOBILE"`
	SupplierID   *int64 `json:"supplier_id"`
	Ref          string `json:"ref"`
}

type sellRequest struct {
	Quantity   int64  `json:"quantity" validate:"required,gt=0"`
	Method     string `json:"payment_method" validate:"required,oneof=CASH BANK MOBILE"`
	CustomerID *int64 `json:"customer_id"`
	Ref        string `json:"ref"`
}

type defectRequest struct {
	Quantity int64 `json:"quantity" validate:"required,gt=0"`
	Mark     *bool `json:"mark" validate:"required"`
}

// Handler wires the cylinder, regulator and stove services.
type Handler struct {
	logger     *slog.Logger
	cylinders  *cylinders.Service
	regulators *regulators.Service
	stoves     *stoves.Service
	validate   *validator.Validate
}

func NewHandler(logger *slog.Logger, cyl *cylinders.Service, reg *regulators.Service, stv *stoves.Service) *Handler {
	return &Handler{logger: logger, cylinders: cyl, regulators: reg, stoves: stv, validate: validator.New()}
}

// MountRoutes registers one route group per product family.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/cylinders", func(r chi.Router) {
		r.Get("/", h.listCylinders)
		r.Post("/{id}/buy", h.buyCylinders)
		r.Post("/{id}/sell", h.sellCylinders)
		r.Post("/{id}/defects", h.defectCylinders)
	})
	r.Route("/regulators", func(r chi.Router) {
		r.Get("/", h.listRegulators)
		r.Post("/{id}/buy", h.buyRegulators)
		r.Post("/{id}/sell", h.sellRegulators)
		r.Post("/{id}/defects", h.defectRegulators)
	})
	r.Route("/stoves", func(r chi.Router) {
		r.Get("/", h.listStoves)
		r.Post("/{id}/buy", h.buyStoves)
		r.Post("/{id}/sell", h.sellStoves)
		r.Post("/{id}/defects", h.defectStoves)
	})
}

func sharedIdentity(w http.ResponseWriter, r *http.Request) (shared.Identity, bool) {
	id, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
	}
	return id, ok
}

func (h *Handler) requestScope(w http.ResponseWriter, r *http.Request) (shared.Identity, int64, bool) {
	id, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return shared.Identity{}, 0, false
	}
	itemID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid item id")
		return shared.Identity{}, 0, false
	}
	return id, itemID, true
}

func (h *Handler) decodeBuy(w http.ResponseWriter, r *http.Request) (buyRequest, decimal.Decimal, bool) {
	var req buyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return req, decimal.Zero, false
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return req, decimal.Zero, false
	}
	price, err := decimal.NewFromString(req.PricePerUnit)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", fmt.Sprintf("invalid price %q", req.PricePerUnit))
		return req, decimal.Zero, false
	}
	return req, price, true
}

func (h *Handler) decodeSell(w http.ResponseWriter, r *http.Request) (sellRequest, bool) {
	var req sellRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return req, false
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return req, false
	}
	return req, true
}

func (h *Handler) decodeDefect(w http.ResponseWriter, r *http.Request) (defectRequest, bool) {
	var req defectRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return req, false
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return req, false
	}
	return req, true
}

func (h *Handler) respondOp(w http.ResponseWriter, item any, entry ledger.Entry) {
	httpx.JSON(w, http.StatusOK, map[string]any{"item": item, "entry": ledger.NewEntryView(entry)})
}

func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	h.logger.Error(op, slog.Any("error", err))
	httpx.RespondError(w, err)
}
