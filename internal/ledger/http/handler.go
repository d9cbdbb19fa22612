package ledgerhttp

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gasline-erp/gasline-erp/internal/ledger"
	"github.com/gasline-erp/gasline-erp/internal/platform/httpx"
	"github.com/gasline-erp/gasline-erp/internal/shared"
)

// Handler serves the read-only ledger surface. There are no mutation
// routes: entries are only created through the inventory services.
type Handler struct {
	logger *slog.Logger
	repo   ledger.Repository
}

func NewHandler(logger *slog.Logger, repo ledger.Repository) *Handler {
	return &Handler{logger: logger, repo: repo}
}

// MountRoutes registers ledger routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/entries", h.list)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	q := r.URL.Query()
	filter := ledger.Filter{StoreID: id.StoreID, Category: q.Get("category")}
	if s := q.Get("shop_id"); s != "" {
		shopID, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid shop_id")
			return
		}
		filter.ShopID = shopID
	}
	if s := q.Get("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid limit")
			return
		}
		filter.Limit = limit
	}
	entries, err := h.repo.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("list ledger entries", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"entries": ledger.NewEntryViews(entries)})
}
