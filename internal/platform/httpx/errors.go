// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"

	"github.com/gasline-erp/gasline-erp/internal/ledger"
	"github.com/gasline-erp/gasline-erp/internal/ledger/accounts"
	"github.com/gasline-erp/gasline-erp/internal/ledger/categories"
	"github.com/gasline-erp/gasline-erp/internal/shops"
	"github.com/gasline-erp/gasline-erp/internal/stock"
)

// Sentinel errors owned by the HTTP layer.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

// RespondError maps domain errors to HTTP responses using RFC7807.
// Business-rule violations are terminal: nothing here is retried.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, stock.ErrItemNotFound),
		errors.Is(err, shops.ErrShopNotFound),
		errors.Is(err, accounts.ErrAccountNotFound),
		errors.Is(err, categories.ErrCategoryNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, stock.ErrInsufficientStock),
		errors.Is(err, shops.ErrMismatchedExchange),
		errors.Is(err, shops.ErrOverpayment):
		Problem(w, http.StatusUnprocessableEntity, "Business Rule Violation", err.Error())
	case errors.Is(err, stock.ErrInvalidQuantity),
		errors.Is(err, stock.ErrInvalidPrice),
		errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrUnauthorized):
		Problem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	case errors.Is(err, ledger.ErrMisconfiguredCategory):
		// Store-setup defect, not a caller mistake.
		Problem(w, http.StatusInternalServerError, "Store Misconfigured", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
