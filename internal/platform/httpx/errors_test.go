package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gasline-erp/gasline-erp/internal/ledger"
	"github.com/gasline-erp/gasline-erp/internal/shops"
	"github.com/gasline-erp/gasline-erp/internal/stock"
)

func respond(t *testing.T, err error) (int, ProblemDetail) {
	t.Helper()
	rec := httptest.NewRecorder()
	RespondError(rec, err)
	var problem ProblemDetail
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&problem))
	return rec.Code, problem
}

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		title  string
	}{
		{"item not found", stock.ErrItemNotFound, http.StatusNotFound, "Not Found"},
		{"shop not found", shops.ErrShopNotFound, http.StatusNotFound, "Not Found"},
		{"insufficient stock", &stock.InsufficientStockError{Item: "cylinder", Requested: 5, Available: 2}, http.StatusUnprocessableEntity, "Business Rule Violation"},
		{"mismatched exchange", &shops.MismatchedExchangeError{TakeQty: 5, GiveQty: 4}, http.StatusUnprocessableEntity, "Business Rule Violation"},
		{"overpayment", &shops.OverpaymentError{ShopID: 1, Requested: decimal.NewFromInt(150), Outstanding: decimal.NewFromInt(100)}, http.StatusUnprocessableEntity, "Business Rule Violation"},
		{"invalid quantity", stock.ErrInvalidQuantity, http.StatusBadRequest, "Validation Failed"},
		{"invalid amount", ledger.ErrInvalidAmount, http.StatusBadRequest, "Validation Failed"},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
		{"misconfigured store", &ledger.ConfigError{StoreID: 1, Category: "cylinder-sale", AccountCode: "4000"}, http.StatusInternalServerError, "Store Misconfigured"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "Internal Error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, problem := respond(t, tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.title, problem.Title)
			assert.Equal(t, tc.status, problem.Status)
		})
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	_, problem := respond(t, errors.New("pq: connection refused"))
	assert.Empty(t, problem.Detail)
}
