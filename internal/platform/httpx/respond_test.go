package httpx

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Quantity int    `json:"quantity"`
		Method   string `json:"payment_method"`
	}

	t.Run("decodes known fields", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"quantity":5,"payment_method":"CASH"}`))

		var p payload
		require.NoError(t, DecodeJSON(req, &p))
		assert.Equal(t, 5, p.Quantity)
		assert.Equal(t, "CASH", p.Method)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"quantity":5,"qty":5}`))

		var p payload
		err := DecodeJSON(req, &p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown field")
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"quantity":`))

		var p payload
		require.Error(t, DecodeJSON(req, &p))
	})
}
