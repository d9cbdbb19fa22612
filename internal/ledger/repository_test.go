package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampLimit(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{name: "unset falls back to default", in: 0, want: 100},
		{name: "negative falls back to default", in: -5, want: 100},
		{name: "in range passes through", in: 42, want: 42},
		{name: "ceiling passes through", in: 500, want: 500},
		{name: "above ceiling clamps to ceiling", in: 10000, want: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clampLimit(tt.in))
		})
	}
}
