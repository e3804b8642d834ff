package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		currency Currency
		want     string
		wantErr  error
	}{
		{name: "simple", raw: "0.5", currency: BTC, want: "0.5"},
		{name: "integer", raw: "100", currency: USDT, want: "100"},
		{name: "max scale", raw: "0.00000001", currency: BTC, want: "0.00000001"},
		{name: "trailing zeros within scale", raw: "1.20000000", currency: BTC, want: "1.2"},
		{name: "too many decimals", raw: "0.000000001", currency: BTC, wantErr: ErrInvalidAmount},
		{name: "usdt beyond six decimals", raw: "1.0000001", currency: USDT, wantErr: ErrInvalidAmount},
		{name: "zero", raw: "0", currency: BTC, wantErr: ErrInvalidAmount},
		{name: "negative", raw: "-1", currency: BTC, wantErr: ErrInvalidAmount},
		{name: "not a number", raw: "abc", currency: BTC, wantErr: ErrInvalidAmount},
		{name: "empty", raw: "", currency: BTC, wantErr: ErrInvalidAmount},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAmount(tc.raw, tc.currency)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "got %s", got)
		})
	}
}

func TestFormatAmountUsesCurrencyScale(t *testing.T) {
	assert.Equal(t, "0.50000000", FormatAmount(decimal.RequireFromString("0.5"), BTC))
	assert.Equal(t, "100.000000", FormatAmount(decimal.NewFromInt(100), USDT))
	assert.Equal(t, "50000.00", FormatAmount(decimal.NewFromInt(50000), SHIB))
}
