package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		want     int64
	}{
		{"usd cents", "10.50", "USD", 1050},
		{"usd whole", "99.99", "USD", 9999},
		{"usd lowercase", "10", "usd", 1000},
		{"usd uppercase", "10", "USD", 1000},
		{"rounds half away from zero", "10.555", "USD", 1056},
		{"negative rounds away from zero", "-10.555", "USD", -1056},
		{"jpy passthrough", "1000", "JPY", 1000},
		{"krw passthrough", "5000", "KRW", 5000},
		{"jpy lowercase", "1000", "jpy", 1000},
		{"jpy fraction rounds", "1000.5", "JPY", 1001},
		{"vnd passthrough", "25000", "VND", 25000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			assert.Equal(t, tt.want, ToMinorUnits(amount, tt.currency))
		})
	}
}

func TestFromMinorUnits(t *testing.T) {
	assert.True(t, decimal.RequireFromString("10.50").Equal(FromMinorUnits(1050, "USD")))
	assert.True(t, decimal.RequireFromString("99.99").Equal(FromMinorUnits(9999, "usd")))
	assert.True(t, decimal.NewFromInt(1000).Equal(FromMinorUnits(1000, "JPY")))

	// 非零小数货币必须得到精确小数，而不是截断的整数
	assert.True(t, decimal.RequireFromString("0.01").Equal(FromMinorUnits(1, "EUR")))
}

func TestRoundTrip(t *testing.T) {
	amounts := []string{"0", "0.01", "10.50", "99.99", "1234.56", "-5.25"}
	for _, raw := range amounts {
		amount := decimal.RequireFromString(raw)
		minor := ToMinorUnits(amount, "USD")
		assert.True(t, amount.Equal(FromMinorUnits(minor, "USD")), "round trip failed for %s", raw)
	}

	for _, raw := range []string{"0", "100", "25000"} {
		amount := decimal.RequireFromString(raw)
		minor := ToMinorUnits(amount, "JPY")
		assert.True(t, amount.Equal(FromMinorUnits(minor, "JPY")), "round trip failed for %s JPY", raw)
	}
}

func TestSetZeroDecimalCurrencies(t *testing.T) {
	original := []string{
		"BIF", "CLP", "DJF", "GNF", "JPY", "KMF", "KRW", "MGA",
		"PYG", "RWF", "UGX", "VND", "VUV", "XAF", "XOF", "XPF",
	}
	defer SetZeroDecimalCurrencies(original)

	SetZeroDecimalCurrencies([]string{"jpy", "XTS"})
	assert.True(t, IsZeroDecimal("JPY"))
	assert.True(t, IsZeroDecimal("xts"))
	assert.False(t, IsZeroDecimal("KRW"))
}
