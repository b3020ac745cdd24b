package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

var Dec100 = decimal.NewFromInt(100)

// 零小数货币：最小单位即整单位，金额不乘100
// 静态表，与网关的权威列表可能脱节，可通过SetZeroDecimalCurrencies刷新
var zeroDecimalCurrencies = map[string]bool{
	"BIF": true, "CLP": true, "DJF": true, "GNF": true,
	"JPY": true, "KMF": true, "KRW": true, "MGA": true,
	"PYG": true, "RWF": true, "UGX": true, "VND": true,
	"VUV": true, "XAF": true, "XOF": true, "XPF": true,
}

// IsZeroDecimal 判断货币是否为零小数货币，大小写不敏感
func IsZeroDecimal(currency string) bool {
	return zeroDecimalCurrencies[strings.ToUpper(currency)]
}

// SetZeroDecimalCurrencies 用网关下发的列表整体替换零小数货币表
func SetZeroDecimalCurrencies(codes []string) {
	table := make(map[string]bool, len(codes))
	for _, code := range codes {
		table[strings.ToUpper(code)] = true
	}
	zeroDecimalCurrencies = table
}

// ToMinorUnits 将显示金额转换为网关的最小单位整数金额
// 四舍五入采用 round-half-away-from-zero（decimal.Round 的默认行为）
func ToMinorUnits(amount decimal.Decimal, currency string) int64 {
	if IsZeroDecimal(currency) {
		return amount.Round(0).IntPart()
	}
	return amount.Mul(Dec100).Round(0).IntPart()
}

// FromMinorUnits 将最小单位整数金额还原为显示金额
func FromMinorUnits(minor int64, currency string) decimal.Decimal {
	amount := decimal.NewFromInt(minor)
	if IsZeroDecimal(currency) {
		return amount
	}
	return amount.Div(Dec100)
}
