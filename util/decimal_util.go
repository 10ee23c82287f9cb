package util

import "github.com/shopspring/decimal"

// Round2 rounds half away from zero to two decimal places on the decimal
// representation of v, so 1.005 becomes 1.01 rather than 1.0.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Percent returns part/whole*100 rounded to two places, or 0 when whole is 0.
func Percent(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
}
