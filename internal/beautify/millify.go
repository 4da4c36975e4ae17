package beautify

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

var magnitudes = []string{"", "K", "M", "B", "T"}

// Millify abbreviates n with a magnitude suffix and three decimals: 1234567 -> "1.235M".
func Millify(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	// floor(log10|n| / 3), clamped, without log rounding at exact powers of 1000
	idx := 0
	for a := math.Abs(n); a >= 1000 && idx < len(magnitudes)-1; a /= 1000 {
		idx++
	}
	return decimal.NewFromFloat(n).Shift(int32(-3*idx)).StringFixed(3) + magnitudes[idx]
}

// Round2 rounds half away from zero to two decimals.
func Round2(n float64) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return n
	}
	return decimal.NewFromFloat(n).Round(2).InexactFloat64()
}
