package planning

import "github.com/shopspring/decimal"

// Sales velocities are fractional, so products like 0.1 × 30 are computed in
// decimal to keep ceil from rounding 3.0000000000000004 up to 4.

func decimalOf(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func decimalInt(v int) decimal.Decimal {
	return decimal.NewFromInt(int64(v))
}

// ceilUnits returns ceil(dailySales × days).
func ceilUnits(dailySales float64, days int) int {
	return int(decimalOf(dailySales).Mul(decimalInt(days)).Ceil().IntPart())
}

// ceilDiv returns ceil(num / den) for den > 0 without intermediate rounding.
func ceilDiv(num, den decimal.Decimal) int {
	q, r := num.QuoRem(den, 0)
	if r.Sign() > 0 {
		q = q.Add(decimal.NewFromInt(1))
	}
	return int(q.IntPart())
}

// daysOfStock returns stock / dailySales rounded to two places, or nil when
// the SKU does not sell.
func daysOfStock(stock int, dailySales float64) *float64 {
	if dailySales <= 0 {
		return nil
	}
	days := decimalInt(stock).DivRound(decimalOf(dailySales), 2).InexactFloat64()
	return &days
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
