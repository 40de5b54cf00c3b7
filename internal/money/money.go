package money

import "github.com/shopspring/decimal"

// Sum adds monetary amounts through decimal arithmetic so that running
// float64 totals don't drift. Amounts are summed nominally with no
// currency awareness.
func Sum(amounts []float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	f, _ := total.Float64()
	return f
}
