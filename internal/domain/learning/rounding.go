package learning

import "math"

// float noise below this never pushes a value to the next whole unit
const ceilEpsilon = 1e-9

func ceilInt(v float64) int {
	return int(math.Ceil(v - ceilEpsilon))
}

// CeilWeeks rounds a day count up to whole weeks.
func CeilWeeks(days int) int {
	if days <= 0 {
		return 0
	}
	return (days + 6) / 7
}

// CeilInt rounds v up to an integer, ignoring float noise.
func CeilInt(v float64) int { return ceilInt(v) }

// Round rounds v to the given number of decimals.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
