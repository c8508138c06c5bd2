package scoring

import "math"

// PowerTable maps a projected board size (current cells plus cells still
// missing from a combination) to the combination's proximity value.
type PowerTable []float64

// NewPowerTable precomputes base^(exponent-i) for i in [0, maxCells].
func NewPowerTable(base float64, exponent, maxCells int) PowerTable {
	t := make(PowerTable, maxCells+1)
	for i := range t {
		t[i] = math.Pow(base, float64(exponent-i))
	}
	return t
}

// At returns the value for projected size n, or 0 past the end.
func (t PowerTable) At(n int) float64 {
	if n < 0 || n >= len(t) {
		return 0
	}
	return t[n]
}
