package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ZVal returns the two-tailed Z-value for a confidence level given in
// percent (95 -> 1.96).
func ZVal(confidence float64) float64 {
	dist := distuv.Normal{Mu: 0, Sigma: 1}
	return dist.Quantile((1 + confidence/100) / 2)
}

// HalfWidth is the half-width of the normal confidence interval around the
// mean of s.
func HalfWidth(s *Statistic, confidence float64) float64 {
	return ZVal(confidence) * s.StandardError()
}

// DiffHalfWidth is the half-width of the confidence interval of the
// difference of the means of two independent samples.
func DiffHalfWidth(a, b *Statistic, confidence float64) float64 {
	ea, eb := a.StandardError(), b.StandardError()
	return ZVal(confidence) * math.Sqrt(ea*ea+eb*eb)
}
