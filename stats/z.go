package stats

import "gonum.org/v1/gonum/stat/distuv"

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// ZVal returns the two-tailed Z-value for a confidence interval given
// in percent (0 to 100).
func ZVal(confidenceInterval float64) float64 {
	area := (1 + confidenceInterval/100) / 2
	return stdNormal.Quantile(area)
}

// ConfidenceMargin returns the half-width of the confidence interval
// around s.Mean() at the given confidence level in percent.
func (s *Statistic) ConfidenceMargin(confidenceInterval float64) float64 {
	return ZVal(confidenceInterval) * s.StandardError()
}
