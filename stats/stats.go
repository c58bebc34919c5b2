// Package stats has a small running-statistic type used for reporting
// timing across repeated counting runs.
package stats

import "math"

const Epsilon = 1e-6

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Statistic accumulates mean and variance incrementally with Welford's
// algorithm, so repeated runs need not be buffered.
type Statistic struct {
	iterations int
	last       float64

	oldM float64
	newM float64
	oldS float64
	newS float64
}

func (s *Statistic) Push(val float64) {
	s.last = val
	s.iterations++
	if s.iterations == 1 {
		s.oldM = val
		s.newM = val
		s.oldS = 0
	} else {
		s.newM = s.oldM + (val-s.oldM)/float64(s.iterations)
		s.newS = s.oldS + (val-s.oldM)*(val-s.newM)
		s.oldM = s.newM
		s.oldS = s.newS
	}
}

func (s *Statistic) Mean() float64 {
	if s.iterations > 0 {
		return s.newM
	}
	return 0.0
}

func (s *Statistic) Variance() float64 {
	if s.iterations <= 1 {
		return 0.0
	}
	return s.newS / float64(s.iterations-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

func (s *Statistic) StandardError() float64 {
	if s.iterations <= 1 {
		return 0.0
	}
	return s.Stdev() / math.Sqrt(float64(s.iterations))
}

func (s *Statistic) Last() float64 {
	return s.last
}

func (s *Statistic) Iterations() int {
	return s.iterations
}
