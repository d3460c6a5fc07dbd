// Package stats accumulates running statistics over batches of solves:
// node-expansion counts, solution lengths, elapsed times.
package stats

import "math"

const Epsilon = 1e-6

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Running tracks a stream of observations with Welford's online algorithm,
// so arbitrarily large batches need constant memory.
type Running struct {
	count int
	last  float64
	min   float64
	max   float64

	// For Welford's algorithm:
	oldM float64
	newM float64
	oldS float64
	newS float64
}

func (s *Running) Push(val float64) {
	s.last = val
	s.count++
	if s.count == 1 {
		s.oldM = val
		s.newM = val
		s.oldS = 0
		s.min = val
		s.max = val
		return
	}
	s.newM = s.oldM + (val-s.oldM)/float64(s.count)
	s.newS = s.oldS + (val-s.oldM)*(val-s.newM)
	s.oldM = s.newM
	s.oldS = s.newS
	s.min = math.Min(s.min, val)
	s.max = math.Max(s.max, val)
}

func (s *Running) Count() int { return s.count }

func (s *Running) Mean() float64 {
	if s.count > 0 {
		return s.newM
	}
	return 0.0
}

func (s *Running) Variance() float64 {
	if s.count <= 1 {
		return 0.0
	}
	return s.newS / float64(s.count-1)
}

func (s *Running) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

// StandardError returns the standard error of the mean.
func (s *Running) StandardError() float64 {
	if s.count == 0 {
		return 0.0
	}
	return math.Sqrt(s.Variance() / float64(s.count))
}

func (s *Running) Min() float64 { return s.min }

func (s *Running) Max() float64 { return s.max }

func (s *Running) Last() float64 { return s.last }
