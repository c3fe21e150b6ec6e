// Package stats holds the small set of descriptive statistics the strategies
// compute over rolling windows.
package stats

import "math"

// Epsilon is the floor substituted for zero denominators so flat markets
// degrade to neutral signals instead of division faults.
const Epsilon = 1e-6

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// StdDev returns the population standard deviation, or 0 for an empty slice.
func StdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	mean := Mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)))
}

// ZScore measures how far x sits from the mean of xs in units of standard
// deviation. A zero-variance window is floored at Epsilon.
func ZScore(x float64, xs []float64) float64 {
	sd := StdDev(xs)
	if sd == 0 {
		sd = Epsilon
	}
	return (x - Mean(xs)) / sd
}

// Clamp bounds v into [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
