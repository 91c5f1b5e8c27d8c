// Package stats provides the numeric primitives used by the analysis engine:
// descriptive statistics, rank transforms, and pairwise correlation
// coefficients. All functions operate on plain float64 slices and never
// mutate their inputs.
package stats

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean of x, or NaN for an empty slice.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x))
}

// SampleVariance returns the sample variance of x (denominator n-1).
// It is NaN when fewer than two observations are available.
func SampleVariance(x []float64) float64 {
	n := len(x)
	if n < 2 {
		return math.NaN()
	}
	mean := Mean(x)
	ss := 0.0
	for _, v := range x {
		d := v - mean
		ss += d * d
	}
	return ss / float64(n-1)
}

// SampleStd returns the sample standard deviation of x (denominator n-1),
// NaN when fewer than two observations are available.
func SampleStd(x []float64) float64 {
	return math.Sqrt(SampleVariance(x))
}

// Min returns the smallest value in x, or NaN for an empty slice.
func Min(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	min := x[0]
	for _, v := range x[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Max returns the largest value in x, or NaN for an empty slice.
func Max(x []float64) float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	max := x[0]
	for _, v := range x[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Quantile returns the q-th quantile of x (q in [0, 1]) using linear
// interpolation between order statistics, the same definition pandas and
// numpy use by default. Returns NaN for an empty slice; q outside [0, 1]
// is clamped.
func Quantile(x []float64, q float64) float64 {
	n := len(x)
	if n == 0 {
		return math.NaN()
	}
	if q < 0 {
		q = 0
	} else if q > 1 {
		q = 1
	}

	sorted := make([]float64, n)
	copy(sorted, x)
	sort.Float64s(sorted)

	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// Median returns the 0.5 quantile of x.
func Median(x []float64) float64 {
	return Quantile(x, 0.5)
}

// Ranks returns the 1-based ranks of x, assigning tied values the average of
// the ranks they span (the "average" tie policy used by rank correlation).
func Ranks(x []float64) []float64 {
	n := len(x)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return x[idx[a]] < x[idx[b]] })

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && x[idx[j+1]] == x[idx[i]] {
			j++
		}
		// Average rank across the tie run [i, j].
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranks[idx[k]] = avg
		}
		i = j + 1
	}
	return ranks
}
