package stats

import (
	"math"
	"sort"
)

// Sum returns the sum of all values
func Sum(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum
}

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return Sum(values) / float64(len(values))
}

// Min returns the minimum value
func Min(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Max returns the maximum value
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Mode returns the most frequent value (for discrete data).
// Among equally frequent values the smallest wins, so the result does not
// depend on input order.
func Mode(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	freq := make(map[float64]int)
	for _, v := range values {
		freq[v]++
	}

	keys := make([]float64, 0, len(freq))
	for v := range freq {
		keys = append(keys, v)
	}
	sort.Float64s(keys)

	maxFreq := 0
	var mode float64
	for _, v := range keys {
		if freq[v] > maxFreq {
			maxFreq = freq[v]
			mode = v
		}
	}

	return mode
}

// Round rounds half to even, matching how the report rounds mean durations
func Round(v float64) int64 {
	return int64(math.RoundToEven(v))
}
