package analysis

import "math"

// allEqual reports whether every sample matches the first.
func allEqual(data []float64) bool {
	for _, v := range data[1:] {
		if v != data[0] {
			return false
		}
	}
	return true
}

// calculateMean returns the arithmetic mean. Callers guarantee a non-empty
// slice.
func calculateMean(data []float64) float64 {
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

// calculateSampleStdDev returns the sample standard deviation with Bessel's
// correction (n-1 denominator), estimating population spread from a sample.
// Callers guarantee at least two values.
func calculateSampleStdDev(data []float64, mean float64) float64 {
	sumSqDiff := 0.0
	for _, v := range data {
		d := v - mean
		sumSqDiff += d * d
	}
	return math.Sqrt(sumSqDiff / float64(len(data)-1))
}
