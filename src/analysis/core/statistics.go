package core

import "math"

// -----------------------------------------------------------------------------

// CalculateMean returns the arithmetic mean, or 0 for an empty series.
func CalculateMean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

// -----------------------------------------------------------------------------

// CalculateMeanStd computes mean and population standard deviation.
func CalculateMeanStd(data []float64) (float64, float64) {
	if len(data) == 0 {
		return 0, 0
	}

	mean := CalculateMean(data)
	if len(data) == 1 {
		return mean, 0
	}

	varianceSum := 0.0
	for _, v := range data {
		varianceSum += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(varianceSum / float64(len(data)))
}

// -----------------------------------------------------------------------------

// CalculateCorrelation computes the Pearson correlation coefficient.
// Mismatched lengths, fewer than two points or a constant series yield 0.
func CalculateCorrelation(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0
	}

	meanX, stdX := CalculateMeanStd(x)
	meanY, stdY := CalculateMeanStd(y)
	if stdX == 0 || stdY == 0 {
		return 0
	}

	cov := 0.0
	for i := range x {
		cov += (x[i] - meanX) * (y[i] - meanY)
	}
	cov /= float64(len(x))

	result := cov / (stdX * stdY)
	if math.IsNaN(result) {
		return 0
	}
	// clamp rounding noise
	return math.Max(-1, math.Min(1, result))
}
