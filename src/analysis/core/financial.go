package core

// -----------------------------------------------------------------------------

// CalculateChangePercent calculates fractional change; 0 when previous is 0.
func CalculateChangePercent(current, previous float64) float64 {
	if previous == 0 {
		return 0.0
	}
	return (current - previous) / previous
}

// -----------------------------------------------------------------------------

// DailyReturns returns closes[i+1] vs closes[i] changes, one shorter than closes.
func DailyReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return []float64{}
	}

	returns := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		returns[i-1] = CalculateChangePercent(closes[i], closes[i-1])
	}
	return returns
}

// -----------------------------------------------------------------------------

// CountSign returns how many values are strictly positive and strictly negative.
func CountSign(data []float64) (positive, negative int) {
	for _, v := range data {
		switch {
		case v > 0:
			positive++
		case v < 0:
			negative++
		}
	}
	return positive, negative
}
