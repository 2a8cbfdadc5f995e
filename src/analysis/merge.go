package analysis

import (
	"time"

	"sentiment-dashboard/src/analysis/core"
	"sentiment-dashboard/src/models"

	"github.com/guregu/null/v6"
)

// -----------------------------------------------------------------------------

// Merge left-joins sentiment onto prices by calendar date.
// The result has one record per price point, in price order. Days without
// sentiment carry a null score (read as 0); sentiment-only days are dropped.
// If a date repeats in sentiments the last row wins.
func Merge(prices []models.MPricePoint, sentiments []models.MSentimentPoint) []models.MMergedRecord {
	byDate := make(map[time.Time]float64, len(sentiments))
	for _, s := range sentiments {
		byDate[dateKey(s.Date)] = s.AvgSentimentScore
	}

	merged := make([]models.MMergedRecord, len(prices))
	for i, p := range prices {
		rec := models.MMergedRecord{Date: p.Date, Close: p.Close}
		if score, ok := byDate[dateKey(p.Date)]; ok {
			rec.Sentiment = null.FloatFrom(score)
		}
		merged[i] = rec
	}
	return merged
}

// -----------------------------------------------------------------------------

// Summarize computes the four dashboard scalars. Missing scores count as 0,
// so they pull the mean toward neutral and are neither positive nor negative.
// An empty input yields a zero summary with HasData false.
func Summarize(merged []models.MMergedRecord) models.MSummary {
	if len(merged) == 0 {
		return models.MSummary{}
	}

	scores := Scores(merged)
	positive, negative := core.CountSign(scores)

	return models.MSummary{
		TradingDays:  len(merged),
		AvgSentiment: core.CalculateMean(scores),
		PositiveDays: positive,
		NegativeDays: negative,
		HasData:      true,
	}
}

// -----------------------------------------------------------------------------

// Scores returns the filled sentiment series.
func Scores(merged []models.MMergedRecord) []float64 {
	scores := make([]float64, len(merged))
	for i, r := range merged {
		scores[i] = r.Score()
	}
	return scores
}

// -----------------------------------------------------------------------------

// Closes returns the close series as floats.
func Closes(merged []models.MMergedRecord) []float64 {
	closes := make([]float64, len(merged))
	for i, r := range merged {
		closes[i] = r.Close.InexactFloat64()
	}
	return closes
}

// -----------------------------------------------------------------------------

// Insights derives coverage and correlation figures from a merge.
// NextDayReturnCorr pairs the score on day t with the close-to-close return
// from t to t+1.
func Insights(merged []models.MMergedRecord) models.MInsights {
	ins := models.MInsights{Notes: []string{}}
	if len(merged) == 0 {
		return ins
	}

	for _, r := range merged {
		if r.HasSentiment() {
			ins.CoveredDays++
		}
	}
	ins.MissingDays = len(merged) - ins.CoveredDays
	ins.FirstDate = merged[0].Date.Format(time.DateOnly)
	ins.LastDate = merged[len(merged)-1].Date.Format(time.DateOnly)

	scores := Scores(merged)
	closes := Closes(merged)
	ins.PriceSentimentCorr = core.CalculateCorrelation(closes, scores)

	returns := core.DailyReturns(closes)
	if len(returns) > 0 {
		ins.NextDayReturnCorr = core.CalculateCorrelation(scores[:len(returns)], returns)
	}

	return ins
}

// -----------------------------------------------------------------------------

func dateKey(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
