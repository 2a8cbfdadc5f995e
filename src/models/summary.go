package models

// MSummary holds the four dashboard scalars.
// HasData is false for an empty merge, in which case AvgSentiment is 0.
type MSummary struct {
	TradingDays  int     `json:"trading_days"`
	AvgSentiment float64 `json:"avg_sentiment"`
	PositiveDays int     `json:"positive_days"`
	NegativeDays int     `json:"negative_days"`
	HasData      bool    `json:"has_data"`
}

// -----------------------------------------------------------------------------

// MInsights are derived observations shown next to the charts.
type MInsights struct {
	CoveredDays        int      `json:"covered_days"`
	MissingDays        int      `json:"missing_days"`
	NonTradingDays     int      `json:"non_trading_days"`
	PriceSentimentCorr float64  `json:"price_sentiment_correlation"`
	NextDayReturnCorr  float64  `json:"next_day_return_correlation"`
	FirstDate          string   `json:"first_date,omitempty"`
	LastDate           string   `json:"last_date,omitempty"`
	Notes              []string `json:"notes"`
}
