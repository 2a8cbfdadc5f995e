package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MPricePoint is one trading day of the price file. Only Close is kept.
type MPricePoint struct {
	Date  time.Time       `json:"date"`
	Close decimal.Decimal `json:"close"`
}

// MSentimentPoint is one day of sentiment coverage.
type MSentimentPoint struct {
	Date              time.Time `json:"date"`
	AvgSentimentScore float64   `json:"avg_sentiment_score"`
}
