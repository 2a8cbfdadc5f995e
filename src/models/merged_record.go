package models

import (
	"time"

	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"
)

// MMergedRecord is a trading day joined with its sentiment, if any.
// Sentiment is null when the sentiment file has no row for Date.
type MMergedRecord struct {
	Date      time.Time       `json:"date"`
	Close     decimal.Decimal `json:"close"`
	Sentiment null.Float      `json:"-"`
}

// -----------------------------------------------------------------------------

// Score returns the sentiment with missing days filled as 0.
func (r MMergedRecord) Score() float64 {
	return r.Sentiment.ValueOrZero()
}

// -----------------------------------------------------------------------------

// HasSentiment reports whether the score came from the sentiment file.
func (r MMergedRecord) HasSentiment() bool {
	return r.Sentiment.Valid
}

// -----------------------------------------------------------------------------

// MRecordView is the wire form of a merged record.
type MRecordView struct {
	Date              string  `json:"date"`
	Close             float64 `json:"close"`
	AvgSentimentScore float64 `json:"avg_sentiment_score"`
	HasSentiment      bool    `json:"has_sentiment"`
}

// View converts the record to its wire form.
func (r MMergedRecord) View() MRecordView {
	return MRecordView{
		Date:              r.Date.Format("2006-01-02"),
		Close:             r.Close.InexactFloat64(),
		AvgSentimentScore: r.Score(),
		HasSentiment:      r.HasSentiment(),
	}
}
