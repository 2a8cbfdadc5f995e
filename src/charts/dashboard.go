package charts

import (
	"math"
	"strconv"

	"sentiment-dashboard/src/interfaces"
	"sentiment-dashboard/src/models"
)

// Card is one KPI tile.
type Card struct {
	Key        string `json:"key"`
	Label      string `json:"label"`
	Value      string `json:"value"`
	Background string `json:"background"`
}

// Dashboard is everything a front end needs to draw the page.
type Dashboard struct {
	Title          string      `json:"title"`
	Subtitle       string      `json:"subtitle"`
	Symbol         string      `json:"symbol"`
	Format         string      `json:"format"`
	Cards          []Card      `json:"cards"`
	PriceChart     interface{} `json:"price_chart"`
	SentimentChart interface{} `json:"sentiment_chart"`
	Insights       []string    `json:"insights"`
	Timestamp      int64       `json:"timestamp"`
}

// -----------------------------------------------------------------------------

// Cards renders the four summary scalars. An empty dataset shows "n/a" for
// the average instead of a number.
func Cards(s models.MSummary) []Card {
	avg := "n/a"
	if s.HasData {
		avg = strconv.FormatFloat(math.Round(s.AvgSentiment*1000)/1000, 'f', -1, 64)
	}
	return []Card{
		{Key: "trading_days", Label: "Trading Days", Value: strconv.Itoa(s.TradingDays), Background: "#E0F2FE"},
		{Key: "avg_sentiment", Label: "Avg Sentiment", Value: avg, Background: "#DCFCE7"},
		{Key: "positive_days", Label: "Positive Days", Value: strconv.Itoa(s.PositiveDays), Background: "#FEF3C7"},
		{Key: "negative_days", Label: "Negative Days", Value: strconv.Itoa(s.NegativeDays), Background: "#FEE2E2"},
	}
}

// -----------------------------------------------------------------------------

// BuildDashboard assembles the page from a snapshot using any renderer.
func BuildDashboard(state *models.MDashboardState, cfg models.MDashboardConfig, renderer interfaces.IChartRenderer) *Dashboard {
	insights := cfg.Insights
	if insights == nil {
		insights = []string{}
	}
	return &Dashboard{
		Title:          cfg.Title,
		Subtitle:       cfg.Subtitle,
		Symbol:         state.Symbol,
		Format:         renderer.Format(),
		Cards:          Cards(state.Summary),
		PriceChart:     renderer.PriceChart(state.Records),
		SentimentChart: renderer.SentimentChart(state.Records),
		Insights:       insights,
		Timestamp:      state.Timestamp,
	}
}
