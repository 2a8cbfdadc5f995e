package models

// -----------------------------------------------------------------------------
// Server State Structure
// -----------------------------------------------------------------------------

type MDashboardState struct {
	Type      string        `json:"type"` // "INITIAL" or "UPDATE"
	Symbol    string        `json:"symbol"`
	Records   []MRecordView `json:"records"`
	Summary   MSummary      `json:"summary"`
	Insights  MInsights     `json:"insights"`
	Timestamp int64         `json:"timestamp"`
	Build     MBuildMetrics `json:"build_metrics"`
}

// MBuildMetrics describes the last builder run.
type MBuildMetrics struct {
	BuildTimeSeconds float64 `json:"build_time_seconds"`
	PriceRows        int     `json:"price_rows"`
	SentimentRows    int     `json:"sentiment_rows"`
}

// -----------------------------------------------------------------------------
// SubscribeCommand for client messages
// -----------------------------------------------------------------------------

type MSubscribeCommand struct {
	Command string `json:"command"`
	From    string `json:"from"`
	To      string `json:"to"`
}
