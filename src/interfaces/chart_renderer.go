package interfaces

import "sentiment-dashboard/src/models"

// -----------------------------------------------------------------------------
// IChartRenderer turns merged records into declarative chart documents.
// Implementations must not retain or mutate the records.
// -----------------------------------------------------------------------------

type IChartRenderer interface {

	// Format names the produced document type, e.g. "vega-lite".
	Format() string

	// -----------------------------------------------------------------------------

	PriceChart(records []models.MRecordView) interface{}

	// -----------------------------------------------------------------------------

	SentimentChart(records []models.MRecordView) interface{}
}
