package interfaces

import "sentiment-dashboard/src/models"

// -----------------------------------------------------------------------------
// IDataSource loads the two input series for the metrics builder.
// -----------------------------------------------------------------------------

type IDataSource interface {

	// Name returns a human readable identifier used in logs
	Name() string

	// -----------------------------------------------------------------------------

	// LoadPrices returns the price series in file order.
	LoadPrices() ([]models.MPricePoint, error)

	// -----------------------------------------------------------------------------

	// LoadSentiment returns the sentiment series in file order.
	LoadSentiment() ([]models.MSentimentPoint, error)
}
