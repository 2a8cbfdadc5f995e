package interfaces

import "sentiment-dashboard/src/models"

// -----------------------------------------------------------------------------
// IDataExchanger publishes dashboard snapshots to external consumers.
// -----------------------------------------------------------------------------

type IDataExchanger interface {
	// -----------------------------------------------------------------------------
	// Publish replaces the served snapshot and pushes it to live listeners.
	Publish(state *models.MDashboardState)

	// -----------------------------------------------------------------------------
	// Start the server
	Start() error

	// -----------------------------------------------------------------------------
	// Stop the server gracefully
	Stop() error
}
