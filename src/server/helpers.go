package server

import (
	"net/http"
	"time"

	"sentiment-dashboard/src/models"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------

// dateRange reads optional from/to query params (YYYY-MM-DD, inclusive).
// On a malformed value it writes a 400 and returns ok=false.
func dateRange(c *gin.Context) (string, string, bool) {
	from := c.Query("from")
	to := c.Query("to")
	for _, v := range []string{from, to} {
		if !validDate(v) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dates must be YYYY-MM-DD", "value": v})
			return "", "", false
		}
	}
	return from, to, true
}

// -----------------------------------------------------------------------------

// validDate accepts an empty bound or an ISO calendar date.
func validDate(v string) bool {
	if v == "" {
		return true
	}
	_, err := time.Parse(time.DateOnly, v)
	return err == nil
}

// -----------------------------------------------------------------------------

// filterRecords keeps records within [from, to]; empty bounds are open.
// ISO dates compare correctly as strings.
func filterRecords(records []models.MRecordView, from, to string) []models.MRecordView {
	if from == "" && to == "" {
		return records
	}

	filtered := make([]models.MRecordView, 0, len(records))
	for _, r := range records {
		if from != "" && r.Date < from {
			continue
		}
		if to != "" && r.Date > to {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// -----------------------------------------------------------------------------

// withRecords copies a snapshot with a different record slice.
func withRecords(state *models.MDashboardState, records []models.MRecordView) *models.MDashboardState {
	clone := *state
	clone.Records = records
	return &clone
}
