package server

import (
	"net/http"

	"sentiment-dashboard/src/charts"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *DashboardServer) getIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getHealth(c *gin.Context) {
	s.clientsMu.RLock()
	connections := len(s.clients)
	s.clientsMu.RUnlock()

	s.stateMutex.RLock()
	state := s.latestState
	lastError := s.lastError
	s.stateMutex.RUnlock()

	status := "ok"
	var timestamp int64
	tradingDays := 0
	if state == nil {
		status = "no_data"
	} else {
		timestamp = state.Timestamp
		tradingDays = state.Summary.TradingDays
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        status,
		"connections":   connections,
		"latest_update": timestamp,
		"trading_days":  tradingDays,
		"last_error":    lastError,
	})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"symbol":         s.Config.Data.Symbol,
		"title":          s.Config.Dashboard.Title,
		"subtitle":       s.Config.Dashboard.Subtitle,
		"price_path":     s.Config.Data.PricePath,
		"sentiment_path": s.Config.Data.SentimentPath,
		"chart_format":   s.Renderer.Format(),
	})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getSummary(c *gin.Context) {
	state := s.snapshot()
	c.JSON(http.StatusOK, gin.H{
		"summary": state.Summary,
		"cards":   charts.Cards(state.Summary),
	})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getRecords(c *gin.Context) {
	from, to, ok := dateRange(c)
	if !ok {
		return
	}
	state := s.snapshot()
	c.JSON(http.StatusOK, gin.H{
		"symbol":  state.Symbol,
		"records": filterRecords(state.Records, from, to),
	})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getInsights(c *gin.Context) {
	c.JSON(http.StatusOK, s.snapshot().Insights)
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getPriceChart(c *gin.Context) {
	from, to, ok := dateRange(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Renderer.PriceChart(filterRecords(s.snapshot().Records, from, to)))
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getSentimentChart(c *gin.Context) {
	from, to, ok := dateRange(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Renderer.SentimentChart(filterRecords(s.snapshot().Records, from, to)))
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, charts.BuildDashboard(s.snapshot(), s.Config.Dashboard, s.Renderer))
}

// -----------------------------------------------------------------------------

// postReload rebuilds from the configured files. On failure the previous
// snapshot stays in place and the diagnostic is returned.
func (s *DashboardServer) postReload(c *gin.Context) {
	if s.Builder == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "reload not available"})
		return
	}

	if !s.reloadLimit.Allow() {
		s.Metrics.Reloads.WithLabelValues("throttled").Inc()
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "reload already requested, try again shortly"})
		return
	}

	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	state, err := s.Builder.Build()
	if err != nil {
		msg := s.Errors.Describe(err)
		s.Errors.Handle(err, "reload")
		s.stateMutex.Lock()
		s.lastError = msg
		s.stateMutex.Unlock()
		s.Metrics.Reloads.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
		return
	}

	state.Type = "UPDATE"
	s.Publish(state)
	s.Metrics.Reloads.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, gin.H{
		"status":  "reloaded",
		"summary": state.Summary,
	})
}
