package server

import (
	"sentiment-dashboard/src/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DashboardMetrics holds the Prometheus metrics exposed on /metrics.
// Each server owns its registry.
type DashboardMetrics struct {
	Registry *prometheus.Registry

	TradingDays    prometheus.Gauge
	CoveredDays    prometheus.Gauge
	AvgSentiment   prometheus.Gauge
	BuildSeconds   prometheus.Gauge
	LastPublish    prometheus.Gauge
	Reloads        *prometheus.CounterVec
	LiveClients    prometheus.Gauge
	RequestLatency *prometheus.HistogramVec
}

// -----------------------------------------------------------------------------

func NewDashboardMetrics() *DashboardMetrics {
	m := &DashboardMetrics{
		Registry: prometheus.NewRegistry(),
		TradingDays: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dashboard_trading_days",
			Help: "Rows in the merged price/sentiment table",
		}),
		CoveredDays: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dashboard_sentiment_covered_days",
			Help: "Trading days with a sentiment score",
		}),
		AvgSentiment: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dashboard_avg_sentiment",
			Help: "Mean sentiment over all trading days",
		}),
		BuildSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dashboard_build_duration_seconds",
			Help: "Duration of the last metrics build",
		}),
		LastPublish: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dashboard_last_publish_timestamp_seconds",
			Help: "Unix time of the served snapshot",
		}),
		Reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_reloads_total",
			Help: "Reload requests by result",
		}, []string{"result"}),
		LiveClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dashboard_websocket_clients",
			Help: "Connected WebSocket clients",
		}),
		RequestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dashboard_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"route", "code"}),
	}

	m.Registry.MustRegister(
		m.TradingDays, m.CoveredDays, m.AvgSentiment, m.BuildSeconds,
		m.LastPublish, m.Reloads, m.LiveClients, m.RequestLatency,
	)
	return m
}

// -----------------------------------------------------------------------------

// Observe records the figures of a freshly published snapshot.
func (m *DashboardMetrics) Observe(state *models.MDashboardState) {
	m.TradingDays.Set(float64(state.Summary.TradingDays))
	m.CoveredDays.Set(float64(state.Insights.CoveredDays))
	m.AvgSentiment.Set(state.Summary.AvgSentiment)
	m.BuildSeconds.Set(state.Build.BuildTimeSeconds)
	m.LastPublish.Set(float64(state.Timestamp))
}

// -----------------------------------------------------------------------------

func (m *DashboardMetrics) handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
}
