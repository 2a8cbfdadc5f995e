package analysis

import (
	"fmt"
	"time"

	datasource "sentiment-dashboard/src/data_source"
	"sentiment-dashboard/src/interfaces"
	"sentiment-dashboard/src/logger"
	"sentiment-dashboard/src/models"
	"sentiment-dashboard/src/utils"
)

// MetricsBuilder turns the two input files into a dashboard snapshot.
// It holds no results between runs; every Build reads the source again.
type MetricsBuilder struct {
	Config   *models.MConfig
	Source   interfaces.IDataSource
	Calendar *utils.TradingCalendar
	Logger   *logger.Logger
}

// -----------------------------------------------------------------------------

func NewMetricsBuilder(cfg *models.MConfig, source interfaces.IDataSource, log *logger.Logger) *MetricsBuilder {
	if log == nil {
		log = logger.NewLogger(cfg, "MetricsBuilder")
	}
	return &MetricsBuilder{
		Config:   cfg,
		Source:   source,
		Calendar: utils.GetCalendar(cfg.Data.Symbol, cfg.Data.MIC),
		Logger:   log,
	}
}

// -----------------------------------------------------------------------------

// Load reads both CSV files. Any failure is returned as-is: a
// DataSourceError, DataFormatError or DateParseError naming the file.
func Load(pricePath, sentimentPath string, log *logger.Logger) ([]models.MPricePoint, []models.MSentimentPoint, error) {
	return loadFrom(datasource.NewCSVSource(pricePath, sentimentPath, log))
}

// -----------------------------------------------------------------------------

// Load reads both series from the configured source.
func (b *MetricsBuilder) Load() ([]models.MPricePoint, []models.MSentimentPoint, error) {
	return loadFrom(b.Source)
}

func loadFrom(source interfaces.IDataSource) ([]models.MPricePoint, []models.MSentimentPoint, error) {
	prices, err := source.LoadPrices()
	if err != nil {
		return nil, nil, fmt.Errorf("load prices: %w", err)
	}
	sentiments, err := source.LoadSentiment()
	if err != nil {
		return nil, nil, fmt.Errorf("load sentiment: %w", err)
	}
	return prices, sentiments, nil
}

// -----------------------------------------------------------------------------

// Build runs load, merge, summarize and insights once.
func (b *MetricsBuilder) Build() (*models.MDashboardState, error) {
	start := time.Now()

	prices, sentiments, err := b.Load()
	if err != nil {
		return nil, err
	}

	merged := Merge(prices, sentiments)
	summary := Summarize(merged)
	insights := b.insights(merged)

	records := make([]models.MRecordView, len(merged))
	for i, r := range merged {
		records[i] = r.View()
	}

	elapsed := time.Since(start).Seconds()
	b.Logger.Info("Built dashboard from %s: %d trading days, %d with sentiment, avg %.3f (%.3fs)",
		b.Source.Name(), summary.TradingDays, insights.CoveredDays, summary.AvgSentiment, elapsed)

	return &models.MDashboardState{
		Type:      "INITIAL",
		Symbol:    b.Config.Data.Symbol,
		Records:   records,
		Summary:   summary,
		Insights:  insights,
		Timestamp: time.Now().UTC().Unix(),
		Build: models.MBuildMetrics{
			BuildTimeSeconds: elapsed,
			PriceRows:        len(prices),
			SentimentRows:    len(sentiments),
		},
	}, nil
}

// -----------------------------------------------------------------------------

func (b *MetricsBuilder) insights(merged []models.MMergedRecord) models.MInsights {
	ins := Insights(merged)

	dates := make([]time.Time, len(merged))
	for i, r := range merged {
		dates[i] = r.Date
	}
	ins.NonTradingDays = b.Calendar.CountNonTradingDays(dates)
	if ins.NonTradingDays > 0 {
		b.Logger.Warning("%d price dates fall on %s non-trading days", ins.NonTradingDays, b.Calendar.MIC)
	}
	if ins.MissingDays > 0 {
		b.Logger.Info("%d trading days have no sentiment and count as neutral", ins.MissingDays)
	}

	ins.Notes = append(ins.Notes, b.Config.Dashboard.Insights...)
	return ins
}
