package datasource

import (
	"fmt"
	"math"
	"strconv"

	"sentiment-dashboard/src/helpers"
	"sentiment-dashboard/src/logger"
	"sentiment-dashboard/src/models"

	"github.com/shopspring/decimal"
)

// Required header names.
const (
	PriceDateColumn     = "Date"
	CloseColumn         = "Close"
	SentimentDateColumn = "date"
	ScoreColumn         = "avg_sentiment_score"
)

// first data row in file numbering (header is row 1)
const firstDataRow = 2

// -----------------------------------------------------------------------------

// CSVSource reads the pre-processed price and sentiment files.
type CSVSource struct {
	PricePath     string
	SentimentPath string
	Logger        *logger.Logger
}

// -----------------------------------------------------------------------------

func NewCSVSource(pricePath, sentimentPath string, log *logger.Logger) *CSVSource {
	if log == nil {
		log = logger.NewLogger(nil, "CSVSource")
	}
	return &CSVSource{
		PricePath:     pricePath,
		SentimentPath: sentimentPath,
		Logger:        log,
	}
}

// -----------------------------------------------------------------------------

func (s *CSVSource) Name() string {
	return fmt.Sprintf("csv(%s, %s)", s.PricePath, s.SentimentPath)
}

// -----------------------------------------------------------------------------

// LoadPrices reads Date and Close; other columns are ignored. An empty or NA
// close is read as 0 so the trading day is not lost; a non-numeric one fails.
func (s *CSVSource) LoadPrices() ([]models.MPricePoint, error) {
	table, err := ReadTable(s.PricePath)
	if err != nil {
		return nil, err
	}

	rawDates, err := table.Column(PriceDateColumn)
	if err != nil {
		return nil, err
	}
	rawCloses, err := table.Column(CloseColumn)
	if err != nil {
		return nil, err
	}

	dates, err := NormalizeDates(s.PricePath, PriceDateColumn, rawDates, firstDataRow)
	if err != nil {
		return nil, err
	}

	points := make([]models.MPricePoint, len(dates))
	missing := 0
	for i, raw := range rawCloses {
		if IsNA(raw) {
			// the row stays in the join with a zero close
			missing++
			points[i] = models.MPricePoint{Date: dates[i], Close: decimal.Zero}
			continue
		}
		closePrice, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, helpers.NewBadValueError(s.PricePath, CloseColumn, firstDataRow+i, raw, err)
		}
		points[i] = models.MPricePoint{Date: dates[i], Close: closePrice}
	}

	if missing > 0 {
		s.Logger.Warning("%s: %d rows without a close price kept with close 0", s.PricePath, missing)
	}
	s.Logger.Debug("Loaded %d price rows from %s", len(points), s.PricePath)
	return points, nil
}

// -----------------------------------------------------------------------------

// LoadSentiment reads date and avg_sentiment_score. Rows whose score cell is
// empty or NA carry no coverage and are left out, as if absent from the file.
func (s *CSVSource) LoadSentiment() ([]models.MSentimentPoint, error) {
	table, err := ReadTable(s.SentimentPath)
	if err != nil {
		return nil, err
	}

	rawDates, err := table.Column(SentimentDateColumn)
	if err != nil {
		return nil, err
	}
	rawScores, err := table.Column(ScoreColumn)
	if err != nil {
		return nil, err
	}

	dates, err := NormalizeDates(s.SentimentPath, SentimentDateColumn, rawDates, firstDataRow)
	if err != nil {
		return nil, err
	}

	points := make([]models.MSentimentPoint, 0, len(dates))
	outOfRange := 0
	for i, raw := range rawScores {
		if IsNA(raw) {
			continue
		}
		score, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsInf(score, 0) {
			return nil, helpers.NewBadValueError(s.SentimentPath, ScoreColumn, firstDataRow+i, raw, err)
		}
		if math.IsNaN(score) {
			continue
		}
		if score < -1 || score > 1 {
			outOfRange++
		}
		points = append(points, models.MSentimentPoint{Date: dates[i], AvgSentimentScore: score})
	}

	if skipped := len(dates) - len(points); skipped > 0 {
		s.Logger.Warning("%s: %d rows without a score treated as no coverage", s.SentimentPath, skipped)
	}
	if outOfRange > 0 {
		s.Logger.Warning("%s: %d scores outside [-1, 1]", s.SentimentPath, outOfRange)
	}
	s.Logger.Debug("Loaded %d sentiment rows from %s", len(points), s.SentimentPath)
	return points, nil
}
