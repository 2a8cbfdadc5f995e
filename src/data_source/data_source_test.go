package datasource

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"sentiment-dashboard/src/helpers"
	"sentiment-dashboard/src/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func quietLogger() *logger.Logger {
	return logger.NewLoggerWithWriter(&bytes.Buffer{}, "ERROR", "test")
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// -----------------------------------------------------------------------------

func TestParseTableSniffsDelimiter(t *testing.T) {
	cases := map[string]string{
		"comma":     "Date,Close\n2024-01-01,100\n",
		"semicolon": "Date;Close\n2024-01-01;100\n",
		"tab":       "Date\tClose\n2024-01-01\t100\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			table, err := ParseTable("p.csv", []byte(body))
			require.NoError(t, err)
			closes, err := table.Column("Close")
			require.NoError(t, err)
			assert.Equal(t, []string{"100"}, closes)
		})
	}
}

func TestParseTableStripsBOMAndBlankRows(t *testing.T) {
	table, err := ParseTable("p.csv", []byte("\ufeffDate,Close\n2024-01-01,1\n,\n2024-01-02,2\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Close"}, table.Header)
	assert.Len(t, table.Rows, 2)
}

func TestParseTableEmptyFile(t *testing.T) {
	_, err := ParseTable("p.csv", nil)
	var formatErr *helpers.DataFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "p.csv", formatErr.File)
}

func TestParseTableMalformedContent(t *testing.T) {
	cases := map[string]string{
		"bare quote":   "Date,Close\n2024-01-01,10\"0\n",
		"unterminated": "Date,Close\n2024-01-01,\"100\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseTable("p.csv", []byte(body))

			var formatErr *helpers.DataFormatError
			require.ErrorAs(t, err, &formatErr)
			assert.Equal(t, "p.csv", formatErr.File)

			var sourceErr *helpers.DataSourceError
			assert.False(t, errors.As(err, &sourceErr))

			var parseErr *csv.ParseError
			assert.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestColumnMissing(t *testing.T) {
	table, err := ParseTable("p.csv", []byte("Date,Open\n2024-01-01,1\n"))
	require.NoError(t, err)

	_, err = table.Column("Close")
	var formatErr *helpers.DataFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, "Close", formatErr.Column)
}

func TestReadTableMissingFile(t *testing.T) {
	_, err := ReadTable(filepath.Join(t.TempDir(), "absent.csv"))
	var sourceErr *helpers.DataSourceError
	require.ErrorAs(t, err, &sourceErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// -----------------------------------------------------------------------------

func TestNormalizeDatesLayouts(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Time
	}{
		{"2024-03-05", day(2024, 3, 5)},
		{"2024-03-05 09:15:00", day(2024, 3, 5)},
		{"2024-03-05T23:59:59+05:30", day(2024, 3, 5)},
		{"2024/03/05", day(2024, 3, 5)},
		{"03/05/2024", day(2024, 3, 5)},
		{"03-05-2024", day(2024, 3, 5)},
		{"2024-3-5", day(2024, 3, 5)},
		{"2024/3/5", day(2024, 3, 5)},
		{"3/5/2024", day(2024, 3, 5)},
		{"3-5-2024", day(2024, 3, 5)},
		{"05-Mar-2024", day(2024, 3, 5)},
		{"Mar 5, 2024", day(2024, 3, 5)},
		{"20240305", day(2024, 3, 5)},
	}
	for _, c := range cases {
		got, err := NormalizeDates("f.csv", "Date", []string{c.raw}, 2)
		require.NoError(t, err, c.raw)
		assert.Equal(t, c.want, got[0], c.raw)
	}
}

func TestNormalizeDatesAllOrNothing(t *testing.T) {
	_, err := NormalizeDates("s.csv", "date", []string{"2024-01-01", "2024-01-02", "not a date"}, 2)

	var dateErr *helpers.DateParseError
	require.ErrorAs(t, err, &dateErr)
	assert.Equal(t, "s.csv", dateErr.File)
	assert.Equal(t, "date", dateErr.Column)
	assert.Equal(t, 4, dateErr.Row)
	assert.Equal(t, "not a date", dateErr.Value)
}

func TestNormalizeDatesMonthFirstWithDashes(t *testing.T) {
	got, err := NormalizeDates("p.csv", "Date", []string{"01-02-2024", "12-31-2024"}, 2)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{day(2024, 1, 2), day(2024, 12, 31)}, got)

	// a day above 12 in the month slot is not silently swapped
	_, err = NormalizeDates("p.csv", "Date", []string{"01-02-2024", "31-12-2024"}, 2)
	var dateErr *helpers.DateParseError
	require.ErrorAs(t, err, &dateErr)
	assert.Equal(t, 3, dateErr.Row)
}

func TestNormalizeDatesPaddedAndUnpadded(t *testing.T) {
	got, err := NormalizeDates("s.csv", "date", []string{"2024-01-05", "2024-1-6", "2024-1-10"}, 2)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{day(2024, 1, 5), day(2024, 1, 6), day(2024, 1, 10)}, got)

	got, err = NormalizeDates("s.csv", "date", []string{"1/5/2024", "01/06/2024"}, 2)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{day(2024, 1, 5), day(2024, 1, 6)}, got)
}

func TestNormalizeDatesMixedLayoutsFail(t *testing.T) {
	_, err := NormalizeDates("s.csv", "date", []string{"2024-01-01", "01/02/2024"}, 2)
	var dateErr *helpers.DateParseError
	require.ErrorAs(t, err, &dateErr)
	assert.Equal(t, "01/02/2024", dateErr.Value)
}

func TestNormalizeDatesEmptyFirstValue(t *testing.T) {
	_, err := NormalizeDates("s.csv", "date", []string{""}, 2)
	var dateErr *helpers.DateParseError
	require.ErrorAs(t, err, &dateErr)
	assert.Equal(t, 2, dateErr.Row)
}

// -----------------------------------------------------------------------------

func TestLoadPrices(t *testing.T) {
	dir := t.TempDir()
	prices := writeFile(t, dir, "prices.csv", "Date,Open,High,Low,Close,Volume\n2024-01-01,99,101,98,100.50,1000\n2024-01-02,100,106,99,105,1200\n")
	src := NewCSVSource(prices, "", quietLogger())

	points, err := src.LoadPrices()
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, day(2024, 1, 1), points[0].Date)
	assert.Equal(t, "100.5", points[0].Close.String())
	assert.Equal(t, "105", points[1].Close.String())
}

func TestLoadPricesKeepsRowsWithoutClose(t *testing.T) {
	var logs bytes.Buffer
	path := writeFile(t, t.TempDir(), "p.csv", "Date,Close\n2024-01-01,100\n2024-01-02,\n2024-01-03,NA\n")
	src := NewCSVSource(path, "", logger.NewLoggerWithWriter(&logs, "WARNING", "test"))

	points, err := src.LoadPrices()
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, day(2024, 1, 2), points[1].Date)
	assert.True(t, points[1].Close.IsZero())
	assert.True(t, points[2].Close.IsZero())
	assert.Contains(t, logs.String(), "2 rows without a close price")
}

func TestLoadPricesErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing close column", func(t *testing.T) {
		src := NewCSVSource(writeFile(t, dir, "a.csv", "Date,Open\n2024-01-01,1\n"), "", quietLogger())
		_, err := src.LoadPrices()
		var formatErr *helpers.DataFormatError
		require.ErrorAs(t, err, &formatErr)
		assert.Equal(t, CloseColumn, formatErr.Column)
	})

	t.Run("lowercase date is not Date", func(t *testing.T) {
		src := NewCSVSource(writeFile(t, dir, "b.csv", "date,Close\n2024-01-01,1\n"), "", quietLogger())
		_, err := src.LoadPrices()
		var formatErr *helpers.DataFormatError
		require.ErrorAs(t, err, &formatErr)
		assert.Equal(t, PriceDateColumn, formatErr.Column)
	})

	t.Run("bad close", func(t *testing.T) {
		src := NewCSVSource(writeFile(t, dir, "c.csv", "Date,Close\n2024-01-01,abc\n"), "", quietLogger())
		_, err := src.LoadPrices()
		var formatErr *helpers.DataFormatError
		require.ErrorAs(t, err, &formatErr)
		assert.Contains(t, err.Error(), "row 2")
	})

	t.Run("bad date", func(t *testing.T) {
		path := writeFile(t, dir, "e.csv", "Date,Close\n2024-01-01,1\n2024-13-45,2\n")
		src := NewCSVSource(path, "", quietLogger())
		_, err := src.LoadPrices()
		var dateErr *helpers.DateParseError
		require.ErrorAs(t, err, &dateErr)
		assert.Equal(t, path, dateErr.File)
		assert.Equal(t, "2024-13-45", dateErr.Value)
	})

	t.Run("missing file", func(t *testing.T) {
		src := NewCSVSource(filepath.Join(dir, "none.csv"), "", quietLogger())
		_, err := src.LoadPrices()
		var sourceErr *helpers.DataSourceError
		require.ErrorAs(t, err, &sourceErr)
	})
}

func TestLoadSentiment(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "s.csv", "date,avg_sentiment_score,articles\n2024-01-01,0.5,3\n2024-01-02,,0\n2024-01-03,-0.25,1\n2024-01-04,NaN,0\n")
	src := NewCSVSource("", path, quietLogger())

	points, err := src.LoadSentiment()
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, day(2024, 1, 1), points[0].Date)
	assert.Equal(t, 0.5, points[0].AvgSentimentScore)
	assert.Equal(t, day(2024, 1, 3), points[1].Date)
	assert.Equal(t, -0.25, points[1].AvgSentimentScore)
}

func TestLoadSentimentErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing score column", func(t *testing.T) {
		src := NewCSVSource("", writeFile(t, dir, "a.csv", "date,score\n2024-01-01,1\n"), quietLogger())
		_, err := src.LoadSentiment()
		var formatErr *helpers.DataFormatError
		require.ErrorAs(t, err, &formatErr)
		assert.Equal(t, ScoreColumn, formatErr.Column)
	})

	t.Run("bad score", func(t *testing.T) {
		src := NewCSVSource("", writeFile(t, dir, "b.csv", "date,avg_sentiment_score\n2024-01-01,positive\n"), quietLogger())
		_, err := src.LoadSentiment()
		var formatErr *helpers.DataFormatError
		require.ErrorAs(t, err, &formatErr)
	})

	t.Run("bad date", func(t *testing.T) {
		path := writeFile(t, dir, "c.csv", "date,avg_sentiment_score\nyesterday,0.1\n")
		src := NewCSVSource("", path, quietLogger())
		_, err := src.LoadSentiment()
		var dateErr *helpers.DateParseError
		require.ErrorAs(t, err, &dateErr)
		assert.Equal(t, path, dateErr.File)
		assert.Equal(t, "yesterday", dateErr.Value)
	})
}
