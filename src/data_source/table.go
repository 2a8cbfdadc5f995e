package datasource

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"sentiment-dashboard/src/helpers"
)

// candidate delimiters, in preference order
var delimiters = []rune{',', ';', '\t', '|'}

// cells pandas reads as NaN
var naValues = map[string]struct{}{
	"": {}, "NA": {}, "N/A": {}, "NaN": {}, "nan": {}, "null": {}, "NULL": {}, "None": {},
}

// -----------------------------------------------------------------------------

// Table is a header-indexed delimited file held in memory.
type Table struct {
	Path    string
	Header  []string
	Rows    [][]string
	columns map[string]int
}

// -----------------------------------------------------------------------------

// ReadTable reads a delimited text file with a header row.
// The delimiter is taken from the header line.
func ReadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, helpers.NewDataSourceError(path, err)
	}
	return ParseTable(path, data)
}

// -----------------------------------------------------------------------------

// ParseTable parses delimited content already in memory; path is used in errors.
func ParseTable(path string, data []byte) (*Table, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &helpers.DataFormatError{
			DashboardError: helpers.DashboardError{Message: fmt.Sprintf("data file '%s' is empty", path)},
			File:           path,
		}
	}
	if err != nil {
		return nil, readError(path, err)
	}

	t := &Table{Path: path, columns: make(map[string]int, len(header))}
	for i, name := range header {
		name = strings.TrimSpace(name)
		t.Header = append(t.Header, name)
		if _, dup := t.columns[name]; !dup {
			t.columns[name] = i
		}
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, readError(path, err)
		}
		if isBlank(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// -----------------------------------------------------------------------------

// Column returns every cell of the named column, trimmed.
// Short rows yield an empty cell.
func (t *Table) Column(name string) ([]string, error) {
	idx, ok := t.columns[name]
	if !ok {
		return nil, helpers.NewMissingColumnError(t.Path, name)
	}

	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			values[i] = strings.TrimSpace(row[idx])
		}
	}
	return values, nil
}

// -----------------------------------------------------------------------------

// IsNA reports whether a cell counts as missing.
func IsNA(cell string) bool {
	_, ok := naValues[strings.TrimSpace(cell)]
	return ok
}

// -----------------------------------------------------------------------------

func sniffDelimiter(data []byte) rune {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	if !scanner.Scan() {
		return ','
	}
	line := scanner.Text()

	best, bestCount := ',', 0
	for _, d := range delimiters {
		if n := strings.Count(line, string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

// -----------------------------------------------------------------------------

// readError classifies a reader failure: bad content is a format error,
// anything else is a source error.
func readError(path string, err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return helpers.NewMalformedFileError(path, err)
	}
	return helpers.NewDataSourceError(path, err)
}

// -----------------------------------------------------------------------------

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
