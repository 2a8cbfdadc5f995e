package helpers

import (
	"errors"
	"fmt"

	"sentiment-dashboard/src/logger"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type DashboardError struct {
	Message string
	Cause   error
}

func (e *DashboardError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DashboardError) Unwrap() error {
	return e.Cause
}

type ConfigurationError struct{ DashboardError }

// DataSourceError is returned when an input file cannot be opened or read.
type DataSourceError struct {
	DashboardError
	File string
}

// DataFormatError is returned when a required column is absent or a cell
// in it cannot be interpreted.
type DataFormatError struct {
	DashboardError
	File   string
	Column string
}

// DateParseError is returned for the first date cell that cannot be parsed.
// Row is 1-based and counts the header as row 1.
type DateParseError struct {
	DashboardError
	File   string
	Column string
	Row    int
	Value  string
}

// -----------------------------------------------------------------------------
// Constructors
// -----------------------------------------------------------------------------

func NewDataSourceError(file string, cause error) *DataSourceError {
	return &DataSourceError{
		DashboardError: DashboardError{Message: fmt.Sprintf("cannot read data file '%s'", file), Cause: cause},
		File:           file,
	}
}

// -----------------------------------------------------------------------------

func NewMissingColumnError(file, column string) *DataFormatError {
	return &DataFormatError{
		DashboardError: DashboardError{Message: fmt.Sprintf("data file '%s' has no '%s' column", file, column)},
		File:           file,
		Column:         column,
	}
}

// -----------------------------------------------------------------------------

func NewBadValueError(file, column string, row int, value string, cause error) *DataFormatError {
	return &DataFormatError{
		DashboardError: DashboardError{
			Message: fmt.Sprintf("data file '%s' row %d: invalid '%s' value %q", file, row, column, value),
			Cause:   cause,
		},
		File:   file,
		Column: column,
	}
}

// -----------------------------------------------------------------------------

// NewMalformedFileError reports delimited content that cannot be tokenised,
// such as a bare quote or an unterminated quoted field.
func NewMalformedFileError(file string, cause error) *DataFormatError {
	return &DataFormatError{
		DashboardError: DashboardError{Message: fmt.Sprintf("data file '%s' is not valid delimited text", file), Cause: cause},
		File:           file,
	}
}

// -----------------------------------------------------------------------------

func NewDateParseError(file, column string, row int, value string) *DateParseError {
	return &DateParseError{
		DashboardError: DashboardError{
			Message: fmt.Sprintf("data file '%s' row %d: cannot parse '%s' value %q as a date", file, row, column, value),
		},
		File:   file,
		Column: column,
		Row:    row,
		Value:  value,
	}
}

// -----------------------------------------------------------------------------

func NewConfigurationError(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{DashboardError{Message: fmt.Sprintf(format, args...)}}
}

// -----------------------------------------------------------------------------
// Error Handler
// -----------------------------------------------------------------------------

type ErrorHandler struct {
	Logger *logger.Logger
}

func NewErrorHandler(l *logger.Logger) *ErrorHandler {
	if l == nil {
		l = logger.NewLogger(nil, "ErrorHandler")
	}
	return &ErrorHandler{Logger: l}
}

// -----------------------------------------------------------------------------

// Describe returns a one-line diagnostic naming the offending file and column.
func (e *ErrorHandler) Describe(err error) string {
	var dateErr *DateParseError
	var formatErr *DataFormatError
	var sourceErr *DataSourceError
	var cfgErr *ConfigurationError

	switch {
	case errors.As(err, &dateErr):
		return fmt.Sprintf("date parse error in %s (column %s, row %d, value %q)", dateErr.File, dateErr.Column, dateErr.Row, dateErr.Value)
	case errors.As(err, &formatErr):
		if formatErr.Column == "" {
			return fmt.Sprintf("format error in %s: %v", formatErr.File, err)
		}
		return fmt.Sprintf("format error in %s (column %s): %v", formatErr.File, formatErr.Column, err)
	case errors.As(err, &sourceErr):
		return fmt.Sprintf("data source error for %s: %v", sourceErr.File, err)
	case errors.As(err, &cfgErr):
		return fmt.Sprintf("configuration error: %v", err)
	default:
		return err.Error()
	}
}

// -----------------------------------------------------------------------------

func (e *ErrorHandler) Handle(err error, context string) {
	if err != nil {
		e.Logger.Error("Error in %s: %s", context, e.Describe(err))
	}
}
