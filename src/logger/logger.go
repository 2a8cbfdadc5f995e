package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"sentiment-dashboard/src/models"

	"github.com/rs/zerolog"
)

// exit is swapped out in tests
var exit = os.Exit

// -----------------------------------------------------------------------------

// Logger provides structured logging functionality
type Logger struct {
	name   string
	base   zerolog.Logger
	logger zerolog.Logger
}

// -----------------------------------------------------------------------------

// NewLogger creates a new Logger instance writing to stdout.
// A nil config logs at INFO.
func NewLogger(cfg *models.MConfig, name string) *Logger {
	level := ""
	if cfg != nil {
		level = cfg.LogLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.DateTime, NoColor: true}
	return NewLoggerWithWriter(out, level, name)
}

// -----------------------------------------------------------------------------

// NewLoggerWithWriter creates a Logger on an arbitrary writer.
func NewLoggerWithWriter(w io.Writer, level string, name string) *Logger {
	base := zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
	return &Logger{
		name:   name,
		base:   base,
		logger: base.With().Str("component", name).Logger(),
	}
}

// -----------------------------------------------------------------------------

// ParseLevel maps config levels (DEBUG, INFO, WARNING, ERROR) to zerolog.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARNING", "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "CRITICAL", "FATAL":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// -----------------------------------------------------------------------------

// Named returns a logger for a sub-component sharing the same sink and level.
func (l *Logger) Named(name string) *Logger {
	return &Logger{
		name:   name,
		base:   l.base,
		logger: l.base.With().Str("component", name).Logger(),
	}
}

// -----------------------------------------------------------------------------

// Debug logs diagnostic messages
func (l *Logger) Debug(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}

// -----------------------------------------------------------------------------

// Warning logs recoverable problems
func (l *Logger) Warning(format string, args ...interface{}) {
	l.logger.Warn().Msgf(format, args...)
}

// -----------------------------------------------------------------------------

// Info logs informational messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.logger.Info().Msgf(format, args...)
}

// -----------------------------------------------------------------------------

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.logger.Error().Msgf(format, args...)
}

// -----------------------------------------------------------------------------

// Critical logs critical errors and exits the application
func (l *Logger) Critical(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.logger.WithLevel(zerolog.FatalLevel).Msg(msg)
	exit(1)
}
