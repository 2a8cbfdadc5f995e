package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"DEBUG":   zerolog.DebugLevel,
		"info":    zerolog.InfoLevel,
		"WARNING": zerolog.WarnLevel,
		"warn":    zerolog.WarnLevel,
		"ERROR":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&buf, "WARNING", "Builder")

	l.Info("loaded %d rows", 3)
	assert.Empty(t, buf.String())

	l.Warning("skipped %s", "x")
	assert.Contains(t, buf.String(), "skipped x")
	assert.Contains(t, buf.String(), `"component":"Builder"`)
}

func TestNamedSharesSink(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(&buf, "DEBUG", "App").Named("Server")

	l.Debug("hello")
	assert.Contains(t, buf.String(), `"component":"Server"`)
	assert.NotContains(t, buf.String(), `"component":"App"`)
	assert.Contains(t, buf.String(), "hello")
}

func TestCriticalLogsAndExits(t *testing.T) {
	code := -1
	exit = func(c int) { code = c }
	t.Cleanup(func() { exit = os.Exit })

	var buf bytes.Buffer
	NewLoggerWithWriter(&buf, "ERROR", "App").Critical("build failed: %s", "bad date")

	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "build failed: bad date")
	assert.Contains(t, buf.String(), `"level":"fatal"`)
}
