package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"sentiment-dashboard/src/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
name: sentiment-dashboard
host: 127.0.0.1
port: 8501
data:
  price_path: prices.csv
  sentiment_path: sentiment.csv
  symbol: RELIANCE.NS
dashboard:
  title: Test
  insights:
    - one
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestNewConfigAppliesDefaults(t *testing.T) {
	t.Setenv(EnvPricePath, "")
	t.Setenv(EnvPort, "")

	cfg, err := NewConfig(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, defaultGrpcPort, cfg.GrpcPort)
	assert.Equal(t, "127.0.0.1", cfg.GrpcHost)
	assert.Equal(t, "prices.csv", cfg.Data.PricePath)
	assert.Equal(t, []string{"one"}, cfg.Dashboard.Insights)
}

func TestNewConfigEnvOverrides(t *testing.T) {
	t.Setenv(EnvPricePath, "/data/p.csv")
	t.Setenv(EnvPort, "9000")

	cfg, err := NewConfig(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "/data/p.csv", cfg.Data.PricePath)
	assert.Equal(t, 9000, cfg.Port)
}

func TestNewConfigMissingFile(t *testing.T) {
	_, err := NewConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestApplyEnvRejectsBadPort(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(map[string]string{EnvPort: "eighty"})

	var cfgErr *helpers.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestLoadEnvReadsDotenvFile(t *testing.T) {
	t.Setenv(EnvSentimentPath, "")
	os.Unsetenv(EnvSentimentPath)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DASHBOARD_SENTIMENT_PATH=/tmp/s.csv\n"), 0644))

	env, err := LoadEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/s.csv", env[EnvSentimentPath])
}

func TestLoadEnvMissingFileIsFine(t *testing.T) {
	_, err := LoadEnv(filepath.Join(t.TempDir(), ".env"))
	assert.NoError(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty name", func(c *Config) { c.Name = "" }},
		{"empty host", func(c *Config) { c.Host = "" }},
		{"low port", func(c *Config) { c.Port = 80 }},
		{"grpc collides", func(c *Config) { c.GrpcPort = c.Port; c.GrpcHost = c.Host }},
		{"no price path", func(c *Config) { c.Data.PricePath = "" }},
		{"no sentiment path", func(c *Config) { c.Data.SentimentPath = "" }},
		{"blank insight", func(c *Config) { c.Dashboard.Insights = []string{""} }},
	}

	require.NoError(t, DefaultConfig().Validate())

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	for _, key := range []string{EnvPricePath, EnvSentimentPath, EnvPort, EnvLogLevel} {
		t.Setenv(key, "")
	}

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, DefaultConfig().Save(path))

	cfg, err := NewConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().MConfig, cfg.MConfig)
}
