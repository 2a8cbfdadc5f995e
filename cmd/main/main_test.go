package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"sentiment-dashboard/src/config"
	"sentiment-dashboard/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigDefaultsWithOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{config.EnvPricePath, config.EnvSentimentPath, config.EnvPort, config.EnvLogLevel} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	conf, err := loadConfig(defaultConfigPath, "p.csv", "s.csv", false)
	require.NoError(t, err)
	assert.Equal(t, "p.csv", conf.Data.PricePath)
	assert.Equal(t, "s.csv", conf.Data.SentimentPath)
	assert.Equal(t, 8501, conf.Port)
}

func TestLoadConfigExplicitMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"), "", "", true)
	assert.Error(t, err)
}

func TestSummaryBuildFromFiles(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	prices := writeFile(t, dir, "prices.csv", "Date,Close\n2024-01-01,100\n2024-01-02,105\n2024-01-03,103\n")
	sentiment := writeFile(t, dir, "sentiment.csv", "date,avg_sentiment_score\n2024-01-01,0.5\n2024-01-03,-0.2\n")

	conf, err := loadConfig(defaultConfigPath, prices, sentiment, false)
	require.NoError(t, err)

	state, err := setupBuilder(conf).Build()
	require.NoError(t, err)

	var out bytes.Buffer
	printSummary(&out, state, true)
	text := out.String()
	assert.Contains(t, text, "Trading Days")
	assert.Contains(t, text, "3")
	assert.Contains(t, text, "Avg Sentiment        0.1")
	assert.Contains(t, text, "2024-01-01 .. 2024-01-03")
}

func TestPrintSummaryWithoutInsights(t *testing.T) {
	var out bytes.Buffer
	printSummary(&out, &models.MDashboardState{Symbol: "X"}, false)
	assert.Contains(t, out.String(), "n/a")
	assert.NotContains(t, out.String(), "Range")
}

func TestConfigInitWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "default.yaml")
	var out bytes.Buffer
	configInitCmd.SetOut(&out)

	require.NoError(t, runConfigInit(configInitCmd, []string{path}))
	assert.Contains(t, out.String(), path)

	loaded, err := config.NewConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "RELIANCE.NS", loaded.Data.Symbol)

	assert.Error(t, runConfigInit(configInitCmd, []string{path}))
}
