package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"sentiment-dashboard/src/analysis"
	"sentiment-dashboard/src/config"
	datasource "sentiment-dashboard/src/data_source"
	"sentiment-dashboard/src/logger"
)

const defaultConfigPath = "config/default.yaml"

// -----------------------------------------------------------------------------

// loadConfig reads the YAML config, falling back to built-in defaults when
// the default path is absent. Flag overrides are applied last.
func loadConfig(path, prices, sentiment string, explicit bool) (*config.Config, error) {
	var conf *config.Config
	var err error

	if _, statErr := os.Stat(path); errors.Is(statErr, fs.ErrNotExist) && !explicit {
		conf = config.DefaultConfig()
		env, envErr := config.LoadEnv(".env")
		if envErr != nil {
			return nil, envErr
		}
		if err := conf.ApplyEnv(env); err != nil {
			return nil, err
		}
	} else {
		conf, err = config.NewConfig(path)
		if err != nil {
			return nil, err
		}
	}

	if prices != "" {
		conf.Data.PricePath = prices
	}
	if sentiment != "" {
		conf.Data.SentimentPath = sentiment
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return conf, nil
}

// -----------------------------------------------------------------------------

// setupBuilder wires the CSV source into a metrics builder
func setupBuilder(conf *config.Config) *analysis.MetricsBuilder {
	sourceLogger := logger.NewLogger(conf.MConfig, "CSVSource")
	source := datasource.NewCSVSource(conf.Data.PricePath, conf.Data.SentimentPath, sourceLogger)

	builderLogger := logger.NewLogger(conf.MConfig, "MetricsBuilder")
	return analysis.NewMetricsBuilder(conf.MConfig, source, builderLogger)
}

// -----------------------------------------------------------------------------

func loadFromFlags() (*config.Config, error) {
	explicit := rootCmd.PersistentFlags().Changed("config")
	return loadConfig(configPath, pricePath, sentimentPath, explicit)
}
