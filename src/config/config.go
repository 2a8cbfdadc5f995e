package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"sentiment-dashboard/src/helpers"
	"sentiment-dashboard/src/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment keys that override the YAML file.
const (
	EnvPricePath     = "DASHBOARD_PRICE_PATH"
	EnvSentimentPath = "DASHBOARD_SENTIMENT_PATH"
	EnvPort          = "DASHBOARD_PORT"
	EnvLogLevel      = "DASHBOARD_LOG_LEVEL"
)

const defaultGrpcPort = 50051

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// DefaultConfig returns the configuration used by `config init`.
func DefaultConfig() *Config {
	return &Config{MConfig: &models.MConfig{
		Name:     "sentiment-dashboard",
		Host:     "127.0.0.1",
		Port:     8501,
		LogLevel: "INFO",
		GrpcHost: "127.0.0.1",
		GrpcPort: defaultGrpcPort,
		Data: models.MDataConfig{
			PricePath:     "Data/processed/reliance_stock_cleaned.csv",
			SentimentPath: "Data/processed/reliance_daily_sentiment.csv",
			Symbol:        "RELIANCE.NS",
			MIC:           "xnse",
		},
		Dashboard: models.MDashboardConfig{
			Title:    "Financial Market Sentiment Intelligence",
			Subtitle: "Reliance Industries • NSE • Interactive Dashboard",
			Insights: []string{
				"Negative sentiment often appears before short-term price drops.",
				"Positive sentiment supports upward momentum.",
				"Sentiment works best as a risk indicator, not a standalone predictor.",
			},
		},
	}}
}

// -----------------------------------------------------------------------------

// NewConfig creates a new Config from a YAML file, then applies .env and
// process environment overrides.
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal data into the models struct
	var modelConfig models.MConfig
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: &modelConfig}
	config.applyDefaults()

	// 3. Environment overrides
	env, err := LoadEnv(".env")
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(env); err != nil {
		return nil, err
	}

	// 4. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "INFO"
	}
	if c.GrpcPort == 0 {
		c.GrpcPort = defaultGrpcPort
	}
	if c.GrpcHost == "" {
		c.GrpcHost = c.Host
	}
}

// -----------------------------------------------------------------------------

// LoadEnv reads the override keys from a dotenv file (if present) and the
// process environment. Process variables win over the file.
func LoadEnv(dotenvPath string) (map[string]string, error) {
	env := make(map[string]string)

	fileEnv, err := godotenv.Read(dotenvPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read env file '%s': %w", dotenvPath, err)
	}
	for k, v := range fileEnv {
		env[k] = v
	}

	for _, key := range []string{EnvPricePath, EnvSentimentPath, EnvPort, EnvLogLevel} {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}
	return env, nil
}

// -----------------------------------------------------------------------------

// ApplyEnv overrides config fields from the given variables.
func (c *Config) ApplyEnv(env map[string]string) error {
	if v := env[EnvPricePath]; v != "" {
		c.Data.PricePath = v
	}
	if v := env[EnvSentimentPath]; v != "" {
		c.Data.SentimentPath = v
	}
	if v := env[EnvLogLevel]; v != "" {
		c.LogLevel = v
	}
	if v := env[EnvPort]; v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return helpers.NewConfigurationError("%s must be an integer, got %q", EnvPort, v)
		}
		c.Port = port
	}
	return nil
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	// Validate App configuration (Flattened)
	if c.Name == "" {
		return helpers.NewConfigurationError("application name cannot be empty")
	}

	// Validate Server configuration (Flattened)
	if c.Host == "" {
		return helpers.NewConfigurationError("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return helpers.NewConfigurationError("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}
	if c.GrpcPort <= 1024 || c.GrpcPort > 65535 {
		return helpers.NewConfigurationError("invalid grpc port number: %d (must be between 1025 and 65535)", c.GrpcPort)
	}
	if c.GrpcPort == c.Port && c.GrpcHost == c.Host {
		return helpers.NewConfigurationError("grpc port %d collides with server port", c.GrpcPort)
	}

	// Validate Data configuration
	if c.Data.PricePath == "" {
		return helpers.NewConfigurationError("price file path cannot be empty")
	}
	if c.Data.SentimentPath == "" {
		return helpers.NewConfigurationError("sentiment file path cannot be empty")
	}

	for i, line := range c.Dashboard.Insights {
		if line == "" {
			return helpers.NewConfigurationError("dashboard insight %d cannot be empty", i)
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	// 1. Marshal the struct to YAML
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// 2. Write to file (0644 permissions)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}
