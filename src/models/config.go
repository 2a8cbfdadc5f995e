package models

// MConfig Structure
type MConfig struct {
	Name      string           `yaml:"name"`
	Host      string           `yaml:"host"`
	Port      int              `yaml:"port"`
	LogLevel  string           `yaml:"log_level"`
	GrpcHost  string           `yaml:"grpc_host"`
	GrpcPort  int              `yaml:"grpc_port"`
	Data      MDataConfig      `yaml:"data"`
	Dashboard MDashboardConfig `yaml:"dashboard"`
}

type MDataConfig struct {
	PricePath     string `yaml:"price_path"`
	SentimentPath string `yaml:"sentiment_path"`
	Symbol        string `yaml:"symbol"`
	MIC           string `yaml:"mic"` // ISO 10383 market code, optional
}

type MDashboardConfig struct {
	Title    string   `yaml:"title"`
	Subtitle string   `yaml:"subtitle"`
	Insights []string `yaml:"insights"`
}
