package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath    string
	pricePath     string
	sentimentPath string
	showInsights  bool
)

// rootCmd is the base command for the dashboard CLI
var rootCmd = &cobra.Command{
	Use:   "sentiment-dashboard",
	Short: "Price and news-sentiment dashboard for a single equity",
	Long: `sentiment-dashboard joins a daily closing-price CSV with a daily
sentiment CSV on date, computes summary metrics and serves them as an
interactive dashboard.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the dashboard once and serve it over HTTP",
	RunE:  runServe,
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the summary metrics and exit",
	RunE:  runSummary,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration helpers",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration to a YAML file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

// -----------------------------------------------------------------------------

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "path to config file")
	rootCmd.PersistentFlags().StringVar(&pricePath, "prices", "", "price CSV (overrides config)")
	rootCmd.PersistentFlags().StringVar(&sentimentPath, "sentiment", "", "sentiment CSV (overrides config)")

	summaryCmd.Flags().BoolVar(&showInsights, "insights", false, "also print coverage and correlation insights")

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(serveCmd, summaryCmd, configCmd)
}

// -----------------------------------------------------------------------------

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
