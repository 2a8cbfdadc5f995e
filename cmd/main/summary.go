package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"sentiment-dashboard/src/charts"
	"sentiment-dashboard/src/config"
	"sentiment-dashboard/src/helpers"
	"sentiment-dashboard/src/logger"
	"sentiment-dashboard/src/models"

	"github.com/spf13/cobra"
)

// -----------------------------------------------------------------------------

func runSummary(cmd *cobra.Command, args []string) error {
	conf, err := loadFromFlags()
	if err != nil {
		return err
	}

	state, err := setupBuilder(conf).Build()
	if err != nil {
		helpers.NewErrorHandler(logger.NewLogger(conf.MConfig, conf.Name)).Handle(err, "summary")
		return err
	}

	printSummary(cmd.OutOrStdout(), state, showInsights)
	return nil
}

// -----------------------------------------------------------------------------

func printSummary(w io.Writer, state *models.MDashboardState, insights bool) {
	fmt.Fprintf(w, "%s\n", state.Symbol)
	for _, card := range charts.Cards(state.Summary) {
		fmt.Fprintf(w, "  %-20s %s\n", card.Label, card.Value)
	}
	if !insights {
		return
	}

	ins := state.Insights
	fmt.Fprintln(w)
	if ins.FirstDate != "" {
		fmt.Fprintf(w, "  %-20s %s .. %s\n", "Range", ins.FirstDate, ins.LastDate)
	}
	fmt.Fprintf(w, "  %-20s %d\n", "Days with sentiment", ins.CoveredDays)
	fmt.Fprintf(w, "  %-20s %d\n", "Days without", ins.MissingDays)
	fmt.Fprintf(w, "  %-20s %d\n", "Non-trading dates", ins.NonTradingDays)
	fmt.Fprintf(w, "  %-20s %.3f\n", "Price/score corr", ins.PriceSentimentCorr)
	fmt.Fprintf(w, "  %-20s %.3f\n", "Next-day corr", ins.NextDayReturnCorr)
	for _, note := range ins.Notes {
		fmt.Fprintf(w, "  - %s\n", note)
	}
}

// -----------------------------------------------------------------------------

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := defaultConfigPath
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
