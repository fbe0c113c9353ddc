package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gridwatt/stationuptime/app"
	"github.com/gridwatt/stationuptime/config"
	"github.com/gridwatt/stationuptime/core/reportfile"
	"github.com/gridwatt/stationuptime/core/summary"
	"github.com/gridwatt/stationuptime/infra/logger"
	"github.com/gridwatt/stationuptime/infra/metrics"
	"github.com/gridwatt/stationuptime/pkg/export"
)

var (
	cfgPath     string
	format      string
	showSummary bool
)

var rootCmd = &cobra.Command{
	Use:   "stationuptime <input_file>",
	Short: "Compute charging station uptime percentages from availability reports",
	Args:  cobra.ExactArgs(1),
	RunE:  run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json)")
	rootCmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or csv")
	rootCmd.Flags().BoolVar(&showSummary, "summary", false, "print a fleet summary to stderr")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// loadConfig reads the configured file, or returns defaults when no file was
// given.
func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.NewWithLevel("uptime", cfg.Logging.Level)

	parser := reportfile.Parser{Policy: reportfile.ConflictPolicy(cfg.Parser.ConflictPolicy)}
	fleet, stats, err := parser.ParseFile(args[0])
	if err != nil {
		return err
	}
	report := app.ComputeReport(fleet)
	log.Debugw("computed fleet uptime", map[string]any{
		"run_id":          report.RunID,
		"stations":        stats.Stations,
		"reports_kept":    stats.ReportsKept,
		"reports_dropped": stats.ReportsDropped,
	})

	switch format {
	case "text":
		err = export.WriteText(cmd.OutOrStdout(), report.Stations)
	case "json":
		err = export.WriteJSON(cmd.OutOrStdout(), report)
	case "csv":
		err = export.WriteCSV(cmd.OutOrStdout(), report.Stations)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return err
	}

	if showSummary {
		printSummary(summary.Compute(report.Stations))
	}

	// One-shot runs can still push results to InfluxDB when configured.
	if cfg.Metrics.InfluxEnabled {
		sink := metrics.NewInfluxSinkWithFallback(cfg.Metrics)
		if err := app.Record(sink, app.RunResult{Report: report, Stats: stats}); err != nil {
			log.Errorf("record metrics: %v", err)
		}
	}
	return nil
}

func printSummary(s summary.Summary) {
	fmt.Fprintf(os.Stderr, "stations: %d  min: %d  max: %d  mean: %.1f  median: %.1f  stddev: %.1f  fully up: %d  fully down: %d\n",
		s.Stations, s.MinPercent, s.MaxPercent, s.MeanPercent, s.MedianPercent, s.StdDevPercent, s.FullyUp, s.FullyDown)
}
