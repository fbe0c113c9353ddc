package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gridwatt/stationuptime/core/reportfile"
)

var validateCmd = &cobra.Command{
	Use:   "validate <input_file>",
	Short: "Check a report file for structural errors without computing uptimes",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	parser := reportfile.Parser{Policy: reportfile.ConflictPolicy(cfg.Parser.ConflictPolicy)}
	_, stats, err := parser.ParseFile(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ok: %d stations, %d chargers, %d reports (%d dropped)\n",
		stats.Stations, stats.Chargers, stats.ReportsKept, stats.ReportsDropped)
	return nil
}
