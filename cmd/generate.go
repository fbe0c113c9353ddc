package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gridwatt/stationuptime/core/generator"
)

var (
	genCfg generator.Config
	genOut string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a synthetic report file for testing",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&genCfg.Stations, "stations", 10, "number of stations")
	generateCmd.Flags().IntVar(&genCfg.ChargersPerStation, "chargers", 3, "chargers per station")
	generateCmd.Flags().IntVar(&genCfg.ReportsPerCharger, "reports", 20, "reports per charger")
	generateCmd.Flags().Float64Var(&genCfg.UpProbability, "up-prob", 0.9, "probability a report is up")
	generateCmd.Flags().Float64Var(&genCfg.GapProbability, "gap-prob", 0.05, "probability of a gap between reports")
	generateCmd.Flags().Uint64Var(&genCfg.MaxSegment, "max-segment", 10000, "maximum report interval length")
	generateCmd.Flags().Int64Var(&genCfg.Seed, "seed", 0, "random seed")
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	if genOut != "" {
		f, err := os.Create(genOut)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}
	return generator.New(genCfg).Generate(w)
}
