package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/exotools/rvdetect/internal/types"
	"github.com/exotools/rvdetect/pkg/analysis"
)

var (
	outputPath string

	genObservations int
	genNoPlanet     bool
	genScale        float64
	genSeed         uint64
	genDemo         bool

	batchPattern string
)

// analyzeCmd runs the full detection pipeline on one observation payload
var analyzeCmd = &cobra.Command{
	Use:   "analyze <payload.json>",
	Short: "Run the full radial velocity analysis on an observation payload",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		series, stellarMass, err := loadPayload(args[0])
		if err != nil {
			return err
		}

		result, err := manager.FullAnalysis(series, stellarMass)
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}
		return writeJSON(result)
	},
}

// detectCmd runs only the periodogram stage
var detectCmd = &cobra.Command{
	Use:   "detect <payload.json>",
	Short: "Compute the Lomb-Scargle periodogram for an observation payload",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		series, _, err := loadPayload(args[0])
		if err != nil {
			return err
		}
		return writeJSON(manager.DetectPeriodicity(series))
	},
}

// generateCmd produces synthetic observation datasets
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic radial velocity dataset",
	Long: `Generate a synthetic radial velocity dataset with a known injected
signal. With --demo, the three standard demonstration datasets (Jupiter-like,
Earth-like, noise-only) are produced instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if genDemo {
			return writeJSON(analysis.GenerateTestDatasets(genSeed))
		}
		dataset := analysis.GenerateSyntheticSeries(analysis.SyntheticOptions{
			NumObservations: genObservations,
			HasPlanet:       !genNoPlanet,
			AmplitudeScale:  genScale,
			Seed:            genSeed,
		})
		return writeJSON(dataset)
	},
}

// batchCmd analyzes every payload file in a directory concurrently
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Analyze all observation payloads in a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		matches, err := filepath.Glob(filepath.Join(args[0], batchPattern))
		if err != nil {
			return fmt.Errorf("invalid pattern: %w", err)
		}
		if len(matches) == 0 {
			return fmt.Errorf("no payload files matching %q in %s", batchPattern, args[0])
		}

		items := make([]analysis.BatchItem, 0, len(matches))
		for _, path := range matches {
			series, stellarMass, err := loadPayload(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			items = append(items, analysis.BatchItem{
				Name:        filepath.Base(path),
				Series:      series,
				StellarMass: stellarMass,
			})
		}
		return writeJSON(manager.AnalyzeBatch(items))
	},
}

func init() {
	for _, cmd := range []*cobra.Command{analyzeCmd, detectCmd, generateCmd, batchCmd} {
		cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write JSON output to file instead of stdout")
	}

	generateCmd.Flags().IntVarP(&genObservations, "observations", "n", 150, "number of observations")
	generateCmd.Flags().BoolVar(&genNoPlanet, "no-planet", false, "generate noise only, without an injected signal")
	generateCmd.Flags().Float64Var(&genScale, "amplitude-scale", 1.0, "scale factor for the injected RV amplitude")
	generateCmd.Flags().Uint64Var(&genSeed, "seed", 1, "random seed for reproducible generation")
	generateCmd.Flags().BoolVar(&genDemo, "demo", false, "generate the three standard demo datasets")

	batchCmd.Flags().StringVar(&batchPattern, "pattern", "*.json", "glob pattern for payload files")
}

// loadPayload reads and validates a JSON observation payload from disk
func loadPayload(path string) (*types.ObservationSeries, float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read payload: %w", err)
	}
	return types.ParseObservationPayload(data)
}

// writeJSON emits v as indented JSON to the output file or stdout
func writeJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	data = append(data, '\n')

	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	_, err = os.Stdout.Write(data)
	return err
}
