package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/exotools/rvdetect/internal/logging"
	"github.com/exotools/rvdetect/pkg/analysis"
	"github.com/exotools/rvdetect/pkg/utils"
)

const (
	appName = "rvdetect"
	version = "v1.0.0"
)

var (
	appConfig *utils.Config
	manager   *analysis.Manager

	logLevel    string
	cacheFile   string
	enableCache bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Radial velocity exoplanet detection pipeline",
	Long: `rvdetect analyzes stellar radial velocity time series for periodic
Doppler-shift signals from orbiting companions. It computes a Lomb-Scargle
periodogram over the observation series, fits a circular Keplerian orbit at
the detected period and estimates the companion's minimum mass, orbital
distance and equilibrium temperature.

Input is a JSON observation payload with "time", "rv" and "rv_error" arrays
plus an optional "stellar_mass"; results are JSON documents suitable for
downstream tooling.`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := utils.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		appConfig = cfg

		if logLevel != "" {
			appConfig.Client.LogLevel = logLevel
		}
		logging.Setup(appConfig.Client.LogLevel)

		if enableCache {
			appConfig.Analysis.CacheEnabled = true
		}
		if cacheFile != "" {
			appConfig.Analysis.CacheEnabled = true
			appConfig.Analysis.CacheFile = cacheFile
		}

		manager = analysis.NewManager(appConfig.PipelineConfig())
		return nil
	},
}

// initCmd writes the default configuration file
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize client configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := utils.SaveConfig(utils.DefaultConfig()); err != nil {
			return err
		}
		path, err := utils.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Printf("Configuration saved to: %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&enableCache, "cache", false, "write an advisory analysis snapshot")
	rootCmd.PersistentFlags().StringVar(&cacheFile, "cache-file", "", "advisory snapshot path (implies --cache)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(batchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
