package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/exotools/rvdetect/pkg/analysis"
)

// Config represents the application configuration
type Config struct {
	Client   ClientConfig   `yaml:"client" mapstructure:"client"`
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`
}

// ClientConfig contains general application settings
type ClientConfig struct {
	DataDir  string `yaml:"data_dir" mapstructure:"data_dir"`
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
}

// AnalysisConfig contains the detection pipeline tunables
type AnalysisConfig struct {
	GridPoints          int     `yaml:"grid_points" mapstructure:"grid_points"`
	DownsampleTarget    int     `yaml:"downsample_target" mapstructure:"downsample_target"`
	PeakPowerThreshold  float64 `yaml:"peak_power_threshold" mapstructure:"peak_power_threshold"`
	FAPThreshold        float64 `yaml:"fap_threshold" mapstructure:"fap_threshold"`
	HighSignificanceFAP float64 `yaml:"high_significance_fap" mapstructure:"high_significance_fap"`
	GoodFitChiSquared   float64 `yaml:"good_fit_chi_squared" mapstructure:"good_fit_chi_squared"`
	MaxObservations     int     `yaml:"max_observations" mapstructure:"max_observations"`
	Workers             int     `yaml:"workers" mapstructure:"workers"`
	CacheEnabled        bool    `yaml:"cache_enabled" mapstructure:"cache_enabled"`
	CacheFile           string  `yaml:"cache_file" mapstructure:"cache_file"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	appDir := filepath.Join(homeDir, ".rvdetect")
	def := analysis.DefaultConfig()

	return &Config{
		Client: ClientConfig{
			DataDir:  filepath.Join(appDir, "data"),
			LogLevel: "info",
		},
		Analysis: AnalysisConfig{
			GridPoints:          def.GridPoints,
			DownsampleTarget:    def.DownsampleTarget,
			PeakPowerThreshold:  def.PeakPowerThreshold,
			FAPThreshold:        def.FAPThreshold,
			HighSignificanceFAP: def.HighSignificanceFAP,
			GoodFitChiSquared:   def.GoodFitChiSquared,
			MaxObservations:     def.MaxObservations,
			Workers:             def.Workers,
			CacheEnabled:        false,
			CacheFile:           filepath.Join(appDir, "data", "rv_analysis_cache.json"),
		},
	}
}

// PipelineConfig maps the file configuration into the analysis package's
// explicit pipeline configuration.
func (c *Config) PipelineConfig() analysis.Config {
	cfg := analysis.Config{
		GridPoints:          c.Analysis.GridPoints,
		DownsampleTarget:    c.Analysis.DownsampleTarget,
		PeakPowerThreshold:  c.Analysis.PeakPowerThreshold,
		FAPThreshold:        c.Analysis.FAPThreshold,
		HighSignificanceFAP: c.Analysis.HighSignificanceFAP,
		GoodFitChiSquared:   c.Analysis.GoodFitChiSquared,
		MaxObservations:     c.Analysis.MaxObservations,
		Workers:             c.Analysis.Workers,
	}
	if c.Analysis.CacheEnabled {
		cfg.CachePath = c.Analysis.CacheFile
	}
	return cfg
}

// LoadConfig loads configuration from file or creates default
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	homeDir, _ := os.UserHomeDir()
	viper.AddConfigPath(filepath.Join(homeDir, ".rvdetect"))
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")

	viper.SetEnvPrefix("RVDETECT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config := DefaultConfig()
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// SaveConfig saves configuration to file
func SaveConfig(config *Config) error {
	homeDir, _ := os.UserHomeDir()
	configDir := filepath.Join(homeDir, ".rvdetect")
	configFile := filepath.Join(configDir, "config.yaml")

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if config.Client.DataDir != "" {
		if err := os.MkdirAll(config.Client.DataDir, 0o755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	a := config.Analysis
	if a.GridPoints < 2 {
		return fmt.Errorf("grid_points must be at least 2, got %d", a.GridPoints)
	}
	if a.DownsampleTarget < 3 {
		return fmt.Errorf("downsample_target must be at least 3, got %d", a.DownsampleTarget)
	}
	if a.PeakPowerThreshold <= 0 || a.PeakPowerThreshold > 1 {
		return fmt.Errorf("peak_power_threshold must be in (0, 1], got %g", a.PeakPowerThreshold)
	}
	if a.FAPThreshold <= 0 || a.FAPThreshold >= 1 {
		return fmt.Errorf("fap_threshold must be in (0, 1), got %g", a.FAPThreshold)
	}
	if a.MaxObservations <= 0 {
		return fmt.Errorf("max_observations must be positive, got %d", a.MaxObservations)
	}
	if a.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", a.Workers)
	}
	if a.CacheEnabled && a.CacheFile == "" {
		return fmt.Errorf("cache_file must be set when cache is enabled")
	}
	return nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".rvdetect", "config.yaml"), nil
}
