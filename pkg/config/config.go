// Package config provides configuration loading and management for
// morphsnakes. It handles loading configuration from YAML files and
// provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Processing parameters
	Processing struct {
		// NumWorkers specifies how many goroutines the morphological
		// operators' decision phase may use
		NumWorkers int `yaml:"numWorkers"`

		// Sigma is the Gaussian blur standard deviation applied before
		// computing the edge/line indicator
		Sigma float64 `yaml:"sigma"`

		// Alpha scales the gradient magnitude inside the GAC edge
		// indicator
		Alpha float64 `yaml:"alpha"`

		// InitRadius is the radius, in grid cells, of the initial disk
		// embedding
		InitRadius float64 `yaml:"initRadius"`
	} `yaml:"processing"`

	// GAC holds the Morphological Geodesic Active Contours parameters
	GAC struct {
		// Smoothing is the number of curvature passes per step
		Smoothing int `yaml:"smoothing"`

		// Threshold gates which cells the balloon stage may touch
		Threshold float64 `yaml:"threshold"`

		// Balloon is the balloon pressure; positive dilates, negative
		// erodes, zero disables the balloon stage
		Balloon float64 `yaml:"balloon"`

		// Iterations is the number of evolution steps to run
		Iterations int `yaml:"iterations"`
	} `yaml:"gac"`

	// ACWE holds the Morphological Active Contours Without Edges
	// parameters
	ACWE struct {
		// Smoothing is the number of curvature passes per step
		Smoothing int `yaml:"smoothing"`

		// Lambda1 weighs the interior region term of the Chan-Vese
		// energy
		Lambda1 float64 `yaml:"lambda1"`

		// Lambda2 weighs the exterior region term of the Chan-Vese
		// energy
		Lambda2 float64 `yaml:"lambda2"`

		// Iterations is the number of evolution steps to run
		Iterations int `yaml:"iterations"`
	} `yaml:"acwe"`

	// Output parameters
	Output struct {
		// SaveIntermediaryResults determines whether to save intermediary
		// boundary masks during the evolution
		SaveIntermediaryResults bool `yaml:"saveIntermediaryResults"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default processing parameters
	cfg.Processing.NumWorkers = runtime.NumCPU() // Use all available cores by default
	cfg.Processing.Sigma = 1.0
	cfg.Processing.Alpha = 1.0
	cfg.Processing.InitRadius = 10.0

	// Set default GAC parameters
	cfg.GAC.Smoothing = 1
	cfg.GAC.Threshold = 0.3
	cfg.GAC.Balloon = 1.0
	cfg.GAC.Iterations = 100

	// Set default ACWE parameters
	cfg.ACWE.Smoothing = 1
	cfg.ACWE.Lambda1 = 1.0
	cfg.ACWE.Lambda2 = 1.0
	cfg.ACWE.Iterations = 100

	// Set default output parameters
	cfg.Output.SaveIntermediaryResults = false
	cfg.Output.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
