// Package config provides configuration loading and management for geofield.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"geofield/pkg/rbf"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Interpolation parameters forwarded to the engine
	Interpolation struct {
		// KernelType selects the radial basis function
		// (gaussian, multiquadric, thinPlateSpline, cubic)
		KernelType string `yaml:"kernelType"`

		// KernelParameter shapes the kernel's decay
		KernelParameter float64 `yaml:"kernelParameter"`

		// SmoothingFactor is the regularization added to the kernel
		// matrix diagonal; 0 yields exact interpolation
		SmoothingFactor float64 `yaml:"smoothingFactor"`

		// MaxIterations and Tolerance are reserved for iterative solver
		// variants and unused by the direct solver
		MaxIterations int     `yaml:"maxIterations"`
		Tolerance     float64 `yaml:"tolerance"`

		// GridResolution is the number of subdivisions per axis of the
		// output lattice
		GridResolution int `yaml:"gridResolution"`
	} `yaml:"interpolation"`

	// Runtime parameters
	Runtime struct {
		// Workers is the number of concurrent interpolation requests the
		// worker pool allows; it bounds peak memory, not per-call speed
		Workers int `yaml:"workers"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"runtime"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	engine := rbf.DefaultConfig()
	cfg.Interpolation.KernelType = string(engine.KernelType)
	cfg.Interpolation.KernelParameter = engine.KernelParameter
	cfg.Interpolation.SmoothingFactor = engine.SmoothingFactor
	cfg.Interpolation.MaxIterations = engine.MaxIterations
	cfg.Interpolation.Tolerance = engine.Tolerance
	cfg.Interpolation.GridResolution = engine.GridResolution

	cfg.Runtime.Workers = runtime.NumCPU()
	cfg.Runtime.Verbose = true

	return cfg
}

// EngineConfig converts the interpolation section into the engine's
// configuration type. Validation happens in the engine itself.
func (c *Config) EngineConfig() rbf.Config {
	return rbf.Config{
		KernelType:      rbf.KernelType(c.Interpolation.KernelType),
		KernelParameter: c.Interpolation.KernelParameter,
		SmoothingFactor: c.Interpolation.SmoothingFactor,
		MaxIterations:   c.Interpolation.MaxIterations,
		Tolerance:       c.Interpolation.Tolerance,
		GridResolution:  c.Interpolation.GridResolution,
	}
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
	return SaveConfig(DefaultConfig(), configPath)
}
