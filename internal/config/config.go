// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up by LoadDefaultConfig.
const DefaultFileName = "reactortop.yaml"

var (
	ErrInvalidTickRate        = errors.New("config: tick_rate must be between 10 and 1000 ms")
	ErrInvalidRefreshInterval = errors.New("config: refresh_interval must be between 100 and 60000 ms")
	ErrInvalidStressWorkers   = errors.New("config: stress_workers must be between 1 and 256")
	ErrInvalidSimulation      = errors.New("config: simulation requires 0 <= min < max <= 100 and step > 0")
	ErrInvalidLayout          = errors.New("config: layout fractions must be between 0.2 and 0.9")
	ErrUnknownTheme           = errors.New("config: unknown theme")
)

// Themes lists the accepted theme names.
var Themes = []string{"lich-king", "phosphor"}

// LoadConfig loads and validates configuration from the specified YAML file.
// If the file doesn't exist, returns default configuration. On any other
// failure the defaults are returned together with the error.
func LoadConfig(path string) (*ProfileConfiguration, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("read %s: %w", path, err)
	}

	// Unset keys keep their defaults.
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), fmt.Errorf("parse %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("validate %s: %w", path, err)
	}

	return config, nil
}

// LoadDefaultConfig loads configuration from DefaultFileName in the current
// working directory, then next to the executable.
func LoadDefaultConfig() (*ProfileConfiguration, error) {
	// Try current directory first
	if _, err := os.Stat(DefaultFileName); err == nil {
		return LoadConfig(DefaultFileName)
	}

	// Try config directory relative to executable
	exePath, err := os.Executable()
	if err == nil {
		configPath := filepath.Join(filepath.Dir(exePath), DefaultFileName)
		if _, err := os.Stat(configPath); err == nil {
			return LoadConfig(configPath)
		}
	}

	// No config file found, return defaults
	return DefaultConfig(), nil
}

// SaveConfig writes configuration to the specified YAML file.
func SaveConfig(config *ProfileConfiguration, path string) error {
	data, err := Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Marshal validates and encodes the configuration as YAML.
func Marshal(config *ProfileConfiguration) ([]byte, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return yaml.Marshal(config)
}

// Validate checks every field against its accepted range.
func (c *ProfileConfiguration) Validate() error {
	var errs []error

	if c.TickRate < 10 || c.TickRate > 1000 {
		errs = append(errs, ErrInvalidTickRate)
	}
	if c.RefreshInterval < 100 || c.RefreshInterval > 60000 {
		errs = append(errs, ErrInvalidRefreshInterval)
	}
	if c.StressWorkers < 1 || c.StressWorkers > 256 {
		errs = append(errs, ErrInvalidStressWorkers)
	}

	s := c.Simulation
	if !finite(s.Min, s.Max, s.Step, s.Start) || s.Min < 0 || s.Max > 100 || s.Min >= s.Max || s.Step <= 0 {
		errs = append(errs, ErrInvalidSimulation)
	}

	for _, f := range []float64{c.Layout.ReactorWidth, c.Layout.TopHeight} {
		if !finite(f) || f < 0.2 || f > 0.9 {
			errs = append(errs, ErrInvalidLayout)
			break
		}
	}

	if !slices.Contains(Themes, c.Theme) {
		errs = append(errs, fmt.Errorf("%w %q", ErrUnknownTheme, c.Theme))
	}

	return errors.Join(errs...)
}

// finite rejects NaN, which slips through every range comparison, and ±Inf.
func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
