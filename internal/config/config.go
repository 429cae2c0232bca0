// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/iwvelando/plantainpro/internal/metrics"
	"github.com/iwvelando/plantainpro/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for plantainpro.
type Configuration struct {
	Assumptions metrics.BusinessAssumptions `yaml:"assumptions,omitempty"`
	Logging     LoggingConfig               `yaml:"logging,omitempty"`
	Output      OutputConfig                `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// Default returns a configuration holding the default assumptions.
func Default() *Configuration {
	return &Configuration{Assumptions: metrics.DefaultAssumptions()}
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationOrDefault behaves like LoadConfiguration but returns
// Default when the file does not exist.
func LoadConfigurationOrDefault(configPath string) (*Configuration, error) {
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return LoadConfiguration(configPath)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	configuration.applyDefaults()
	return &configuration, nil
}

// applyDefaults fills unset assumptions with the session defaults.
func (c *Configuration) applyDefaults() {
	defaults := metrics.DefaultAssumptions()
	if c.Assumptions.DailyCapacity == 0 {
		c.Assumptions.DailyCapacity = defaults.DailyCapacity
	}
	if c.Assumptions.SellingPrice == 0 {
		c.Assumptions.SellingPrice = defaults.SellingPrice
	}
	if c.Assumptions.CurrencyDepreciationFactor == 0 {
		c.Assumptions.CurrencyDepreciationFactor = defaults.CurrencyDepreciationFactor
	}
}

// ValidateConfiguration checks the configured assumptions against the input
// hints and returns warnings. It never rejects a configuration.
func (c *Configuration) ValidateConfiguration() []string {
	return validation.AssumptionWarnings(
		c.Assumptions.DailyCapacity,
		c.Assumptions.SellingPrice,
		c.Assumptions.CurrencyDepreciationFactor,
	)
}
