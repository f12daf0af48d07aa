// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Undetermined policies for Cq readings without amplification.
const (
	// UndeterminedDrop leaves undetermined readings out of every average.
	UndeterminedDrop = "drop"

	// UndeterminedCeiling substitutes the amplification ceiling (MaxCq)
	// for undetermined readings before averaging.
	UndeterminedCeiling = "ceiling"
)

// Config is the root-level settings struct and is a mix of settings
// available in settings.yaml and those available from the command line
type Config struct {
	// the largest meaningful Cq, readings above it count as undetermined
	MaxCq float64 `mapstructure:"max-cq"`

	// the minimum number of usable technical replicates for a standard
	// deviation and confidence interval to be reported
	MinReplicates int `mapstructure:"min-replicates"`

	// the confidence level for intervals on means and fold changes
	Confidence float64 `mapstructure:"confidence"`

	// replicate standard deviations above this are flagged in the output
	SDWarn float64 `mapstructure:"sd-warn"`

	// what to do with undetermined readings: "drop" or "ceiling"
	Undetermined string `mapstructure:"undetermined"`
}

// New returns a new Config struct populated by Viper settings (either
// from a settings.yaml or command line arguments)
func New() *Config {
	var c Config

	if err := viper.Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode into struct, %v", err)
	}
	c.Undetermined = strings.ToLower(c.Undetermined)

	return &c
}

// Default returns the built-in settings, the same values the commands
// seed Viper with. for testing and library use.
func Default() *Config {
	return &Config{
		MaxCq:         40,
		MinReplicates: 2,
		Confidence:    0.95,
		SDWarn:        0.5,
		Undetermined:  UndeterminedDrop,
	}
}

// Validate checks that the settings are usable before an analysis run.
func (c *Config) Validate() error {
	if c.MaxCq <= 0 {
		return ErrInvalidMaxCq
	}
	if c.Confidence <= 0 || c.Confidence >= 1 {
		return ErrInvalidConfidence
	}
	if c.MinReplicates < 2 {
		return ErrInvalidMinReplicates
	}
	if c.Undetermined != UndeterminedDrop && c.Undetermined != UndeterminedCeiling {
		return ErrInvalidUndetermined
	}
	return nil
}
