// Package config loads driftwatch settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"

	"github.com/kohljary/driftwatch/internal/classifier"
	"github.com/kohljary/driftwatch/internal/consistency"
	"github.com/kohljary/driftwatch/internal/profile"
	"github.com/kohljary/driftwatch/internal/store"
)

type Config struct {
	DBPath       string `env:"DRIFTWATCH_DB"`
	LogLevel     string `env:"DRIFTWATCH_LOG_LEVEL" envDefault:"warn"`
	PatternsFile string `env:"DRIFTWATCH_PATTERNS_FILE"`
	MetricsFile  string `env:"DRIFTWATCH_METRICS_FILE"`

	SampleCap         int `env:"DRIFTWATCH_SAMPLE_CAP" envDefault:"1000"`
	ReportCap         int `env:"DRIFTWATCH_REPORT_CAP" envDefault:"50"`
	MinProfileSamples int `env:"DRIFTWATCH_MIN_PROFILE_SAMPLES" envDefault:"3"`

	ConsistencyThreshold float64 `env:"DRIFTWATCH_CONSISTENCY_THRESHOLD" envDefault:"0.5"`
	DeviationThreshold   float64 `env:"DRIFTWATCH_DEVIATION_THRESHOLD" envDefault:"0.5"`
	DivergenceThreshold  float64 `env:"DRIFTWATCH_DIVERGENCE_THRESHOLD" envDefault:"0.4"`
	SecondaryThreshold   float64 `env:"DRIFTWATCH_SECONDARY_THRESHOLD" envDefault:"0.2"`
}

// Default returns the configuration used when no environment is set.
func Default() Config {
	return Config{
		DBPath:               defaultDBPath(),
		LogLevel:             "warn",
		SampleCap:            store.DefaultSampleCap,
		ReportCap:            store.DefaultReportCap,
		MinProfileSamples:    profile.DefaultMinSamples,
		ConsistencyThreshold: consistency.DefaultThresholds().Consistency,
		DeviationThreshold:   consistency.DefaultThresholds().Deviation,
		DivergenceThreshold:  consistency.DefaultThresholds().Divergence,
		SecondaryThreshold:   classifier.DefaultSecondaryThreshold,
	}
}

// Load parses the environment over the defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath()
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks ranges.
func (c Config) Validate() error {
	if c.SampleCap <= 0 || c.ReportCap <= 0 {
		return fmt.Errorf("config: sample and report caps must be positive")
	}
	if c.MinProfileSamples <= 0 {
		return fmt.Errorf("config: min profile samples must be positive")
	}
	for name, v := range map[string]float64{
		"consistency": c.ConsistencyThreshold,
		"deviation":   c.DeviationThreshold,
		"divergence":  c.DivergenceThreshold,
		"secondary":   c.SecondaryThreshold,
	} {
		if v < 0 {
			return fmt.Errorf("config: %s threshold must not be negative", name)
		}
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: log level: %w", err)
	}
	return nil
}

// Limits returns the store retention caps.
func (c Config) Limits() store.Limits {
	return store.Limits{Samples: c.SampleCap, Reports: c.ReportCap}
}

// Thresholds returns the analyzer cutoffs.
func (c Config) Thresholds() consistency.Thresholds {
	return consistency.Thresholds{
		Consistency: c.ConsistencyThreshold,
		Deviation:   c.DeviationThreshold,
		Divergence:  c.DivergenceThreshold,
	}
}

// Level returns the parsed log level, warn if unparsable.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.WarnLevel
	}
	return lvl
}

func defaultDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".driftwatch", "driftwatch.db")
}
