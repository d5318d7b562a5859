// Package config loads graphkit engine settings from YAML files.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the file representation of engine settings.
type Config struct {
	// Workers is the worker pool size. Zero selects GOMAXPROCS.
	Workers int `yaml:"workers"`
	// ChunkSize is the number of nodes per parallel task. Zero selects the default.
	ChunkSize int `yaml:"chunk_size"`
	// StartRate limits task starts per second. Zero disables the limiter.
	StartRate  float64 `yaml:"start_rate"`
	StartBurst int     `yaml:"start_burst"`

	Log     LogConfig     `yaml:"log"`
	Build   BuildConfig   `yaml:"build"`
	Relax   RelaxConfig   `yaml:"relax"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LogConfig selects the logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json, none
}

// BuildConfig holds cluster construction defaults.
type BuildConfig struct {
	Permissive bool    `yaml:"permissive"`
	Radius     float64 `yaml:"radius"`
}

// RelaxConfig holds relaxation defaults.
type RelaxConfig struct {
	Iterations int     `yaml:"iterations"`
	Influence  float64 `yaml:"influence"`
	ValidOnly  bool    `yaml:"valid_only"`
}

// MetricsConfig selects the metrics collector.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "none",
		},
		Build: BuildConfig{
			Radius: 1,
		},
		Relax: RelaxConfig{
			Iterations: 10,
			Influence:  1,
			ValidOnly:  true,
		},
		Metrics: MetricsConfig{
			Namespace: "graphkit",
		},
	}
}

// Load reads the YAML file at path on top of Default using strict parsing.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return Default(), fmt.Errorf("config: open: %w", err)
	}
	defer file.Close()

	return Decode(file)
}

// Decode reads YAML from r on top of Default using strict parsing and
// validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: workers must not be negative", ErrInvalidConfig))
	}
	if c.ChunkSize < 0 {
		errs = append(errs, fmt.Errorf("%w: chunk_size must not be negative", ErrInvalidConfig))
	}
	if c.StartRate < 0 || c.StartBurst < 0 {
		errs = append(errs, fmt.Errorf("%w: start_rate and start_burst must not be negative", ErrInvalidConfig))
	}
	if c.Build.Radius < 0 {
		errs = append(errs, fmt.Errorf("%w: build.radius must not be negative", ErrInvalidConfig))
	}
	if c.Relax.Iterations < 0 {
		errs = append(errs, fmt.Errorf("%w: relax.iterations must not be negative", ErrInvalidConfig))
	}
	if c.Relax.Influence < 0 || c.Relax.Influence > 1 {
		errs = append(errs, fmt.Errorf("%w: relax.influence must be in [0, 1]", ErrInvalidConfig))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "none", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: log.format %q", ErrInvalidConfig, c.Log.Format))
	}
	return errors.Join(errs...)
}

// LogLevel returns the slog level named by Log.Level.
func (c Config) LogLevel() slog.Level {
	l, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log.level %q", ErrInvalidConfig, s)
	}
	return l, nil
}
