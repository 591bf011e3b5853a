package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sheikhrachel/go-life/model"
)

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid config")

// MaxRate caps the generations per second a config may ask for
const MaxRate = 1000

// Config holds the configuration for the game
type Config struct {
	Width               int     `json:"width" yaml:"width"`
	Height              int     `json:"height" yaml:"height"`
	Wraps               bool    `json:"wraps" yaml:"wraps"`
	Rate                int     `json:"rate" yaml:"rate"` // generations per second
	AutoRestart         bool    `json:"auto_restart" yaml:"auto_restart"`
	StagnationThreshold int     `json:"stagnation_threshold" yaml:"stagnation_threshold"`
	MaxGenerations      int     `json:"max_generations" yaml:"max_generations"`
	RandomDensity       float64 `json:"random_density" yaml:"random_density"`
	InjectionCount      int     `json:"injection_count" yaml:"injection_count"`

	// Pattern names a library pattern to seed with instead of random cells
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Padding int    `json:"padding" yaml:"padding"`
	Seed    uint64 `json:"seed,omitempty" yaml:"seed,omitempty"` // 0 picks a fresh seed per run

	// RandomBackground fills the board at RandomDensity before stamping Pattern
	RandomBackground bool `json:"random_background" yaml:"random_background"`

	LogLevel string `json:"log_level" yaml:"log_level"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               60,
		Height:              30,
		Wraps:               true,
		Rate:                10,
		AutoRestart:         true,
		StagnationThreshold: 5,
		MaxGenerations:      1000,
		RandomDensity:       0.5,
		InjectionCount:      3,
		Padding:             1,
		LogLevel:            "info",
	}
}

// LoadConfig loads configuration from a JSON or YAML file over the defaults.
// Files ending in .yaml or .yml are read as YAML, anything else as JSON.
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Validate rejects configurations the game cannot run with
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] grid must be at least 1x1, got %dx%d", c.Width, c.Height)
	case c.Rate <= 0 || c.Rate > MaxRate:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] rate must be in [1,%d], got %d", MaxRate, c.Rate)
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] random_density must be in [0,1], got %v", c.RandomDensity)
	case c.Padding < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Validate] padding must not be negative, got %d", c.Padding)
	case c.StagnationThreshold < 0 || c.InjectionCount < 0 || c.MaxGenerations < 0:
		return errors.Wrap(ErrInvalidConfig, "[Validate] counts must not be negative")
	}
	if c.Pattern != "" {
		if _, err := model.LookupPattern(c.Pattern); err != nil {
			return errors.Wrapf(ErrInvalidConfig, "[Validate] %v", err)
		}
	}
	return nil
}
