package utils

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
}

func TestLoadConfigJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{"width": 12, "height": 8, "wraps": false, "pattern": "glider"}`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 12 || cfg.Height != 8 || cfg.Wraps || cfg.Pattern != "glider" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	// unset fields keep their defaults
	if cfg.Rate != DefaultConfig().Rate {
		t.Fatalf("Rate = %d, want default %d", cfg.Rate, DefaultConfig().Rate)
	}
}

func TestLoadConfigYAML(t *testing.T) {
	for _, name := range []string{"config.yaml", "config.YML"} {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, name, "width: 20\nheight: 10\nrate: 4\nrandom_density: 0.25\nrandom_background: true\nlog_level: debug\n")

			cfg, err := LoadConfig(path)
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Width != 20 || cfg.Height != 10 || cfg.Rate != 4 || cfg.RandomDensity != 0.25 || cfg.LogLevel != "debug" {
				t.Fatalf("unexpected config %+v", cfg)
			}
			if !cfg.Wraps || !cfg.RandomBackground {
				t.Fatal("wraps default or random_background lost")
			}
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := LoadConfig(writeFile(t, "bad.json", "{")); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	if _, err := LoadConfig(writeFile(t, "bad.yaml", "width: [")); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -3 }},
		{"zero rate", func(c *Config) { c.Rate = 0 }},
		{"rate above max", func(c *Config) { c.Rate = 2_000_000_000 }},
		{"density above one", func(c *Config) { c.RandomDensity = 1.5 }},
		{"negative padding", func(c *Config) { c.Padding = -1 }},
		{"negative injection", func(c *Config) { c.InjectionCount = -1 }},
		{"unknown pattern", func(c *Config) { c.Pattern = "spaceship-9000" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestStatsUpdate(t *testing.T) {
	s := NewStats()
	s.Update(1, 50, 100, 100*time.Millisecond)
	if s.Density != 50 || s.AveragePopulation != 50 || math.Abs(s.GenerationsPerSecond-10) > 1e-9 {
		t.Fatalf("unexpected stats %+v", s)
	}
	s.Update(2, 0, 100, 0)
	if math.Abs(s.AveragePopulation-45) > 1e-9 {
		t.Fatalf("AveragePopulation = %v, want 45", s.AveragePopulation)
	}
	if s.TotalGenerations != 2 || s.Population != 0 {
		t.Fatalf("unexpected stats %+v", s)
	}
}
