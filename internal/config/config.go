// Package config loads the CLI configuration from a YAML file and
// applies defaults for anything unset.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Detector selects and tunes the region detector.
type Detector struct {
	// Kind is one of "skin", "rectangles" or "text".
	Kind string `yaml:"kind"`

	// MinArea is the smallest region (in pixels) skin and rectangle
	// detection will report.
	MinArea int `yaml:"min_area"`

	// Tolerance is the rectangularity threshold for rectangle
	// detection (0..1).
	Tolerance float64 `yaml:"tolerance"`

	// Language is the Tesseract language code for text detection.
	Language string `yaml:"language"`
}

// Chain is one filter application: every detected region of every
// loaded image is run through the named filter, and the result is
// saved under output_dir/subdir.
type Chain struct {
	// Filter is one of "gaussian", "box", "median", "pixelate",
	// "grayscale", "sepia" or "duotone".
	Filter string `yaml:"filter"`

	// Subdir receives the processed images; defaults to the filter
	// name.
	Subdir string `yaml:"subdir"`

	// Radius tunes the blur filters.
	Radius float64 `yaml:"radius"`

	// Block is the pixelation block size.
	Block int `yaml:"block"`

	// Shadow and Highlight are the duotone ramp endpoints ("#rrggbb").
	Shadow    string `yaml:"shadow"`
	Highlight string `yaml:"highlight"`
}

// Config is the full CLI configuration.
type Config struct {
	// InputDir is the root all load paths resolve against.
	InputDir string `yaml:"input_dir"`

	// OutputDir receives saved images; created if missing.
	OutputDir string `yaml:"output_dir"`

	// Source is the directory under InputDir to scan, "" for the root.
	Source string `yaml:"source"`

	// Extensions is the case-insensitive allow-list for directory
	// scans; empty loads every regular file.
	Extensions []string `yaml:"extensions"`

	// CacheCapacity bounds the image cache; 0 means unbounded.
	CacheCapacity int `yaml:"cache_capacity"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`

	Detector Detector `yaml:"detector"`
	Chains   []Chain  `yaml:"chains"`
}

// Default returns the configuration used when no file is given: blur
// skin-toned regions of JPEGs under ./images into ./output.
func Default() *Config {
	return &Config{
		InputDir:   "images",
		OutputDir:  "output",
		Extensions: []string{".jpg", ".jpeg", ".png"},
		LogLevel:   "info",
		Detector: Detector{
			Kind:      "skin",
			MinArea:   400,
			Tolerance: 0.85,
			Language:  "eng",
		},
		Chains: []Chain{
			{Filter: "gaussian", Radius: 16},
			{Filter: "pixelate", Block: 12},
		},
	}
}

// Load reads a YAML config from path and fills unset fields with
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %q: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("input_dir must be set")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must be set")
	}
	if c.CacheCapacity < 0 {
		return fmt.Errorf("cache_capacity must be >= 0, got %d", c.CacheCapacity)
	}
	switch c.Detector.Kind {
	case "skin", "rectangles", "text":
	default:
		return fmt.Errorf("unknown detector kind %q", c.Detector.Kind)
	}
	if len(c.Chains) == 0 {
		return fmt.Errorf("at least one filter chain must be configured")
	}
	for i := range c.Chains {
		ch := &c.Chains[i]
		switch ch.Filter {
		case "gaussian", "box", "median", "pixelate", "grayscale", "sepia", "duotone":
		default:
			return fmt.Errorf("chain %d: unknown filter %q", i, ch.Filter)
		}
		if ch.Subdir == "" {
			ch.Subdir = ch.Filter
		}
	}
	return nil
}
