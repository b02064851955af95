// Package config provides configuration loading and management for
// image-moments. It handles loading configuration from YAML files and
// provides default values.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/image-moments/internal/analysis"
	"github.com/ironsheep/image-moments/internal/detection"
	"github.com/ironsheep/image-moments/internal/imaging"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Config represents the application configuration loaded from YAML
type Config struct {
	// Threshold parameters
	Threshold struct {
		// Level is the fixed binarization threshold; intensities above it are foreground
		Level int `yaml:"level"`

		// MaxValue is the value foreground pixels carry in the raw binary image
		MaxValue int `yaml:"maxValue"`

		// Method is "fixed" or "otsu"
		Method string `yaml:"method"`
	} `yaml:"threshold"`

	// Region selection parameters
	Region struct {
		// Connectivity is 4 or 8
		Connectivity int `yaml:"connectivity"`
	} `yaml:"region"`

	// Report parameters
	Report struct {
		// Format of the printed summary: "text" or "json"
		Format string `yaml:"format"`

		// Figure is the path of the three-panel PNG figure; empty disables it
		Figure string `yaml:"figure"`

		// AnnotatedMask is the path of the raster-annotated mask PNG; empty disables it
		AnnotatedMask string `yaml:"annotatedMask"`

		// WidthInches and HeightInches size the figure
		WidthInches  float64 `yaml:"widthInches"`
		HeightInches float64 `yaml:"heightInches"`

		// AxisLengthFactor scales the drawn axis relative to max(rows, cols)
		AxisLengthFactor float64 `yaml:"axisLengthFactor"`

		// MarkerColor and AxisColor are hex colors such as "#FF0000"
		MarkerColor string `yaml:"markerColor"`
		AxisColor   string `yaml:"axisColor"`
	} `yaml:"report"`

	// Logging parameters
	Log struct {
		// Level is debug, info, warn, error or disabled
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Threshold.Level = int(imaging.DefaultThreshold)
	cfg.Threshold.MaxValue = int(imaging.DefaultMaxValue)
	cfg.Threshold.Method = analysis.MethodFixed

	cfg.Region.Connectivity = int(detection.Eight)

	cfg.Report.Format = "text"
	cfg.Report.WidthInches = 15
	cfg.Report.HeightInches = 5
	cfg.Report.AxisLengthFactor = imaging.DefaultAxisLengthFactor
	cfg.Report.MarkerColor = "#FF0000"
	cfg.Report.AxisColor = "#FF0000"

	cfg.Log.Level = "info"

	return cfg
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration.
// Keys missing from the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// Validate checks value ranges and that colors parse.
func (c *Config) Validate() error {
	if c.Threshold.Level < 0 || c.Threshold.Level > 255 {
		return fmt.Errorf("%w: threshold.level %d outside 0-255", ErrInvalid, c.Threshold.Level)
	}
	if c.Threshold.MaxValue < 1 || c.Threshold.MaxValue > 255 {
		return fmt.Errorf("%w: threshold.maxValue %d outside 1-255", ErrInvalid, c.Threshold.MaxValue)
	}
	switch c.Threshold.Method {
	case analysis.MethodFixed, analysis.MethodOtsu:
	default:
		return fmt.Errorf("%w: threshold.method %q (want fixed or otsu)", ErrInvalid, c.Threshold.Method)
	}
	if !detection.Connectivity(c.Region.Connectivity).Valid() {
		return fmt.Errorf("%w: region.connectivity %d (want 4 or 8)", ErrInvalid, c.Region.Connectivity)
	}
	switch c.Report.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: report.format %q (want text or json)", ErrInvalid, c.Report.Format)
	}
	if c.Report.WidthInches <= 0 || c.Report.HeightInches <= 0 {
		return fmt.Errorf("%w: report figure size must be positive", ErrInvalid)
	}
	if c.Report.AxisLengthFactor <= 0 {
		return fmt.Errorf("%w: report.axisLengthFactor must be positive", ErrInvalid)
	}
	if _, err := ParseColor(c.Report.MarkerColor); err != nil {
		return fmt.Errorf("%w: report.markerColor: %v", ErrInvalid, err)
	}
	if _, err := ParseColor(c.Report.AxisColor); err != nil {
		return fmt.Errorf("%w: report.axisColor: %v", ErrInvalid, err)
	}
	return nil
}

// Options converts the configuration into pipeline options.
func (c *Config) Options() analysis.Options {
	opts := analysis.DefaultOptions()
	opts.Threshold = uint8(c.Threshold.Level)
	opts.MaxValue = uint8(c.Threshold.MaxValue)
	opts.Method = c.Threshold.Method
	opts.Connectivity = detection.Connectivity(c.Region.Connectivity)
	return opts
}

// ParseColor parses a "#RRGGBB" hex color.
func ParseColor(hex string) (color.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("failed to parse color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
