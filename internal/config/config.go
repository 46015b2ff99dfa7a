// Package config loads the parameters of the card clean-up passes.
//
// Every field defaults to the value the card assets were cleaned with, so an
// empty file is valid.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/cardprep/internal/imaging"
	"github.com/ironsheep/cardprep/internal/transform"
)

// RedRule configures the red-to-gray pass.
type RedRule struct {
	MinRed   uint8  `yaml:"min_red"`
	MaxGreen uint8  `yaml:"max_green"`
	MaxBlue  uint8  `yaml:"max_blue"`
	Target   string `yaml:"target"` // "#RRGGBB", always written opaque
}

// Config holds the parameters shared by the command line and the tool server.
type Config struct {
	BorderSize     int     `yaml:"border_size"`
	WhiteThreshold uint8   `yaml:"white_threshold"`
	RedRule        RedRule `yaml:"red_rule"`
	OutputDir      string  `yaml:"output_dir"`
	StopOnError    bool    `yaml:"stop_on_error"`
	Verbose        bool    `yaml:"verbose"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		BorderSize:     transform.DefaultBorderSize,
		WhiteThreshold: transform.DefaultWhiteThreshold,
		RedRule: RedRule{
			MinRed:   transform.DefaultMinRed,
			MaxGreen: transform.DefaultMaxGreen,
			MaxBlue:  transform.DefaultMaxBlue,
			Target:   imaging.HexColor(transform.LightGray.R, transform.LightGray.G, transform.LightGray.B),
		},
	}
}

// Load reads a YAML file and overlays it on Default. Fields absent from the
// file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values Load cannot reject while parsing.
func (c *Config) Validate() error {
	if c.BorderSize < 0 {
		return fmt.Errorf("border_size must not be negative, got %d", c.BorderSize)
	}
	if _, err := imaging.ParseHexColor(c.RedRule.Target); err != nil {
		return fmt.Errorf("red_rule.target: %w", err)
	}
	return nil
}

// Params converts the configuration into transform parameters.
func (c *Config) Params() (transform.Params, error) {
	target, err := imaging.ParseHexColor(c.RedRule.Target)
	if err != nil {
		return transform.Params{}, fmt.Errorf("red_rule.target: %w", err)
	}
	return transform.Params{
		BorderSize:     c.BorderSize,
		WhiteThreshold: c.WhiteThreshold,
		Red: transform.RedRule{
			MinRed:   c.RedRule.MinRed,
			MaxGreen: c.RedRule.MaxGreen,
			MaxBlue:  c.RedRule.MaxBlue,
			Target:   transform.Pixel{R: target.R, G: target.G, B: target.B, A: target.A},
		},
	}, nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
