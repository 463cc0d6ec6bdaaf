package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PathEnv overrides images.path when set.
const PathEnv = "IMAGE_PROCESS_PATH"

// Default values applied by Load when the file leaves a field empty.
const (
	DefaultEngine   = "imaging"
	DefaultBlur     = 1.0
	DefaultLogLevel = "info"
)

// Config represents the image-process configuration file.
type Config struct {
	Images ImagesConfig `yaml:"images"`
	Log    LogConfig    `yaml:"log"`
}

// ImagesConfig controls where images live and how they are resampled.
type ImagesConfig struct {
	Path   string  `yaml:"path"`
	Engine string  `yaml:"engine"`
	Blur   float64 `yaml:"blur"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML configuration from data, applies defaults and the
// environment override, and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if p := os.Getenv(PathEnv); p != "" {
		c.Images.Path = p
	}
	if c.Images.Engine == "" {
		c.Images.Engine = DefaultEngine
	}
	if c.Images.Blur == 0 {
		c.Images.Blur = DefaultBlur
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// Validate checks if required configuration fields are set
func (c *Config) Validate() error {
	if c.Images.Path == "" {
		return fmt.Errorf("images.path is required")
	}
	switch c.Images.Engine {
	case "imaging", "bild":
	default:
		return fmt.Errorf("images.engine must be imaging or bild, got %q", c.Images.Engine)
	}
	if c.Images.Blur < 0 {
		return fmt.Errorf("images.blur must not be negative")
	}
	return nil
}

// PathConfig returns a PathConfig for images.path.
func (c *Config) PathConfig() *PathConfig {
	return NewPathConfig(c.Images.Path)
}
