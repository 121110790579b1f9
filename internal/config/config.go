// Package config loads the cropper's settings from defaults, an optional
// YAML file and IMAGE_CROPPER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, with dots in the key
// replaced by underscores: IMAGE_CROPPER_CONTAINER_WIDTH.
const EnvPrefix = "IMAGE_CROPPER"

// Config is the full configuration.
type Config struct {
	Container ContainerConfig `mapstructure:"container" yaml:"container"`
	Handle    HandleConfig    `mapstructure:"handle" yaml:"handle"`
	Output    OutputConfig    `mapstructure:"output" yaml:"output"`
	Preview   PreviewConfig   `mapstructure:"preview" yaml:"preview"`
	Fetch     FetchConfig     `mapstructure:"fetch" yaml:"fetch"`
	Logger    LoggerConfig    `mapstructure:"logger" yaml:"logger"`
}

// ContainerConfig places and sizes the element the image is fitted into.
type ContainerConfig struct {
	Width float64 `mapstructure:"width" yaml:"width"`
	Left  float64 `mapstructure:"left" yaml:"left"`
	Top   float64 `mapstructure:"top" yaml:"top"`
}

// HandleConfig sets the hit area of the resize handles.
type HandleConfig struct {
	Size float64 `mapstructure:"size" yaml:"size"`
}

// OutputConfig controls where exports go. An empty Dir keeps exports in
// memory; Inline also returns them base64-encoded in tool results.
type OutputConfig struct {
	Dir    string `mapstructure:"dir" yaml:"dir"`
	Inline bool   `mapstructure:"inline" yaml:"inline"`
}

// PreviewConfig styles rendered previews.
type PreviewConfig struct {
	OverlayDim   float64 `mapstructure:"overlay_dim" yaml:"overlay_dim"`
	OutlineColor string  `mapstructure:"outline_color" yaml:"outline_color"`
	HandleColor  string  `mapstructure:"handle_color" yaml:"handle_color"`
	HandleSize   int     `mapstructure:"handle_size" yaml:"handle_size"`
}

// FetchConfig bounds remote image downloads.
type FetchConfig struct {
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// LoggerConfig selects the log level and encoder.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
}

// SetDefaults registers the default for every key.
func SetDefaults(v *viper.Viper) {
	// -- Container --
	v.SetDefault("container.width", 400.0)
	v.SetDefault("container.left", 0.0)
	v.SetDefault("container.top", 0.0)

	// -- Handles --
	v.SetDefault("handle.size", 10.0)

	// -- Output --
	v.SetDefault("output.dir", "")
	v.SetDefault("output.inline", true)

	// -- Preview --
	v.SetDefault("preview.overlay_dim", 0.5)
	v.SetDefault("preview.outline_color", "#FFFFFF")
	v.SetDefault("preview.handle_color", "#39F")
	v.SetDefault("preview.handle_size", 8)

	// -- Fetch --
	v.SetDefault("fetch.timeout", 30*time.Second)

	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "image-cropper")
}

// NewViper returns a viper instance with defaults and environment binding.
// When file is non-empty it is read as the config file.
func NewViper(file string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file == "" {
		return v, nil
	}
	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return v, nil
}

// Load reads defaults, the optional file and the environment into a Config.
func Load(file string) (*Config, error) {
	v, err := NewViper(file)
	if err != nil {
		return nil, err
	}
	return FromViper(v)
}

// FromViper unmarshals and validates v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration with nothing overridden.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// Validate rejects settings no cropper can run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Container.Width <= 0 {
		errs = append(errs, fmt.Errorf("container.width must be positive, got %g", c.Container.Width))
	}
	if c.Handle.Size < 0 {
		errs = append(errs, fmt.Errorf("handle.size must not be negative, got %g", c.Handle.Size))
	}
	if c.Preview.OverlayDim < 0 || c.Preview.OverlayDim > 1 {
		errs = append(errs, fmt.Errorf("preview.overlay_dim must be within [0, 1], got %g", c.Preview.OverlayDim))
	}
	if c.Fetch.Timeout < 0 {
		errs = append(errs, fmt.Errorf("fetch.timeout must not be negative, got %s", c.Fetch.Timeout))
	}
	switch c.Logger.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logger.format must be console or json, got %q", c.Logger.Format))
	}
	return errors.Join(errs...)
}
