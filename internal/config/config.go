// Package config loads consume settings from a YAML file, CONSUME_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/utkarsh5026/consume/internal/logging"
)

const (
	configName = "consume"
	envPrefix  = "CONSUME"
)

// DefaultExtensions are the media types the file commands pick up.
var DefaultExtensions = []string{"jpg", "heic", "mov", "png", "raw", "tiff", "arw", "nef", "dng"}

// Config is the resolved CLI configuration.
type Config struct {
	// Concurrency is the in-flight limit. 0 means host parallelism.
	Concurrency int `mapstructure:"concurrency"`
	// Progress enables the live display.
	Progress bool `mapstructure:"progress"`
	// Interval is the progress poll cadence.
	Interval time.Duration `mapstructure:"interval"`
	// Rate limits invocation starts per second. 0 means unlimited.
	Rate  float64 `mapstructure:"rate"`
	Burst int     `mapstructure:"burst"`
	// Extensions are matched case-insensitively without the leading dot.
	Extensions []string       `mapstructure:"extensions"`
	Log        logging.Config `mapstructure:"log"`
}

// New returns a viper instance with every key defaulted and environment
// lookup enabled. Flags are bound onto it by the caller before Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("concurrency", 0)
	v.SetDefault("progress", true)
	v.SetDefault("interval", 100*time.Millisecond)
	v.SetDefault("rate", 0.0)
	v.SetDefault("burst", 1)
	v.SetDefault("extensions", DefaultExtensions)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", logging.FormatConsole)
	v.SetDefault("log.no_color", false)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the config file into v and decodes the result. With an empty
// path, consume.yaml is looked up in the working directory and in
// $HOME/.config/consume; a missing file is not an error. An explicit path
// must exist.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Extensions = normalizeExtensions(cfg.Extensions)
	cfg.Log.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must be >= 0 (got: %d)", c.Concurrency)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive (got: %s)", c.Interval)
	}
	if c.Rate < 0 {
		return fmt.Errorf("rate must be >= 0 (got: %g)", c.Rate)
	}
	if c.Rate > 0 && c.Burst < 1 {
		return fmt.Errorf("burst must be >= 1 when rate is set (got: %d)", c.Burst)
	}
	if len(c.Extensions) == 0 {
		return errors.New("extensions must not be empty")
	}
	return c.Log.Validate()
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	seen := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext == "" || seen[ext] {
			continue
		}
		seen[ext] = true
		out = append(out, ext)
	}
	return out
}
