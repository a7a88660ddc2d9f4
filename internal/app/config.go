package app

import (
	"fmt"

	"github.com/spf13/viper"
)

const (
	DefaultOwner          = "scmkit"
	DefaultConcurrency    = 4
	DefaultDebounceMillis = 200
)

// Config is the yaml configuration the CLI accepts in place of flags.
type Config struct {
	Owner          string   `mapstructure:"owner"`
	Root           string   `mapstructure:"root"`
	Includes       []string `mapstructure:"includes"`
	DB             string   `mapstructure:"db"`
	Concurrency    int      `mapstructure:"concurrency"`
	DebounceMillis int      `mapstructure:"debounceMillis"`
}

func newConfigViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("owner", DefaultOwner)
	v.SetDefault("concurrency", DefaultConcurrency)
	v.SetDefault("debounceMillis", DefaultDebounceMillis)
	return v
}

// LoadConfig reads a yaml config file, applying defaults for anything unset.
func LoadConfig(path string) (Config, error) {
	v := newConfigViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Owner:          DefaultOwner,
		Concurrency:    DefaultConcurrency,
		DebounceMillis: DefaultDebounceMillis,
	}
}

func (c Config) validate() error {
	if c.Root == "" {
		return fmt.Errorf("root is required")
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1")
	}
	return nil
}
