// Package config loads the configuration of the command line tool from a YAML file and
// PIPELINE_ORDER_* environment variables.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/askiada/sort-pipeline/internal/logger"
)

const envPrefix = "PIPELINE_ORDER"

var (
	ErrInvalidConcurrency = errors.New("concurrency must be greater than 0")
	ErrHandlerFileMissing = errors.New("handler_file must be set")
	ErrMethodsMissing     = errors.New("methods must not be empty")
)

type Config struct {
	Root        string        `mapstructure:"root" yaml:"root"`
	RoutesDir   string        `mapstructure:"routes_dir" yaml:"routes_dir"`
	HandlerFile string        `mapstructure:"handler_file" yaml:"handler_file"`
	Methods     []string      `mapstructure:"methods" yaml:"methods"`
	Concurrency int           `mapstructure:"concurrency" yaml:"concurrency"`
	DotFile     string        `mapstructure:"dot_file" yaml:"dot_file"`
	Log         logger.Config `mapstructure:"log" yaml:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("root", ".")
	v.SetDefault("routes_dir", "apps/server/src/routes")
	v.SetDefault("handler_file", "_handlers.ts")
	v.SetDefault("methods", []string{"GET", "POST", "PUT", "DELETE"})
	v.SetDefault("concurrency", 4)
	v.SetDefault("dot_file", "")
	v.SetDefault("log.level", logger.DefaultConfig.Level)
	v.SetDefault("log.format", logger.DefaultConfig.Format)
	v.SetDefault("log.file", logger.DefaultConfig.File)
	v.SetDefault("log.max_size", logger.DefaultConfig.MaxSize)
	v.SetDefault("log.max_backups", logger.DefaultConfig.MaxBackups)
	v.SetDefault("log.max_age", logger.DefaultConfig.MaxAge)
	v.SetDefault("log.compress", logger.DefaultConfig.Compress)
}

// Load reads the configuration. An empty path only applies defaults and environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		err := v.ReadInConfig()
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read config %s", path)
		}
	}

	cfg := &Config{}
	err := v.Unmarshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode config")
	}
	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the values a run cannot work without.
func (c *Config) Validate() error {
	if c.Concurrency < 1 {
		return ErrInvalidConcurrency
	}
	if c.HandlerFile == "" {
		return ErrHandlerFileMissing
	}
	if len(c.Methods) == 0 {
		return ErrMethodsMissing
	}

	return nil
}
