package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// config is the resolved configuration of a run. Values come from flags,
// then PREFIX_* environment variables, then the config file, then defaults.
type config struct {
	X        float64 `mapstructure:"x"`
	Y        float64 `mapstructure:"y"`
	Z        float64 `mapstructure:"z"`
	Prec     int     `mapstructure:"prec"`
	Format   string  `mapstructure:"format"`
	Echo     bool    `mapstructure:"echo"`
	History  string  `mapstructure:"history"`
	LogLevel string  `mapstructure:"log_level"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("format", "%g")
	v.SetDefault("log_level", "warn")
	v.SetEnvPrefix("prefix")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// loadConfig reads the config file, if any, and decodes the settings.
func loadConfig(v *viper.Viper, path string) (*config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.Prec < 0 {
		return nil, fmt.Errorf("precision (%d) must not be negative", cfg.Prec)
	}
	if cfg.Format == "" {
		cfg.Format = "%g"
	}
	return &cfg, nil
}

func newLogger(w io.Writer, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return l, nil
}
