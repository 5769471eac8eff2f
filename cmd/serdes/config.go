package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/rs/zerolog"

	"github.com/riseshia/serdes/i18n"
)

// Config is read from the environment.
type Config struct {
	LogLevel  string `env:"SERDES_LOG_LEVEL,default=info"`
	LogFormat string `env:"SERDES_LOG_FORMAT,default=console"`
	Lang      string `env:"SERDES_LANG,default=en"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return cfg, fmt.Errorf("decode environment: %w", err)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	switch strings.ToLower(cfg.LogFormat) {
	case "", "console":
		cfg.LogFormat = "console"
	case "json":
		cfg.LogFormat = "json"
	default:
		return cfg, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return cfg, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	i18n.SetLanguage(cfg.Lang)
	return cfg, nil
}

func newLogger(cfg Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if cfg.LogFormat == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
