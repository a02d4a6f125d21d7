package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config is read from the environment (and .env in development).
// Command line flags override individual fields.
type Config struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"` // json | console

	WordsFile string  `env:"WORDS_FILE"` // empty: embedded dictionary
	Trials    int     `env:"SIM_TRIALS" envDefault:"1000000"`
	Seed      *uint64 `env:"SIM_SEED"` // unset: random, reported before the run
	Workers   int     `env:"SIM_WORKERS" envDefault:"1"`
	Progress  bool    `env:"SIM_PROGRESS" envDefault:"true"`

	DBPath string `env:"DATABASE_PATH"` // empty: runs are kept in memory

	Port          string `env:"PORT" envDefault:"5175"`
	ClientOrigin  string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	MaxHTTPTrials int    `env:"SIM_MAX_HTTP_TRIALS" envDefault:"10000"`
}

// loadConfig loads .env if present and parses the environment.
func loadConfig() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// setupLogging configures the global zerolog logger.
func setupLogging(cfg Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if strings.EqualFold(cfg.LogFormat, "console") {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
