// Package config loads the engine configuration from the environment.
//
// A .env file is honored when present (development convenience); real
// environments set the variables directly.
package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	envPostgresDSN    = "CIRCULATION_POSTGRES_DSN"
	envQueuePath      = "CIRCULATION_QUEUE_PATH"
	envLoanPeriodDays = "CIRCULATION_LOAN_PERIOD_DAYS"
	envMaxRenewals    = "CIRCULATION_MAX_RENEWALS"

	defaultQueuePath      = "data/write_queue.db"
	defaultLoanPeriodDays = 14
	defaultMaxRenewals    = 2
)

// ErrInvalidConfig wraps validation failures of the loaded configuration.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the process configuration of the engine.
//
// LoanPeriodDays and MaxRenewals are fallbacks only; the authoritative
// settings record lives in the remote store.
type Config struct {
	PostgresDSN    string `validate:"required"`
	QueuePath      string `validate:"required"`
	LoanPeriodDays int    `validate:"min=1"`
	MaxRenewals    int    `validate:"min=0"`
}

var configValidator = validator.New(validator.WithRequiredStructEnabled())

// Load reads the configuration from the environment, honoring a .env file.
func Load() (Config, error) {
	_ = godotenv.Load() // missing .env is fine

	cfg := Config{
		PostgresDSN:    os.Getenv(envPostgresDSN),
		QueuePath:      getenv(envQueuePath, defaultQueuePath),
		LoanPeriodDays: getenvInt(envLoanPeriodDays, defaultLoanPeriodDays),
		MaxRenewals:    getenvInt(envMaxRenewals, defaultMaxRenewals),
	}

	if err := configValidator.Struct(cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}

	return cfg, nil
}

func getenv(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}

	return parsed
}
