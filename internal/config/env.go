// Package config provides shared configuration utilities.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvInt parses the variable as a base-10 integer. Unset or malformed
// values yield fallback; malformed ones are logged.
func GetEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Warn("ignoring malformed integer", "key", key, "value", value, "err", err)
		return fallback
	}
	return n
}

// GetEnvFloat parses the variable as a float64.
func GetEnvFloat(key string, fallback float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Warn("ignoring malformed float", "key", key, "value", value, "err", err)
		return fallback
	}
	return f
}

// GetEnvDuration parses the variable with time.ParseDuration ("100ms", "2s").
func GetEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Warn("ignoring malformed duration", "key", key, "value", value, "err", err)
		return fallback
	}
	return d
}

// GetEnvBool parses the variable with strconv.ParseBool.
func GetEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Warn("ignoring malformed bool", "key", key, "value", value, "err", err)
		return fallback
	}
	return b
}

// LogLevel returns the level named by LOG_LEVEL, defaulting to info.
func LogLevel() log.Level {
	level, err := log.ParseLevel(GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// NewLogger builds the process logger used by every command.
func NewLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          prefix,
		Level:           LogLevel(),
	})
	log.SetDefault(logger)
	return logger
}
