package config

import (
	"log/slog"
	"os"
	"strings"
)

// Output selects how fnrcheck prints results.
type Output string

const (
	OutputText Output = "text"
	OutputJSON Output = "json"
)

// CLI captures fnrcheck configuration.
type CLI struct {
	LogLevel slog.Level
	Output   Output
}

// FromEnv builds a CLI config from environment variables so main stays lean.
// Unknown values fall back to the defaults (info, text).
func FromEnv() CLI {
	return fromLookup(os.Getenv)
}

func fromLookup(getenv func(string) string) CLI {
	cfg := CLI{
		LogLevel: slog.LevelInfo,
		Output:   OutputText,
	}

	var level slog.Level
	if raw := getenv("FNRCHECK_LOG_LEVEL"); raw != "" {
		if err := level.UnmarshalText([]byte(raw)); err == nil {
			cfg.LogLevel = level
		}
	}

	if Output(strings.ToLower(getenv("FNRCHECK_OUTPUT"))) == OutputJSON {
		cfg.Output = OutputJSON
	}

	return cfg
}
