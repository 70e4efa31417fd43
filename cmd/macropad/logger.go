package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dikkadev/prettyslog"
)

// LogLevel represents the available logging levels
type LogLevel string

const (
	LogLevelError LogLevel = "error"
	LogLevelWarn  LogLevel = "warn"
	LogLevelInfo  LogLevel = "info"
	LogLevelDebug LogLevel = "debug"
)

// LogFormat selects the slog handler.
type LogFormat string

const (
	LogFormatText   LogFormat = "text"
	LogFormatPretty LogFormat = "pretty"
)

// parseLogLevel converts a string to a LogLevel
func parseLogLevel(level string) (LogLevel, error) {
	switch strings.ToLower(level) {
	case "error":
		return LogLevelError, nil
	case "warn", "warning":
		return LogLevelWarn, nil
	case "info":
		return LogLevelInfo, nil
	case "debug":
		return LogLevelDebug, nil
	default:
		return "", fmt.Errorf("invalid log level: %s (must be error, warn, info, or debug)", level)
	}
}

// parseLogFormat converts a string to a LogFormat
func parseLogFormat(format string) (LogFormat, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return LogFormatText, nil
	case "pretty":
		return LogFormatPretty, nil
	default:
		return "", fmt.Errorf("invalid log format: %s (must be text or pretty)", format)
	}
}

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LogLevelError:
		return slog.LevelError
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelDebug:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// setupLogger creates and configures a slog logger based on log level and format
func setupLogger(level LogLevel, format LogFormat) *slog.Logger {
	if format == LogFormatPretty {
		return slog.New(prettyslog.NewPrettyslogHandler("pad",
			prettyslog.WithLevel(level.slogLevel()),
		))
	}

	opts := &slog.HandlerOptions{
		Level: level.slogLevel(),
	}

	handler := slog.NewTextHandler(os.Stdout, opts)
	return slog.New(handler)
}
