package common

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Log is the global logger instance
var Log *slog.Logger

func init() {
	Log = newLogger(levelFromEnv())
	slog.SetDefault(Log)
}

func newLogger(level slog.Level) *slog.Logger {
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !colorEnabled(),
	})
	return slog.New(handler)
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(GetEnv("LOG_LEVEL", "info")) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// colorEnabled checks if we're running in a terminal that supports colors
func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("CI") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(os.Stderr.Fd())
}

// SetLogLevel replaces the global logger with one at the given level.
func SetLogLevel(level slog.Level) {
	Log = newLogger(level)
	slog.SetDefault(Log)
}

// Convenience functions that support both printf-style and structured logging
func Debug(msg string, args ...any) {
	if len(args) > 0 && containsFormatVerbs(msg) {
		Log.Debug(fmt.Sprintf(msg, args...))
	} else {
		Log.Debug(msg, args...)
	}
}

func Info(msg string, args ...any) {
	if len(args) > 0 && containsFormatVerbs(msg) {
		Log.Info(fmt.Sprintf(msg, args...))
	} else {
		Log.Info(msg, args...)
	}
}

func Warning(msg string, args ...any) {
	if len(args) > 0 && containsFormatVerbs(msg) {
		Log.Warn(fmt.Sprintf(msg, args...))
	} else {
		Log.Warn(msg, args...)
	}
}

func LogError(msg string, args ...any) {
	if len(args) > 0 && containsFormatVerbs(msg) {
		Log.Error(fmt.Sprintf(msg, args...))
	} else {
		Log.Error(msg, args...)
	}
}

// Special purpose logging functions
func Startup(msg string, args ...any) {
	if len(args) > 0 && containsFormatVerbs(msg) {
		Log.Info(fmt.Sprintf(msg, args...), "log_type", "STARTUP")
	} else {
		newArgs := append(args, "log_type", "STARTUP")
		Log.Info(msg, newArgs...)
	}
}

func Success(msg string, args ...any) {
	if len(args) > 0 && containsFormatVerbs(msg) {
		Log.Info(fmt.Sprintf(msg, args...), "log_type", "SUCCESS")
	} else {
		newArgs := append(args, "log_type", "SUCCESS")
		Log.Info(msg, newArgs...)
	}
}

func Config(msg string, args ...any) {
	if len(args) > 0 && containsFormatVerbs(msg) {
		Log.Info(fmt.Sprintf(msg, args...), "log_type", "CONFIG")
	} else {
		newArgs := append(args, "log_type", "CONFIG")
		Log.Info(msg, newArgs...)
	}
}

// Fatal logs an error and exits
func Fatal(msg string, args ...any) {
	if len(args) > 0 && containsFormatVerbs(msg) {
		Log.Error(fmt.Sprintf(msg, args...), "log_type", "FATAL")
	} else {
		newArgs := append(args, "log_type", "FATAL")
		Log.Error(msg, newArgs...)
	}
	os.Exit(1)
}

// containsFormatVerbs detects printf-style format verbs in a message
func containsFormatVerbs(s string) bool {
	return strings.Contains(s, "%s") || strings.Contains(s, "%d") ||
		strings.Contains(s, "%v") || strings.Contains(s, "%f") ||
		strings.Contains(s, "%t") || strings.Contains(s, "%x") ||
		strings.Contains(s, "%q") || strings.Contains(s, "%%")
}
