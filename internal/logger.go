package internal

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// LogLevel represents the logging level
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

var (
	logLevel = LogLevelInfo
	logger   = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "chat-composer",
		Level:           log.DebugLevel,
	})
)

// ParseLogLevel maps a config string to a LogLevel, defaulting to info
func ParseLogLevel(s string) LogLevel {
	switch s {
	case "error":
		return LogLevelError
	case "warn", "warning":
		return LogLevelWarn
	case "debug":
		return LogLevelDebug
	default:
		return LogLevelInfo
	}
}

// SetLogLevel sets the global log level
func SetLogLevel(level LogLevel) {
	logLevel = level
}

// SetVerbose enables verbose (debug) logging
func SetVerbose(verbose bool) {
	if verbose {
		SetLogLevel(LogLevelDebug)
	} else {
		SetLogLevel(LogLevelInfo)
	}
}

// SetLogOutput redirects log output, e.g. away from the terminal while the TUI runs
func SetLogOutput(w io.Writer) {
	logger.SetOutput(w)
}

func logError(format string, args ...interface{}) {
	if logLevel >= LogLevelError {
		logger.Error(fmt.Sprintf(format, args...))
	}
}

func logWarn(format string, args ...interface{}) {
	if logLevel >= LogLevelWarn {
		logger.Warn(fmt.Sprintf(format, args...))
	}
}

func logInfo(format string, args ...interface{}) {
	if logLevel >= LogLevelInfo {
		logger.Info(fmt.Sprintf(format, args...))
	}
}

func logDebug(format string, args ...interface{}) {
	if logLevel >= LogLevelDebug {
		logger.Debug(fmt.Sprintf(format, args...))
	}
}

// LogError logs an error message
func LogError(format string, args ...interface{}) {
	logError(format, args...)
}

// LogWarn logs a warning message
func LogWarn(format string, args ...interface{}) {
	logWarn(format, args...)
}

// LogInfo logs an info message
func LogInfo(format string, args ...interface{}) {
	logInfo(format, args...)
}

// LogDebug logs a debug message
func LogDebug(format string, args ...interface{}) {
	logDebug(format, args...)
}

// LogDebugKV logs msg with structured key/value pairs at debug level
func LogDebugKV(msg string, keyvals ...interface{}) {
	if logLevel >= LogLevelDebug {
		logger.Debug(msg, keyvals...)
	}
}

// LogWarnKV logs msg with structured key/value pairs at warn level
func LogWarnKV(msg string, keyvals ...interface{}) {
	if logLevel >= LogLevelWarn {
		logger.Warn(msg, keyvals...)
	}
}
