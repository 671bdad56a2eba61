package logging

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// New builds the process-wide logrus logger. JSON output everywhere except
// development, where the text formatter is easier to read.
func New(logLevel, environment string) *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(ParseLevel(logLevel))

	if strings.ToLower(environment) == "development" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return logger
}

// ParseLevel converts a string level to a logrus.Level, defaulting to info.
func ParseLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
