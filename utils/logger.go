package utils

import (
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

// init configures the global logger once at import: JSON lines on
// stdout, level from the LOG_LEVEL environment variable.
func init() {
	log.SetFormatter(&log.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(parseLevel(os.Getenv("LOG_LEVEL")))
}

// parseLevel maps a LOG_LEVEL value onto a logrus level, defaulting to
// info for empty or unrecognized input.
func parseLevel(s string) log.Level {
	if s == "" {
		return log.InfoLevel
	}
	level, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Info logs a message at info level with optional fields
func Info(message string, fields map[string]any) {
	log.WithFields(fields).Info(message)
}

// Warn logs a message at warning level with optional fields
func Warn(message string, fields map[string]any) {
	log.WithFields(fields).Warn(message)
}

// Error logs a message at error level with optional fields
func Error(message string, fields map[string]any) {
	log.WithFields(fields).Error(message)
}

// Fatal logs a message at fatal level and exits the application
func Fatal(message string, fields map[string]any) {
	log.WithFields(fields).Fatal(message)
}
