// Package logging builds the logrus loggers used across wealthview.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing to stderr at the given level. JSON output is
// used by the HTTP service; interactive commands use the text formatter.
// An empty or unknown level falls back to fallback.
func New(level string, fallback logrus.Level, json bool) *logrus.Logger {
	return NewWithWriter(os.Stderr, level, fallback, json)
}

// NewWithWriter is New with an explicit output.
func NewWithWriter(w io.Writer, level string, fallback logrus.Level, json bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	if json {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
		})
	}

	logLevel, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		logLevel = fallback
	}
	logger.SetLevel(logLevel)
	return logger
}

// Discard returns a logger that drops everything, for tests.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
