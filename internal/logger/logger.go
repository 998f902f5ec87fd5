// Package logger builds the logrus logger shared by the CLI and the scenario suite.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/testathon/storefront-e2e/internal/config"
)

// New creates a logrus logger from configuration. Unknown levels fall back to info.
func New(cfg config.LogConfig) *logrus.Logger {
	return NewWithOutput(cfg, os.Stderr)
}

// NewWithOutput is New with an explicit writer.
func NewWithOutput(cfg config.LogConfig, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)

	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// OrDiscard returns log, or a discarding logger when log is nil.
func OrDiscard(log logrus.FieldLogger) logrus.FieldLogger {
	if log == nil {
		return Discard()
	}
	return log
}
