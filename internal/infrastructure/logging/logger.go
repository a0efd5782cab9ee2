package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/studytrack/internal/infrastructure/config"
)

// NewLogger builds a configured logrus logger from application config.
func NewLogger(cfg *config.Config) (*logrus.Logger, error) {
	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	logger.SetLevel(level)
	if cfg.Log.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger, nil
}

// WithOutput redirects the logger, used by the CLI to keep stdout for command output.
func WithOutput(logger *logrus.Logger, w io.Writer) *logrus.Logger {
	logger.SetOutput(w)
	return logger
}
