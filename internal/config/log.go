package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// LogConfig represents the [log] section
type LogConfig struct {
	// Level is a logrus level name.
	Level string `toml:"level" mapstructure:"level"`
	// Format is text or json.
	Format string `toml:"format" mapstructure:"format"`
	// File receives log output instead of stderr when set.
	File string `toml:"file" mapstructure:"file"`
}

// Validate performs validation on the log configuration
func (l *LogConfig) Validate() error {
	if _, err := logrus.ParseLevel(l.Level); err != nil {
		return err
	}
	switch strings.ToLower(l.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (valid options: text, json)", l.Format)
	}
	return nil
}

// Configure applies the section to logger. The returned file, if any, must
// be closed by the caller.
func (l *LogConfig) Configure(logger *logrus.Logger) (*os.File, error) {
	level, err := logrus.ParseLevel(l.Level)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(level)

	if strings.EqualFold(l.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if l.File == "" {
		logger.SetOutput(os.Stderr)
		return nil, nil
	}
	f, err := os.OpenFile(l.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger.SetOutput(f)
	return f, nil
}
