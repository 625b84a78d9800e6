// Package logging builds the root zap logger and keeps credential-bearing
// values out of log output.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New constructs the root logger for the given environment. "local" and
// "development" get the human-readable development encoder at debug level;
// anything else gets production JSON output.
func New(env string) (*zap.Logger, error) {
	var cfg zap.Config
	switch env {
	case "local", "development":
		cfg = zap.NewDevelopmentConfig()
	default:
		cfg = zap.NewProductionConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
