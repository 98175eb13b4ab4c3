// Package logging builds the zap logger shared by every component.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config is the part of store.Config the logger needs.
type Config interface {
	LogLevel() string
	Development() bool
}

// New returns a development (console) or production (JSON) logger at the
// configured level. Logs go to stderr so command output stays clean.
func New(cfg Config) (*zap.Logger, error) {
	if cfg == nil {
		return zap.NewNop(), nil
	}

	level := zapcore.WarnLevel
	if s := cfg.LogLevel(); s != "" {
		parsed, err := zapcore.ParseLevel(s)
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		level = parsed
	}

	var zc zap.Config
	if cfg.Development() {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return logger, nil
}
