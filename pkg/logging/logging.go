// Package logging builds the zap loggers used by the CLI and the server.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger for the given level. Debug uses the development
// console encoder; every other level uses the production JSON config.
func New(level string) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)

	if level == "debug" {
		z := zap.NewDevelopmentConfig()
		z.OutputPaths = []string{"stderr"}
		logger, err = z.Build()
	} else {
		lvl, perr := zapcore.ParseLevel(level)
		if perr != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, perr)
		}
		z := zap.NewProductionConfig()
		z.Level = zap.NewAtomicLevelAt(lvl)
		logger, err = z.Build()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return logger, nil
}

// Init builds a logger and installs it as the zap global logger
func Init(level string) (*zap.Logger, error) {
	logger, err := New(level)
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}
