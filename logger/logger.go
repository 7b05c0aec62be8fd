package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// Initialize builds the global zap logger at the configured level.
func Initialize(logLevel string) error {
	if logLevel == "" {
		logLevel = "info"
	}

	level, err := zap.ParseAtomicLevel(logLevel)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", logLevel, err)
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = level

	log, err := zapConfig.Build()
	if err != nil {
		return fmt.Errorf("build zap logger: %w", err)
	}

	zap.ReplaceGlobals(log)

	return nil
}

func Sync() {
	_ = zap.L().Sync()
}
