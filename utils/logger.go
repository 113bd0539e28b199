package utils

import (
	"log"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"unityconsult/config"
)

var (
	logger   *zap.Logger
	initOnce sync.Once
)

// InitializeLogger builds the process-wide zap logger: JSON at info level in
// production, colored console output at debug otherwise. Safe to call more
// than once.
func InitializeLogger() {
	initOnce.Do(func() {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		if config.IsProduction() {
			cfg = zap.NewProductionConfig()
			cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
		}

		built, err := cfg.Build()
		if err != nil {
			log.Fatalf("cannot build logger: %v", err)
		}
		logger = built
		zap.ReplaceGlobals(logger)
	})
}

// GetLogger returns the shared logger, initializing it on first use.
func GetLogger() *zap.Logger {
	InitializeLogger()
	return logger
}
