package internal

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type logger struct {
	name string
	*zap.SugaredLogger
}

var (
	Logger     *logger
	loggerOnce sync.Once
	loggerMu   sync.Mutex
)

// GetLogger returns the process wide logger, building a development logger
// on first use if ConfigureLogger was never called.
func GetLogger() *logger {
	loggerOnce.Do(func() {
		loggerMu.Lock()
		defer loggerMu.Unlock()
		if Logger == nil {
			Logger = initLogger("draftboard", zapcore.DebugLevel, true)
		}
	})
	return Logger
}

// ConfigureLogger replaces the shared logger. level is any zap level name
// ("debug", "info", "warn", "error").
func ConfigureLogger(level string, development bool) error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	loggerOnce.Do(func() {})
	loggerMu.Lock()
	defer loggerMu.Unlock()
	Logger = initLogger("draftboard", lvl, development)
	return nil
}

func initLogger(name string, level zapcore.Level, development bool) *logger {
	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	base, err := cfg.Build()
	if err != nil {
		base = zap.NewNop()
	}
	return &logger{
		name:          name,
		SugaredLogger: base.Named(name).Sugar(),
	}
}
