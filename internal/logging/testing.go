// pattern: Imperative Shell

package logging

import (
	"io"
	"log/slog"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NopLogger returns a logger that discards all output.
// Use in tests or when logging is not configured.
func NopLogger() *ScopedLogger {
	return &ScopedLogger{
		slog:  nil, // nil slog means all logging is no-op
		zap:   nil,
		scope: "",
	}
}

// TestManager provides a LoggerProvider suitable for tests.
// It writes JSON entries to the supplied writer (no file, no rotation).
type TestManager struct {
	baseZap *zap.Logger
	loggers map[string]*ScopedLogger
	mu      sync.RWMutex
}

// NewTestManager creates a log manager for testing that writes to w at
// debug level.
func NewTestManager(w io.Writer) *TestManager {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.EpochTimeEncoder
	encoderCfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(writerSyncer{w}),
		zapcore.DebugLevel,
	)

	return &TestManager{
		baseZap: zap.New(core),
		loggers: make(map[string]*ScopedLogger),
	}
}

// For returns a scoped logger for the given scope name.
// Named For() to match the production Manager API.
func (m *TestManager) For(scope string) *ScopedLogger {
	m.mu.RLock()
	if logger, ok := m.loggers[scope]; ok {
		m.mu.RUnlock()
		return logger
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if logger, ok := m.loggers[scope]; ok {
		return logger
	}

	zapLogger := m.baseZap.Named(scope)
	logger := &ScopedLogger{
		slog:  slog.New(&zapSlogHandler{zap: zapLogger, level: zapcore.DebugLevel}),
		zap:   zapLogger,
		scope: scope,
	}

	m.loggers[scope] = logger
	return logger
}

type writerSyncer struct {
	io.Writer
}

func (writerSyncer) Sync() error { return nil }
