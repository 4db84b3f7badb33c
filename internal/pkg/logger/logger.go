// Package logger provides the SDK's structured logging, backed by a Sugared
// Zap logger with optional OpenTelemetry integration.
//
// The package-level logger defaults to a no-op, so a host application that
// embeds the SDK without calling Init gets silence rather than a nil
// dereference. Init switches it to JSON logs on stdout at the configured
// level, adding an OTEL bridge core when a telemetry log provider has been
// registered.
package logger

import (
	"context"
	"os"
	"sync"

	"github.com/vireolabs/thorlink/internal/pkg/telemetry"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// mu guards logger swaps; log calls read it under RLock.
	mu sync.RWMutex

	// logger is the active SugaredLogger. No-op until Init.
	logger = zap.NewNop().Sugar()
)

// config holds configuration options for the logger.
type config struct {
	level string // minimum log level (debug, info, warn, error, panic, fatal)
}

// Option configures the logger before initialization.
type Option func(*config)

// WithLevel sets the minimum log level. Default: "info".
func WithLevel(l string) Option {
	return func(c *config) {
		c.level = l
	}
}

// Init configures the global logger: JSON to stdout at the configured level,
// plus an OTEL bridge core when telemetry.LoggerProvider() is non-nil.
// Returns an error if the level string cannot be parsed.
func Init(opts ...Option) error {
	cfg := config{level: "info"}
	for _, opt := range opts {
		opt(&cfg)
	}

	level, err := zapcore.ParseLevel(cfg.level)
	if err != nil {
		return err
	}

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(os.Stdout),
			level,
		),
	}

	if lp := telemetry.LoggerProvider(); lp != nil {
		cores = append(cores, otelzap.NewCore("thorlink", otelzap.WithLoggerProvider(lp)))
	}

	mu.Lock()
	logger = zap.New(zapcore.NewTee(cores...)).Sugar()
	mu.Unlock()

	return nil
}

// Sync flushes buffered log entries. Call on application shutdown.
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	return logger.Sync()
}

func active() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug logs a debug-level message with optional key/value context.
func Debug(ctx context.Context, msg string, keysAndValues ...any) {
	active().Debugw(msg, keysAndValues...)
}

// Info logs an info-level message with optional key/value context.
func Info(ctx context.Context, msg string, keysAndValues ...any) {
	active().Infow(msg, keysAndValues...)
}

// Warn logs a warn-level message with optional key/value context.
func Warn(ctx context.Context, msg string, keysAndValues ...any) {
	active().Warnw(msg, keysAndValues...)
}

// Error logs an error-level message with optional key/value context.
func Error(ctx context.Context, msg string, keysAndValues ...any) {
	active().Errorw(msg, keysAndValues...)
}
