// Package logger provides structured logging utilities.
// It wraps the zap logger with a simplified key/value interface, writing
// JSON event streams to stdout.
package logger

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// contextKey is a custom type for context keys.
type contextKey string

const (
	// RequestIDKey is the context key for the request ID.
	RequestIDKey contextKey = "request_id"

	// SellerIDKey is the context key for the authenticated seller ID.
	SellerIDKey contextKey = "seller_id"
)

// Logger is the application logger.
type Logger struct {
	zap    *zap.Logger
	sugar  *zap.SugaredLogger
	fields []interface{}
}

// Config contains logger configuration.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string

	// Format is the output format (json, console).
	Format string

	// Development enables development mode (more verbose).
	Development bool
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:       "info",
		Format:      "json",
		Development: false,
	}
}

func newLogger(cfg Config) (*Logger, error) {
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if cfg.Format == "console" {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(
		encoder,
		zapcore.AddSync(os.Stdout),
		level,
	)

	opts := []zap.Option{
		zap.AddCaller(),
		zap.AddCallerSkip(1),
	}
	if cfg.Development {
		opts = append(opts, zap.Development())
	}

	zapLogger := zap.New(core, opts...)

	return &Logger{
		zap:   zapLogger,
		sugar: zapLogger.Sugar(),
	}, nil
}

// MustNew creates a new Logger and panics on error.
func MustNew(cfg Config) *Logger {
	l, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	return l
}

// Debug logs a debug message with optional key-value pairs.
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, append(l.fields, keysAndValues...)...)
}

// Info logs an info message with optional key-value pairs.
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Infow(msg, append(l.fields, keysAndValues...)...)
}

// Warn logs a warning message with optional key-value pairs.
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.sugar.Warnw(msg, append(l.fields, keysAndValues...)...)
}

// Error logs an error message with optional key-value pairs.
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, append(l.fields, keysAndValues...)...)
}

// Fatal logs a fatal message and exits the program.
func (l *Logger) Fatal(msg string, keysAndValues ...interface{}) {
	l.sugar.Fatalw(msg, append(l.fields, keysAndValues...)...)
}

// With returns a logger with additional context fields included in all
// subsequent log entries.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{
		zap:    l.zap,
		sugar:  l.sugar,
		fields: append(l.fields, keysAndValues...),
	}
}

// WithContext returns a logger carrying the request ID and seller ID stored
// in ctx, when present.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	fields := make([]interface{}, 0, len(l.fields)+4)
	fields = append(fields, l.fields...)

	if requestID := ctx.Value(RequestIDKey); requestID != nil {
		fields = append(fields, "request_id", requestID)
	}
	if sellerID := ctx.Value(SellerIDKey); sellerID != nil {
		fields = append(fields, "seller_id", sellerID)
	}

	return &Logger{
		zap:    l.zap,
		sugar:  l.sugar,
		fields: fields,
	}
}

// Named returns a named logger.
func (l *Logger) Named(name string) *Logger {
	return &Logger{
		zap:    l.zap.Named(name),
		sugar:  l.zap.Named(name).Sugar(),
		fields: l.fields,
	}
}

// Sync flushes any buffered log entries. Call before exit.
func (l *Logger) Sync() error {
	return l.zap.Sync()
}

// ZapLogger returns the underlying zap.Logger instance.
func (l *Logger) ZapLogger() *zap.Logger {
	return l.zap
}

// NewNop returns a logger that discards everything. For tests.
func NewNop() *Logger {
	z := zap.NewNop()
	return &Logger{zap: z, sugar: z.Sugar()}
}
