package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewZapLogger creates a JSON logger writing to writer at the given level
func NewZapLogger(writer io.Writer, level Level) *ZapLogger {
	atom := zap.NewAtomicLevelAt(level.zapLevel())

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.MessageKey = "msg"
	encoderCfg.CallerKey = zapcore.OmitKey
	encoderCfg.StacktraceKey = zapcore.OmitKey
	encoderCfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderCfg.EncodeDuration = zapcore.StringDurationEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(writer)),
		atom,
	)

	return &ZapLogger{
		logger: zap.New(core),
		level:  atom,
	}
}

// NewDefaultLogger creates a logger that writes to stdout at INFO level
func NewDefaultLogger() *ZapLogger {
	return NewZapLogger(os.Stdout, InfoLevel)
}

// Zap exposes the underlying zap logger.
func (l *ZapLogger) Zap() *zap.Logger {
	return l.logger
}

// Sync flushes buffered output.
func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}

func toZap(fields []Field) []zap.Field {
	out := make([]zap.Field, len(fields))
	for i, f := range fields {
		out[i] = zap.Any(f.Key, f.Value)
	}
	return out
}

// Debug logs a debug-level message
func (l *ZapLogger) Debug(msg string, fields ...Field) {
	l.logger.Debug(msg, toZap(fields)...)
}

// Info logs an info-level message
func (l *ZapLogger) Info(msg string, fields ...Field) {
	l.logger.Info(msg, toZap(fields)...)
}

// Warn logs a warning-level message
func (l *ZapLogger) Warn(msg string, fields ...Field) {
	l.logger.Warn(msg, toZap(fields)...)
}

// Error logs an error-level message
func (l *ZapLogger) Error(msg string, fields ...Field) {
	l.logger.Error(msg, toZap(fields)...)
}

// With creates a child logger with the given fields pre-set
func (l *ZapLogger) With(fields ...Field) Logger {
	return &ZapLogger{
		logger: l.logger.With(toZap(fields)...),
		level:  l.level,
	}
}

// SetLevel sets the minimum log level
func (l *ZapLogger) SetLevel(level Level) {
	l.level.SetLevel(level.zapLevel())
}

// GetLevel returns the current log level
func (l *ZapLogger) GetLevel() Level {
	return fromZapLevel(l.level.Level())
}

// Global default logger
var (
	defaultLogger Logger
	defaultMu     sync.RWMutex
	once          sync.Once
)

// DefaultLogger returns the global default logger
func DefaultLogger() Logger {
	once.Do(func() {
		level := InfoLevel
		if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
			level = ParseLevel(levelStr)
		}
		defaultMu.Lock()
		if defaultLogger == nil {
			defaultLogger = NewZapLogger(os.Stdout, level)
		}
		defaultMu.Unlock()
	})
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefaultLogger sets the global default logger
func SetDefaultLogger(logger Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}

// OrDefault returns logger, or the default logger when logger is nil.
func OrDefault(logger Logger) Logger {
	if logger == nil {
		return DefaultLogger()
	}
	return logger
}

// Helper functions that use the default logger

// Debug logs a debug-level message using the default logger
func Debug(msg string, fields ...Field) {
	DefaultLogger().Debug(msg, fields...)
}

// Info logs an info-level message using the default logger
func Info(msg string, fields ...Field) {
	DefaultLogger().Info(msg, fields...)
}

// Warn logs a warning-level message using the default logger
func Warn(msg string, fields ...Field) {
	DefaultLogger().Warn(msg, fields...)
}

// ErrorLog logs an error-level message using the default logger
// Named ErrorLog to avoid conflict with Error field constructor
func ErrorLog(msg string, fields ...Field) {
	DefaultLogger().Error(msg, fields...)
}

// With creates a child logger with the given fields pre-set using the default logger
func With(fields ...Field) Logger {
	return DefaultLogger().With(fields...)
}

// StartTimer begins timing an operation
func StartTimer(logger Logger, msg string, fields ...Field) *TimedOperation {
	return &TimedOperation{
		logger: logger,
		msg:    msg,
		start:  time.Now(),
		fields: fields,
	}
}

// Elapsed returns the time since the operation started.
func (t *TimedOperation) Elapsed() time.Duration {
	return time.Since(t.start)
}

// End logs the operation with its duration
func (t *TimedOperation) End(fields ...Field) time.Duration {
	elapsed := time.Since(t.start)
	t.logger.Info(t.msg, t.with(elapsed, fields)...)
	return elapsed
}

// EndWithLevel logs the operation at the specified level with its duration
func (t *TimedOperation) EndWithLevel(level Level, msg string) time.Duration {
	elapsed := time.Since(t.start)
	fields := t.with(elapsed, nil)
	switch level {
	case DebugLevel:
		t.logger.Debug(msg, fields...)
	case InfoLevel:
		t.logger.Info(msg, fields...)
	case WarnLevel:
		t.logger.Warn(msg, fields...)
	case ErrorLevel:
		t.logger.Error(msg, fields...)
	}
	return elapsed
}

// EndError logs the operation as an error with its duration
func (t *TimedOperation) EndError(err error) time.Duration {
	elapsed := time.Since(t.start)
	t.logger.Error(t.msg, t.with(elapsed, []Field{Error(err)})...)
	return elapsed
}

func (t *TimedOperation) with(elapsed time.Duration, extra []Field) []Field {
	fields := make([]Field, 0, len(t.fields)+len(extra)+1)
	fields = append(fields, t.fields...)
	fields = append(fields, extra...)
	return append(fields, Latency(elapsed))
}
