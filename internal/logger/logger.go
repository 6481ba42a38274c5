// Package logger provides a thin package-level facade over zap for
// structured logging.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global sugared logger instance.
var Logger = newLogger()

func newLogger() *zap.SugaredLogger {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	if os.Getenv("CALIBRATE_DEBUG") != "" {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	log, err := config.Build()
	if err != nil {
		// Building the default production config cannot fail unless the
		// output paths are invalid; fall back to a no-op logger.
		return zap.NewNop().Sugar()
	}
	return log.Sugar()
}

// Error logs an error message with key-value pairs.
func Error(msg string, args ...any) {
	Logger.Errorw(msg, args...)
}

// Info logs an informational message with key-value pairs.
func Info(msg string, args ...any) {
	Logger.Infow(msg, args...)
}

// Warn logs a warning message with key-value pairs.
func Warn(msg string, args ...any) {
	Logger.Warnw(msg, args...)
}

// Debug logs a debug message with key-value pairs.
func Debug(msg string, args ...any) {
	Logger.Debugw(msg, args...)
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = Logger.Sync()
}
