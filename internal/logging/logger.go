package logging

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "RAINBAR_LOG_LEVEL"

// Initialize creates a new logger with the specified level.
// If level is empty, it checks RAINBAR_LOG_LEVEL environment variable.
// If neither is set, console logging is disabled but the error record is still
// written when errorFile is non-empty.
func Initialize(level string, errorFile string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}

	var cores []zapcore.Core

	if level != "" {
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.Lock(os.Stdout),
			parseLevel(level),
		))
	}

	if errorFile != "" {
		sink, _, err := zap.Open(errorFile)
		if err != nil {
			return fmt.Errorf("failed to open error record %s: %w", errorFile, err)
		}
		recordConfig := zap.NewProductionEncoderConfig()
		recordConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(recordConfig),
			sink,
			zapcore.ErrorLevel,
		))
	}

	if len(cores) == 0 {
		logger = zap.NewNop()
		return nil
	}

	logger = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
	return nil
}

// InitializeFromEnv initializes the logger from the RAINBAR_LOG_LEVEL
// environment variable only. Used by the one-shot CLI commands.
func InitializeFromEnv() error {
	return Initialize("", "")
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		// Unknown level - use info as default when explicitly set to something
		return zapcore.InfoLevel
	}
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}

// SetLogger replaces the global logger. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	logger = l
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// Fatal logs a fatal message and exits
func Fatal(msg string, fields ...zap.Field) {
	GetLogger().Fatal(msg, fields...)
}

// LogCycle logs the start of a scheduled display cycle
func LogCycle(hour, day int, provider string) {
	Info("Display cycle",
		zap.Int("hour", hour),
		zap.Int("day", day),
		zap.String("provider", provider),
	)
}

// LogNetworkState logs a network lifecycle transition
func LogNetworkState(from, to string) {
	Info("Network state changed",
		zap.String("from", from),
		zap.String("to", to),
	)
}

// LogRetry logs a failed attempt of a retryable operation
func LogRetry(op string, attempt, maxAttempts int, delay time.Duration, err error) {
	Warn("Attempt failed",
		zap.String("op", op),
		zap.Int("attempt", attempt),
		zap.Int("max_attempts", maxAttempts),
		zap.Duration("next_delay", delay),
		zap.Error(err),
	)
}

// LogSleep logs a blocking sleep of the control loop
func LogSleep(reason string, d time.Duration) {
	Info("Sleeping",
		zap.String("reason", reason),
		zap.Duration("duration", d),
		zap.Int("minutes", int(d.Round(time.Minute)/time.Minute)),
	)
}

// LogPixel logs how one window slot was mapped to a pixel
func LogPixel(strip string, slot, pixel, hour int, value string, r, g, b uint8) {
	Debug("Pixel set",
		zap.String("strip", strip),
		zap.Int("slot", slot),
		zap.Int("pixel", pixel),
		zap.Int("hour", hour),
		zap.String("value", value),
		zap.String("rgb", fmt.Sprintf("%d,%d,%d", r, g, b)),
	)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
