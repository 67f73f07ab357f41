//
//  Copyright © Courseflow Inc. All rights reserved.
//

// Package logging provides module-scoped structured loggers for the access
// engine, built on zap.
//
// Loggers are obtained per module via [GetLogger] and share a central level
// registry so that log verbosity can be tuned per module at runtime with
// [UpdateLogLevels].
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a module-scoped wrapper around zap.SugaredLogger.
type Logger struct {
	module string
	sugar  *zap.SugaredLogger
	level  zapcore.Level
	writer io.Writer
}

const moduleKey = "module"

func buildEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder

	if os.Getenv("LOG_FORMATTER") == "text" {
		return zapcore.NewConsoleEncoder(encoderConfig)
	}
	return zapcore.NewJSONEncoder(encoderConfig)
}

func (l *Logger) rebuild() {
	var output io.Writer = os.Stdout
	if l.writer != nil {
		output = l.writer
	}

	core := zapcore.NewCore(buildEncoder(), zapcore.AddSync(output), l.level)

	options := []zap.Option{zap.AddCallerSkip(1)}
	if os.Getenv("LOG_REPORT_CALLER") != "" {
		options = append(options, zap.AddCaller())
	}

	l.sugar = zap.New(core, options...).Sugar().With(zap.String(moduleKey, l.module))
}

func newLogger(module string) *Logger {
	l := &Logger{
		module: module,
		level:  zapcore.InfoLevel,
	}
	l.rebuild()
	return l
}

// SetLevel sets the logging level for this logger.
func (l *Logger) SetLevel(level zapcore.Level) {
	l.level = level
	l.rebuild()
}

// SetOut redirects log output to the given writer (intended for tests).
func (l *Logger) SetOut(w io.Writer) {
	l.writer = w
	l.rebuild()
}

// Out returns the current output writer.
func (l *Logger) Out() io.Writer {
	if l.writer != nil {
		return l.writer
	}
	return os.Stdout
}

// IsDebugEnabled returns true if debug logging is active.  Use as a guard
// where computing the log payload is expensive.
func (l *Logger) IsDebugEnabled() bool {
	return l.level <= zapcore.DebugLevel
}

// Debug logs a debug message.
func (l *Logger) Debug(args ...interface{}) { l.sugar.Debug(args...) }

// Debugf logs a formatted debug message.
func (l *Logger) Debugf(format string, args ...interface{}) { l.sugar.Debugf(format, args...) }

// Info logs an info message.
func (l *Logger) Info(args ...interface{}) { l.sugar.Info(args...) }

// Infof logs a formatted info message.
func (l *Logger) Infof(format string, args ...interface{}) { l.sugar.Infof(format, args...) }

// Warn logs a warning message.
func (l *Logger) Warn(args ...interface{}) { l.sugar.Warn(args...) }

// Warnf logs a formatted warning message.
func (l *Logger) Warnf(format string, args ...interface{}) { l.sugar.Warnf(format, args...) }

// Error logs an error message.
func (l *Logger) Error(args ...interface{}) { l.sugar.Error(args...) }

// Errorf logs a formatted error message.
func (l *Logger) Errorf(format string, args ...interface{}) { l.sugar.Errorf(format, args...) }

// Fatal logs a fatal message and exits.
func (l *Logger) Fatal(args ...interface{}) { l.sugar.Fatal(args...) }

// Fatalf logs a formatted fatal message and exits.
func (l *Logger) Fatalf(format string, args ...interface{}) { l.sugar.Fatalf(format, args...) }
