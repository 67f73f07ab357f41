//
//  Copyright © Courseflow Inc. All rights reserved.
//

package logging

import (
	"strings"
	"sync"

	"go.uber.org/zap/zapcore"
)

type logManager struct {
	loggers  map[string]*Logger
	defLevel zapcore.Level
}

var (
	manager *logManager
	mu      sync.RWMutex
	once    sync.Once
)

func initManager() {
	manager = &logManager{
		loggers:  make(map[string]*Logger),
		defLevel: zapcore.InfoLevel,
	}
}

// resetForTesting resets the manager state - only for testing
func resetForTesting() {
	mu.Lock()
	defer mu.Unlock()
	manager = nil
	once = sync.Once{}
}

// GetLogger returns the logger for the specified module, creating it with
// the manager's default level on first use.
func GetLogger(module string) *Logger {
	once.Do(initManager)

	mu.RLock()
	if l := manager.loggers[module]; l != nil {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()

	// Double-check after acquiring write lock
	if l := manager.loggers[module]; l != nil {
		return l
	}

	l := newLogger(module)
	l.SetLevel(manager.defLevel)
	manager.loggers[module] = l

	return l
}

func parseLevel(levelStr string) zapcore.Level {
	switch strings.ToLower(levelStr) {
	case "panic":
		return zapcore.PanicLevel
	case "fatal":
		return zapcore.FatalLevel
	case "error":
		return zapcore.ErrorLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "debug", "trace":
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}

// UpdateLogLevels updates log levels from a directive string of the form
// "mod1:debug;mod2:error;.:info".  The "." entry sets the default level for
// modules without an explicit entry.  Whitespace is permitted for
// readability.
func UpdateLogLevels(directives string) error {
	once.Do(initManager)

	for _, s := range []string{" ", "\t", "\n"} {
		directives = strings.ReplaceAll(directives, s, "")
	}

	mu.Lock()
	defer mu.Unlock()

	explicit := make(map[string]bool)
	var defaultLevel zapcore.Level
	hasDefault := false

	for _, directive := range strings.Split(directives, ";") {
		parts := strings.Split(directive, ":")
		if len(parts) != 2 {
			continue
		}

		module, level := parts[0], parseLevel(parts[1])

		if module == "." {
			defaultLevel = level
			hasDefault = true
			continue
		}

		explicit[module] = true
		l := manager.loggers[module]
		if l == nil {
			l = newLogger(module)
			manager.loggers[module] = l
		}
		l.SetLevel(level)
	}

	if hasDefault {
		manager.defLevel = defaultLevel
		for mod, l := range manager.loggers {
			if !explicit[mod] {
				l.SetLevel(defaultLevel)
			}
		}
	}

	return nil
}
