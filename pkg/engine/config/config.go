//
//  Copyright © Courseflow Inc. All rights reserved.
//

// Package config provides configuration management for the access engine
// using [Viper] for flexible configuration sources.
//
// Configuration can be provided via:
//   - YAML configuration files
//   - Environment variables with the ACE_ prefix
//   - Programmatic defaults
//
// # Configuration File
//
// By default, the engine looks for ace-config.yaml in the current directory.
// Override the location using environment variables:
//
//	ACE_CONFIG_PATH=/etc/accessengine
//	ACE_CONFIG_FILENAME=production-config
//
// Example configuration file:
//
//	log:
//	  level: ".:info"
//	serve:
//	  port: 8080
//	validation:
//	  strict: false
//
// # Environment Variables
//
// All configuration keys can be set via environment variables with the ACE_
// prefix. Dots in key names become underscores:
//
//	ACE_LOG_LEVEL=.:debug
//	ACE_SERVE_PORT=9090
//	ACE_VALIDATION_STRICT=true
//
// # Configuration Keys
//
// Available configuration options:
//   - log.level: Log level configuration (default: ".:info")
//   - serve.port: Decision point server port (default: 8080)
//   - validation.strict: Treat validation warnings as errors (default: false)
//
// [Viper]: https://github.com/spf13/viper
package config

import (
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/courseflow/accessengine/internal/logging"
)

// Environment variable and default path constants for configuration loading.
const (
	// EnvVarPrefix is the prefix for all access engine environment variables.
	// For example, the key "log.level" becomes ACE_LOG_LEVEL.
	EnvVarPrefix string = "ACE"

	// ConfigPathEnv is the environment variable that specifies the directory
	// containing the configuration file.
	ConfigPathEnv string = "ACE_CONFIG_PATH"

	// ConfigFileNameEnv is the environment variable that specifies the
	// configuration file name (without extension).
	ConfigFileNameEnv string = "ACE_CONFIG_FILENAME"

	// ConfigDefaultPath is the default directory to search for config files.
	ConfigDefaultPath string = "."

	// ConfigDefaultFilename is the default configuration file name (without extension).
	ConfigDefaultFilename string = "ace-config"
)

// Configuration key constants for use with [VConfig].
const (
	logLevel string = "log.level"

	// ServePort is the TCP port the decision point server listens on.
	//
	// Default: 8080
	// Set via environment: ACE_SERVE_PORT=9090
	ServePort string = "serve.port"

	// StrictValidation promotes validation warnings to errors when
	// constructing engines, failing fast on unusual rule configurations.
	//
	// Default: false
	// Set via environment: ACE_VALIDATION_STRICT=true
	StrictValidation string = "validation.strict"
)

var (
	once     sync.Once
	loadOnce sync.Once
	loadErr  error

	// VConfig is the global Viper configuration instance for the access engine.
	//
	// Use the configuration key constants ([ServePort], [StrictValidation],
	// etc.) to access specific settings:
	//
	//	port := config.VConfig.GetInt(config.ServePort)
	//
	// VConfig is initialized automatically when [Load] or [Init] is called.
	VConfig *viper.Viper
	logger  = logging.GetLogger("accessengine.config")
)

// Init initializes the configuration system without loading config files.
//
// Init sets up Viper with configuration file paths, environment variable
// handling (ACE_ prefix), and default values for all configuration keys.
//
// This function is safe to call multiple times; subsequent calls are no-ops.
// Most applications don't need to call Init directly; it's called
// automatically by [Load].
func Init() {
	once.Do(func() {
		doInitialize()
	})
}

func getConfigPath() string {
	configPath, ok := os.LookupEnv(ConfigPathEnv)
	if ok {
		return configPath
	}

	return ConfigDefaultPath
}

func getConfigFileName() string {
	configName, ok := os.LookupEnv(ConfigFileNameEnv)
	if ok {
		return configName
	}

	return ConfigDefaultFilename
}

func doInitialize() {
	VConfig = viper.New()

	// set up config-file loading:  default is './ace-config.yaml' but can be overridden with $(ACE_CONFIG_PATH)/$(ACE_CONFIG_FILENAME).yaml
	VConfig.AddConfigPath(getConfigPath())
	VConfig.SetConfigName(getConfigFileName())
	VConfig.SetConfigType("yaml")

	// set up envvar handling:  keys such as 'log.level' become 'ACE_LOG_LEVEL'
	VConfig.SetEnvPrefix(EnvVarPrefix)
	VConfig.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	VConfig.AutomaticEnv()

	// set up VConfig defaults
	VConfig.SetDefault(logLevel, ".:info")
	VConfig.SetDefault(ServePort, 8080)
	VConfig.SetDefault(StrictValidation, false)
}

// Load initializes configuration and loads settings from files and environment.
//
// Load performs the following steps:
//  1. Calls [Init] if not already called
//  2. Reads the configuration file (if present; missing files are not an error)
//  3. Applies environment variable overrides
//  4. Updates log levels based on configuration
//
// This function is safe to call concurrently from multiple goroutines.
// Subsequent calls after the first successful load are no-ops that return nil.
//
// Returns an error if log level configuration is invalid.
func Load() error {
	loadOnce.Do(func() {
		Init()

		// Early log level update from environment variable allows us to debug the config loading.
		earlyLoglevel := os.Getenv("ACE_LOG_LEVEL")
		if earlyLoglevel != "" {
			if err := logging.UpdateLogLevels(earlyLoglevel); err != nil {
				logger.Errorf("Failed updating early log level %s: %+v", earlyLoglevel, err)
				loadErr = err
				return
			}
		}

		logger.Debugf("Loading configuration from %s/%s.yaml", getConfigPath(), getConfigFileName())
		err := VConfig.ReadInConfig()
		if err != nil {
			// Only log if it's an actual error, not just a missing config file
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				logger.Warnf("error reading config; using defaults: %+v", err)
			}
			// fall through to continue loading
			logger.Debugf("No config file found at %s/%s.yaml", getConfigPath(), getConfigFileName())
		}

		// Update log levels based on final configuration
		loglevel := VConfig.GetString(logLevel)
		if err := logging.UpdateLogLevels(loglevel); err != nil {
			logger.Errorf("Failed updating log level %s: %+v", loglevel, err)
			loadErr = err
			return
		}

		if logger.IsDebugEnabled() {
			VConfig.DebugTo(logger.Out())
		}
	})

	return loadErr
}

// ResetConfig clears all configuration and reinitializes with defaults.
//
// WARNING: This function is intended for testing only. It resets the global
// configuration state, which can cause race conditions in concurrent code.
func ResetConfig() {
	VConfig = nil
	once = sync.Once{}     // reset the sync.Once to allow re-initialization
	loadOnce = sync.Once{} // reset the loadOnce to allow re-loading
	loadErr = nil          // reset any previous load error
	Init()
	// ignore any reset errors
	_ = Load()
}
