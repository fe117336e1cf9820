// Package config loads the service configuration from an optional file,
// TSPCOMPARE_* environment variables and command-line flags, then validates it.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/tspcompare/logging"
	"github.com/katalvlaran/tspcompare/tsp"
)

// EnvPrefix prefixes every environment override, e.g. TSPCOMPARE_SERVER_ADDR.
const EnvPrefix = "TSPCOMPARE"

// Config is the root configuration.
type Config struct {
	Server ServerConfig   `mapstructure:"server"`
	Log    logging.Config `mapstructure:"log"`
	Engine EngineConfig   `mapstructure:"engine"`
}

// ServerConfig controls the HTTP adapter.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"             validate:"required"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"     validate:"gte=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"    validate:"gte=0"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"  validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"   validate:"gt=0"`
}

// EngineConfig bounds the work a single request may ask for.
type EngineConfig struct {
	ExhaustiveLimit int `mapstructure:"exhaustive_limit" validate:"gte=1,lte=12"`
	Workers         int `mapstructure:"workers"          validate:"gte=1,lte=256"`
	MaxCities       int `mapstructure:"max_cities"       validate:"gte=1"`
	MaxAnts         int `mapstructure:"max_ants"         validate:"gte=1"`
	MaxIterations   int `mapstructure:"max_iterations"   validate:"gte=0"`
}

// flagKeys maps command-line flag names onto configuration keys.
var flagKeys = map[string]string{
	"addr":             "server.addr",
	"log-level":        "log.level",
	"log-format":       "log.format",
	"log-file":         "log.file",
	"exhaustive-limit": "engine.exhaustive_limit",
	"workers":          "engine.workers",
	"max-cities":       "engine.max_cities",
}

// setDefaults registers every key so that environment overrides resolve.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.max_body_bytes", 1<<16)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age", 30)
	v.SetDefault("log.compress", true)
	v.SetDefault("log.stdout", true)

	v.SetDefault("engine.exhaustive_limit", tsp.DefaultExhaustiveLimit)
	v.SetDefault("engine.workers", 1)
	v.SetDefault("engine.max_cities", 500)
	v.SetDefault("engine.max_ants", 500)
	v.SetDefault("engine.max_iterations", 10000)
}

// Load resolves the configuration. Precedence, highest first: changed flags,
// environment, file, defaults. path and fs may be empty/nil.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config error: %w", err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config error: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the struct tags.
func Validate(cfg *Config) error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
