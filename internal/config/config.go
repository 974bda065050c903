// Package config loads server configuration from file, environment, and
// defaults. Precedence: env > config file > defaults, with env vars under
// the DATAQUALITY prefix (e.g. DATAQUALITY_LISTEN_ADDR).
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full server configuration.
type Config struct {
	// ListenAddr is the HTTP listen address.
	ListenAddr string `mapstructure:"listen_addr"`

	// HistoryBackend selects the history store: "sqlite" or "redis".
	HistoryBackend string `mapstructure:"history_backend"`

	// SQLitePath is the database file for the sqlite backend.
	SQLitePath string `mapstructure:"sqlite_path"`

	// ResetHistory drops stored analyses on startup (development only).
	ResetHistory bool `mapstructure:"reset_history"`

	// RedisAddr is the server address for the redis backend.
	RedisAddr string `mapstructure:"redis_addr"`

	// RedisPassword authenticates the redis connection (optional).
	RedisPassword string `mapstructure:"redis_password"`

	// RedisDB is the redis database number.
	RedisDB int `mapstructure:"redis_db"`

	// RedisPrefix namespaces history keys in redis.
	RedisPrefix string `mapstructure:"redis_prefix"`

	// CORSOrigins lists allowed origins; "*" allows all.
	CORSOrigins []string `mapstructure:"cors_origins"`

	// MaxUploadBytes caps the size of one uploaded file.
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`

	// LogLevel is the minimum log level.
	LogLevel string `mapstructure:"log_level"`

	// LogFormat is "console" or "json".
	LogFormat string `mapstructure:"log_format"`
}

// Load reads configuration. cfgFile may be empty, in which case only a
// quality.yaml in the working directory is tried.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DATAQUALITY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("listen_addr", ":8000")
	v.SetDefault("history_backend", "sqlite")
	v.SetDefault("sqlite_path", "analysis_history.db")
	v.SetDefault("reset_history", false)
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_prefix", "dataquality:analyses:")
	v.SetDefault("cors_origins", []string{"*"})
	v.SetDefault("max_upload_bytes", int64(50<<20))
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("quality")
		v.SetConfigType("yaml")
		_ = v.ReadInConfig()
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	switch c.HistoryBackend {
	case "sqlite", "redis":
	default:
		return nil, fmt.Errorf("unknown history backend %q", c.HistoryBackend)
	}
	return &c, nil
}
