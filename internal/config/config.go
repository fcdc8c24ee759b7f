// Package config resolves tada settings from defaults, an optional
// .tada.yaml file, TADA_* environment variables and command-line flags.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Keys understood by Load. Flags bind to the same names.
const (
	KeyBackend   = "backend"
	KeyPath      = "path"
	KeyKey       = "key"
	KeyRedisAddr = "redis.addr"
	KeyRedisDB   = "redis.db"
	KeyLogLevel  = "log.level"
	KeyTheme     = "theme"
)

// Default values.
const (
	DefaultBackend   = "file"
	DefaultPath      = "~/.tada"
	DefaultKey       = "todos"
	DefaultRedisAddr = "localhost:6379"
	DefaultLogLevel  = "info"
	DefaultTheme     = "classic"
)

// Config holds the resolved settings.
type Config struct {
	Backend  string // file|diskv|sqlite|redis|memory
	Path     string // data directory, ~ expanded
	Key      string // slot key inside the backend
	Redis    RedisConfig
	LogLevel string
	Theme    string

	// File is the config file that was read, empty when none was found.
	File string
}

type RedisConfig struct {
	Addr string
	DB   int
}

// NewViper returns a viper instance with tada's defaults and env binding.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyBackend, DefaultBackend)
	v.SetDefault(KeyPath, DefaultPath)
	v.SetDefault(KeyKey, DefaultKey)
	v.SetDefault(KeyRedisAddr, DefaultRedisAddr)
	v.SetDefault(KeyRedisDB, 0)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyTheme, DefaultTheme)

	v.SetConfigName(".tada") // .yaml is implicit
	v.SetEnvPrefix("TADA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file (if any) into v and returns the resolved Config.
// TADA_CONFIG_PATH, when set, is searched instead of ./ and the home dir.
func Load(v *viper.Viper) (Config, error) {
	if override := os.Getenv("TADA_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	} else {
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString(KeyPath))
	if err != nil {
		return Config{}, fmt.Errorf("expand path: %w", err)
	}

	return Config{
		Backend: strings.ToLower(strings.TrimSpace(v.GetString(KeyBackend))),
		Path:    path,
		Key:     strings.TrimSpace(v.GetString(KeyKey)),
		Redis: RedisConfig{
			Addr: v.GetString(KeyRedisAddr),
			DB:   v.GetInt(KeyRedisDB),
		},
		LogLevel: v.GetString(KeyLogLevel),
		Theme:    v.GetString(KeyTheme),
		File:     v.ConfigFileUsed(),
	}, nil
}
