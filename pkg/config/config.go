package config

import (
	"io/fs"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/iancoleman/strcase"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// Config holds all application configuration. Values are resolved in order of
// precedence: environment variables, then the yaml config file, then defaults.
type Config struct {
	AccessTokenLifetimeMinutes  int           `koanf:"access_token_lifetime_minutes"`
	DatabaseBusyTimeout         time.Duration `koanf:"database_busy_timeout"`
	DatabaseConnectRetryCount   int           `koanf:"database_connect_retry_count"`
	DatabaseConnectRetryDelay   time.Duration `koanf:"database_connect_retry_delay"`
	DatabaseDebug               bool          `koanf:"database_debug"`
	DatabaseFilePath            string        `koanf:"database_file_path"`
	JWTSecret                   string        `koanf:"jwt_secret"`
	RefreshTokenLifetimeMinutes int           `koanf:"refresh_token_lifetime_minutes"`
	ServerHost                  string        `koanf:"server_host"`
	ServerPort                  int           `koanf:"server_port"`
}

const configFileENV = "CONFIG_FILE"

func defaultConfig() *Config {
	return &Config{
		AccessTokenLifetimeMinutes:  15,
		DatabaseBusyTimeout:         5 * time.Second,
		DatabaseConnectRetryCount:   5,
		DatabaseConnectRetryDelay:   2 * time.Second,
		RefreshTokenLifetimeMinutes: 7 * 24 * 60, // 7 days
		ServerHost:                  "0.0.0.0",
		ServerPort:                  8080,
	}
}

func New() (*Config, error) {
	cfg := defaultConfig()

	k := koanf.New(".")

	configFile := os.Getenv(configFileENV)
	if configFile == "" {
		configFile = "/config/config.yaml"
	}
	err := k.Load(file.Provider(configFile), yaml.Parser())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(err, "failed to load config file %s", configFile)
	}

	// Environment variables override file values. DATABASE_FILE_PATH maps to
	// database_file_path and so on.
	err = k.Load(env.Provider("", ".", strings.ToLower), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.WithStack(err)
	}

	if err := checkRequired(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewForTest returns a config suitable for package tests: an in-memory
// database and a loopback host.
func NewForTest() *Config {
	cfg := defaultConfig()
	cfg.DatabaseFilePath = ":memory:"
	cfg.JWTSecret = "test-jwt-secret"
	cfg.ServerHost = "127.0.0.1"
	return cfg
}

// AccessTokenLifetime returns the access token lifetime as a duration.
func (cfg *Config) AccessTokenLifetime() time.Duration {
	return time.Duration(cfg.AccessTokenLifetimeMinutes) * time.Minute
}

// RefreshTokenLifetime returns the refresh token lifetime as a duration.
func (cfg *Config) RefreshTokenLifetime() time.Duration {
	return time.Duration(cfg.RefreshTokenLifetimeMinutes) * time.Minute
}

func checkRequired(cfg *Config) error {
	required := map[string]string{
		"DatabaseFilePath": cfg.DatabaseFilePath,
		"JWTSecret":        cfg.JWTSecret,
	}

	missing := []string{}
	v := reflect.ValueOf(*cfg)
	for i := 0; i < v.NumField(); i++ {
		name := v.Type().Field(i).Name
		value, ok := required[name]
		if !ok || value != "" {
			continue
		}
		key := toSnakeCase(name)
		missing = append(missing, strings.ToUpper(key)+" ("+key+")")
	}

	if len(missing) > 0 {
		return errors.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	return nil
}

func toSnakeCase(name string) string {
	return strcase.ToSnake(name)
}
