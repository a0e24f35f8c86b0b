// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config builds the application configuration from layered sources.
//
// Precedence, lowest first:
//
//  1. built-in defaults,
//  2. an optional YAML file (AGORA_CONFIG, default conf/agora.yaml),
//  3. environment variables prefixed AGORA_, where "__" separates levels
//     (AGORA_DB__PASSWORD sets db.password).
//
// A .env file in the working directory is loaded into the environment
// before anything else. The merged tree is validated before it is returned.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

const (
	envPrefix       = "AGORA_"
	envConfigFile   = "AGORA_CONFIG"
	defaultFile     = "conf/agora.yaml"
	defaultPassword = "changeme"
)

// App holds web-server and presentation settings.
type App struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port" validate:"required,min=1,max=65535"`
	Env      string `koanf:"env" validate:"required,oneof=development production testing"`
	PageSize uint   `koanf:"page_size" validate:"required,min=1,max=500"`
	LogDir   string `koanf:"log_dir" validate:"required"`
}

// DB holds the PostgreSQL connection parameters.
type DB struct {
	Host     string `koanf:"host" validate:"required"`
	Port     int    `koanf:"port" validate:"required,min=1,max=65535"`
	User     string `koanf:"user" validate:"required"`
	Password string `koanf:"password"`
	Name     string `koanf:"name" validate:"required"`
}

// Valkey holds the session store connection parameters.
type Valkey struct {
	Host     string `koanf:"host" validate:"required"`
	Port     int    `koanf:"port" validate:"required,min=1,max=65535"`
	Password string `koanf:"password"`
}

// Config is the root of the configuration tree.
type Config struct {
	App    App    `koanf:"app"`
	DB     DB     `koanf:"db"`
	Valkey Valkey `koanf:"valkey"`
}

var validate = validator.New()

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"app.host":        "0.0.0.0",
		"app.port":        8080,
		"app.env":         "development",
		"app.page_size":   20,
		"app.log_dir":     "logs",
		"db.host":         "localhost",
		"db.port":         5432,
		"db.user":         "agora",
		"db.password":     defaultPassword,
		"db.name":         "agora",
		"valkey.host":     "localhost",
		"valkey.port":     6379,
		"valkey.password": "",
	}
}

// Load reads .env, the YAML file and AGORA_ environment overrides, then
// validates the result.
func Load() (*Config, error) {
	// .env is optional.
	_ = godotenv.Load()

	path := os.Getenv(envConfigFile)
	if path == "" {
		path = defaultFile
	}
	return load(path)
}

func load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		zap.S().Debugw("config file loaded", "file", path)
	}

	// AGORA_DB__PASSWORD -> db.password; empty values do not override.
	if err := k.Load(env.ProviderWithValue(envPrefix, ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		key = strings.TrimPrefix(key, envPrefix)
		return strings.ToLower(strings.ReplaceAll(key, "__", ".")), value
	}), nil); err != nil {
		return nil, fmt.Errorf("config env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	if cfg.App.Env == "production" && cfg.DB.Password == defaultPassword {
		return nil, errors.New("AGORA_DB__PASSWORD must be set in production")
	}

	zap.S().Infow("config loaded",
		"env", cfg.App.Env,
		"addr", cfg.Addr(),
		"page_size", cfg.App.PageSize,
	)
	return &cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

// ValkeyAddr returns the session store address (host:port).
func (c *Config) ValkeyAddr() string {
	return fmt.Sprintf("%s:%d", c.Valkey.Host, c.Valkey.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.App.Env == "development"
}
