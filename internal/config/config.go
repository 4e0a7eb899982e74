package config

import (
	"fmt"
	"time"
	// Embedded zone database: register PCs often lack one.
	_ "time/tzdata"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server. The API only serves the register UI on the same machine.
	Port     int    `mapstructure:"PORT"`
	BindHost string `mapstructure:"BIND_HOST"`
	Env      string `mapstructure:"APP_ENV"` // development | production
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// CORSOrigin is the origin of the register UI; "*" while developing.
	CORSOrigin string `mapstructure:"CORS_ORIGIN"`

	// Database
	DBDriver    string `mapstructure:"DB_DRIVER"` // sqlite | postgres
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Business
	// Timezone is the IANA zone used to turn calendar days into UTC ranges.
	Timezone      string `mapstructure:"TIMEZONE"`
	BackupDir     string `mapstructure:"BACKUP_DIR"`
	NombreNegocio string `mapstructure:"NEGOCIO_NOMBRE"` // printed on tickets and reports
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("PORT", 8765)
	v.SetDefault("BIND_HOST", "127.0.0.1")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ORIGIN", "*")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_URL", "file:negocio.db?_foreign_keys=on&_busy_timeout=5000")
	v.SetDefault("TIMEZONE", "America/Santiago")
	v.SetDefault("BACKUP_DIR", "respaldos")
	v.SetDefault("NEGOCIO_NOMBRE", "Mi Negocio")

	// Optional .env file for local development; does not fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("DB_DRIVER %q no soportado (sqlite | postgres)", c.DBDriver)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE %q: %w", c.Timezone, err)
	}
	return nil
}

// Location returns the configured business timezone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.BindHost, c.Port)
}
