package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Reports   ReportsConfig   `mapstructure:"reports"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"SERVER_PORT"`
	Host         string        `mapstructure:"SERVER_HOST"`
	Env          string        `mapstructure:"ENV"`
	ReadTimeout  time.Duration `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"SERVER_WRITE_TIMEOUT"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"DATABASE_URL"`
	MaxOpenConns    int           `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `mapstructure:"DATABASE_CONN_MAX_LIFETIME"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type SchedulerConfig struct {
	// Cron spec (with seconds) for the daily settlement sweep.
	SweepSpec string `mapstructure:"SCHEDULER_SWEEP_SPEC"`
	Timezone  string `mapstructure:"SCHEDULER_TIMEZONE"`
}

type ReportsConfig struct {
	CacheTTL time.Duration `mapstructure:"REPORTS_CACHE_TTL"`
}

// Load reads configuration from environment variables. A .env file, when
// present, has already been loaded into the environment by the binaries.
func Load() (*Config, error) {
	defaults := map[string]interface{}{
		"server.SERVER_PORT":                  "8080",
		"server.SERVER_HOST":                  "0.0.0.0",
		"server.ENV":                          "development",
		"server.SERVER_READ_TIMEOUT":          "15s",
		"server.SERVER_WRITE_TIMEOUT":         "15s",
		"database.DATABASE_URL":               "",
		"database.DATABASE_MAX_OPEN_CONNS":    25,
		"database.DATABASE_MAX_IDLE_CONNS":    5,
		"database.DATABASE_CONN_MAX_LIFETIME": "5m",
		"redis.REDIS_HOST":                    "localhost",
		"redis.REDIS_PORT":                    "6379",
		"redis.REDIS_PASSWORD":                "",
		"redis.REDIS_DB":                      0,
		"scheduler.SCHEDULER_SWEEP_SPEC":      "0 0 3 * * *",
		"scheduler.SCHEDULER_TIMEZONE":        "UTC",
		"reports.REPORTS_CACHE_TTL":           "5m",
	}

	for key, value := range defaults {
		viper.SetDefault(key, value)
		// Every nested key reads the flat environment variable named after
		// the dot, so SERVER_PORT lands in Server.Port.
		_ = viper.BindEnv(key, key[strings.IndexByte(key, '.')+1:])
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Scheduler.SweepSpec == "" {
		return fmt.Errorf("SCHEDULER_SWEEP_SPEC is required")
	}

	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("SCHEDULER_TIMEZONE must be a valid location: %w", err)
	}

	if c.Reports.CacheTTL <= 0 {
		return fmt.Errorf("REPORTS_CACHE_TTL must be greater than 0")
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// SchedulerLocation returns the timezone the sweep runs in.
func (c *Config) SchedulerLocation() *time.Location {
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
