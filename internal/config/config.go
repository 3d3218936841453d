// Package config provides configuration management for the trigger
// provider. Values are loaded from environment variables with sensible
// defaults and validated before the service starts.
//
// Environment Variables:
//
// Application Settings:
//   - PORT: Server port (default: 8080)
//   - LOG_LEVEL: Logging level (default: info)
//
// Trigger Settings:
//   - ROUTER_HOST: Host of the front-door router used for the
//     authorization probe (required)
//   - TRIGGER_FIRE_LIMIT: Default bound on future firings applied when
//     a creation request carries no maxTriggers (default: 10000)
//
// Database Configuration:
//   - DATABASE_TYPE: "sqlite", "postgres" or "redis" (default: sqlite)
//   - DATABASE_PATH: SQLite database file path (default: ./triggers.db)
//   - POSTGRES_HOST: PostgreSQL host (required if using PostgreSQL)
//   - POSTGRES_PORT: PostgreSQL port (default: 5432)
//   - POSTGRES_DB: PostgreSQL database name
//   - POSTGRES_USER: PostgreSQL username
//   - POSTGRES_PASSWORD: PostgreSQL password
//   - POSTGRES_SSL_MODE: PostgreSQL SSL mode (default: disable)
//   - REDIS_ADDRESS: Redis server address (default: localhost:6379)
//   - REDIS_PASSWORD: Redis password
//   - REDIS_DB: Redis database number 0-15 (default: 0)
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration values for the trigger provider.
// Load it with Load() and check it with Validate() before use.
type Config struct {
	// Application settings
	Port     string // Server port number
	LogLevel string // Logging level (debug, info, warn, error)

	// Trigger provisioning settings
	RouterHost       string // Router host for the authorization probe
	TriggerFireLimit int    // Default fire limit applied by the validator

	// Database configuration
	DatabaseType string // "sqlite", "postgres" or "redis"
	DatabasePath string // Path to SQLite database file

	PostgresHost     string // PostgreSQL host address
	PostgresPort     string // PostgreSQL port number
	PostgresDB       string // PostgreSQL database name
	PostgresUser     string // PostgreSQL username
	PostgresPassword string // PostgreSQL password
	PostgresSSLMode  string // PostgreSQL SSL mode (disable, require, etc.)

	RedisAddress  string // Redis server address (host:port)
	RedisPassword string // Redis authentication password
	RedisDB       string // Redis database number (0-15)
}

// Load creates a new Config instance with values loaded from
// environment variables. It does not validate; call Validate() on the
// returned Config before use.
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		RouterHost:       getEnv("ROUTER_HOST", ""),
		TriggerFireLimit: getIntEnv("TRIGGER_FIRE_LIMIT", 10000),

		DatabaseType: getEnv("DATABASE_TYPE", "sqlite"),
		DatabasePath: getEnv("DATABASE_PATH", "./triggers.db"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresDB:       getEnv("POSTGRES_DB", "triggers"),
		PostgresUser:     getEnv("POSTGRES_USER", "postgres"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", ""),
		PostgresSSLMode:  getEnv("POSTGRES_SSL_MODE", "disable"),

		RedisAddress:  getEnv("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnv("REDIS_DB", "0"),
	}
}

// getEnv retrieves an environment variable value or returns a default
// value if not set.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves an integer environment variable value or returns
// a default value if not set or unparseable.
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Validate checks required fields and value ranges. The service should
// call this after Load and refuse to start on error.
func (c *Config) Validate() error {
	if c.RouterHost == "" {
		return fmt.Errorf("ROUTER_HOST environment variable is required")
	}

	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be a valid port number between 1 and 65535")
	}

	if c.TriggerFireLimit < 1 {
		return fmt.Errorf("TRIGGER_FIRE_LIMIT must be a positive number")
	}

	switch c.DatabaseType {
	case "sqlite", "postgres", "redis":
		// Valid database types
	default:
		return fmt.Errorf("DATABASE_TYPE must be 'sqlite', 'postgres' or 'redis'")
	}

	if c.DatabaseType == "postgres" {
		if c.PostgresHost == "" {
			return fmt.Errorf("POSTGRES_HOST is required when using PostgreSQL")
		}
		if c.PostgresDB == "" {
			return fmt.Errorf("POSTGRES_DB is required when using PostgreSQL")
		}
		if c.PostgresUser == "" {
			return fmt.Errorf("POSTGRES_USER is required when using PostgreSQL")
		}
		if port, err := strconv.Atoi(c.PostgresPort); err != nil || port < 1 || port > 65535 {
			return fmt.Errorf("POSTGRES_PORT must be a valid port number")
		}
	}

	if c.DatabaseType == "redis" {
		if db, err := strconv.Atoi(c.RedisDB); err != nil || db < 0 || db > 15 {
			return fmt.Errorf("REDIS_DB must be a number between 0 and 15")
		}
	}

	return nil
}
