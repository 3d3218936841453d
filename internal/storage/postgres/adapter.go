// Package postgres provides the PostgreSQL trigger store adapter.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"trigger-provider/internal/config"
	"trigger-provider/internal/models"
	"trigger-provider/internal/storage"
)

func init() {
	storage.Register("postgres", func(cfg *config.Config) (storage.Store, error) {
		return NewAdapter(&Config{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			Database: cfg.PostgresDB,
			Username: cfg.PostgresUser,
			Password: cfg.PostgresPassword,
			SSLMode:  cfg.PostgresSSLMode,
		})
	})
}

// Config holds PostgreSQL connection settings
type Config struct {
	Host     string
	Port     string
	Database string
	Username string
	Password string
	SSLMode  string
}

// ConnectionString builds a pgx-compatible connection string
func (c *Config) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=%s",
		c.Host, c.Port, c.Database, c.Username, c.Password, c.SSLMode)
}

// Validate checks required connection settings
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("postgres host is required")
	}
	if c.Database == "" {
		return fmt.Errorf("postgres database is required")
	}
	if c.Username == "" {
		return fmt.Errorf("postgres username is required")
	}
	return nil
}

// Adapter is a PostgreSQL-backed trigger store using the pgx driver
type Adapter struct {
	db     *sql.DB
	config *Config
}

// NewAdapter connects to PostgreSQL and runs migrations
func NewAdapter(cfg *Config) (*Adapter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid PostgreSQL config: %w", err)
	}

	db, err := sql.Open("pgx", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	adapter := &Adapter{db: db, config: cfg}
	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return adapter, nil
}

func (a *Adapter) migrate() error {
	_, err := a.db.Exec(`CREATE TABLE IF NOT EXISTS triggers (
		identifier VARCHAR(255) PRIMARY KEY,
		namespace VARCHAR(255) NOT NULL,
		name VARCHAR(255) NOT NULL,
		cron VARCHAR(255) NOT NULL,
		max_triggers INTEGER NOT NULL,
		apikey VARCHAR(255) NOT NULL,
		active BOOLEAN NOT NULL,
		date_changed VARCHAR(64) NOT NULL,
		UNIQUE(namespace, name)
	)`)
	return err
}

// Insert writes the full trigger record in a single statement
func (a *Adapter) Insert(ctx context.Context, trigger *models.Trigger, identifier string) error {
	_, err := a.db.ExecContext(ctx,
		`INSERT INTO triggers (identifier, namespace, name, cron, max_triggers, apikey, active, date_changed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		identifier,
		trigger.Namespace,
		trigger.Name,
		trigger.Cron,
		trigger.MaxTriggers,
		trigger.APIKey,
		trigger.Status.Active,
		trigger.Status.DateChanged,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trigger: %w", err)
	}
	return nil
}

// Get reads a trigger back by identifier
func (a *Adapter) Get(ctx context.Context, identifier string) (*models.Trigger, error) {
	var trigger models.Trigger
	err := a.db.QueryRowContext(ctx,
		`SELECT namespace, name, cron, max_triggers, apikey, active, date_changed
		 FROM triggers WHERE identifier = $1`,
		identifier,
	).Scan(
		&trigger.Namespace,
		&trigger.Name,
		&trigger.Cron,
		&trigger.MaxTriggers,
		&trigger.APIKey,
		&trigger.Status.Active,
		&trigger.Status.DateChanged,
	)
	if err == sql.ErrNoRows {
		return nil, storage.NotFound(identifier)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trigger: %w", err)
	}
	return &trigger, nil
}

// Health pings the database
func (a *Adapter) Health() error {
	return a.db.Ping()
}

// Close closes the database
func (a *Adapter) Close() error {
	return a.db.Close()
}
