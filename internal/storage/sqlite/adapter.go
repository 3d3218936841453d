// Package sqlite provides the SQLite trigger store adapter.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"trigger-provider/internal/config"
	"trigger-provider/internal/models"
	"trigger-provider/internal/storage"
)

func init() {
	storage.Register("sqlite", func(cfg *config.Config) (storage.Store, error) {
		return NewAdapter(cfg.DatabasePath)
	})
}

// Adapter is a SQLite-backed trigger store
type Adapter struct {
	db *sql.DB
}

// NewAdapter opens (and if needed creates) the SQLite database at path
func NewAdapter(path string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	adapter := &Adapter{db: db}
	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return adapter, nil
}

func (a *Adapter) migrate() error {
	_, err := a.db.Exec(`CREATE TABLE IF NOT EXISTS triggers (
		identifier TEXT PRIMARY KEY,
		namespace TEXT NOT NULL,
		name TEXT NOT NULL,
		cron TEXT NOT NULL,
		max_triggers INTEGER NOT NULL,
		apikey TEXT NOT NULL,
		active BOOLEAN NOT NULL,
		date_changed TEXT NOT NULL,
		UNIQUE(namespace, name)
	)`)
	return err
}

// Insert writes the full trigger record in a single statement
func (a *Adapter) Insert(ctx context.Context, trigger *models.Trigger, identifier string) error {
	_, err := a.db.ExecContext(ctx,
		`INSERT INTO triggers (identifier, namespace, name, cron, max_triggers, apikey, active, date_changed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
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
		 FROM triggers WHERE identifier = ?`,
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
