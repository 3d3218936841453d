// Package storage defines the trigger store consumed by the
// provisioning workflow and a factory over its adapters.
package storage

import (
	"context"

	"trigger-provider/internal/models"
)

// notFoundError is returned by Get when no trigger exists for an identifier
type notFoundError struct{ identifier string }

func (e *notFoundError) Error() string {
	return "trigger " + e.identifier + " not found"
}

// NotFound creates a not-found error for an identifier
func NotFound(identifier string) error {
	return &notFoundError{identifier: identifier}
}

// IsNotFound reports whether err is a store not-found error
func IsNotFound(err error) bool {
	_, ok := err.(*notFoundError)
	return ok
}

// Store persists trigger records keyed by their system-assigned
// identifier. Identifier uniqueness is enforced by the store; a second
// insert under the same identifier fails.
type Store interface {
	// Insert writes the full trigger record in one operation. Either
	// all fields including status are written, or nothing is.
	Insert(ctx context.Context, trigger *models.Trigger, identifier string) error

	// Get reads a trigger back by identifier.
	Get(ctx context.Context, identifier string) (*models.Trigger, error)

	Health() error
	Close() error
}
