package storage

import (
	"fmt"
	"sync"

	"trigger-provider/internal/common/errors"
	"trigger-provider/internal/config"
)

// Factory creates a store adapter from the service configuration
type Factory func(cfg *config.Config) (Store, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes a store adapter available under a database type name.
// Adapters call this from their init functions; the application side
// imports the adapter packages it wants available.
func Register(databaseType string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[databaseType] = factory
}

// NewStore creates a trigger store adapter based on configuration
func NewStore(cfg *config.Config) (Store, error) {
	registryMu.RLock()
	factory, ok := registry[cfg.DatabaseType]
	registryMu.RUnlock()

	if !ok {
		return nil, errors.ConfigError(fmt.Sprintf("unsupported database type: %s", cfg.DatabaseType))
	}

	return factory(cfg)
}
