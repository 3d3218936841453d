// Package scheduler registers triggers with the cron engine that will
// fire them on their configured intervals.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"trigger-provider/internal/common/logging"
	"trigger-provider/internal/models"
)

// Engine registers triggers for recurring execution. Register returns
// a system-assigned identifier that is stable for the trigger's
// lifetime.
type Engine interface {
	Register(ctx context.Context, trigger *models.Trigger) (string, error)
	Unregister(identifier string) error
}

// FireHandler is invoked each time a registered trigger's schedule
// elapses. Execution semantics live behind this callback.
type FireHandler func(identifier string, trigger *models.Trigger)

// CronEngine schedules triggers with robfig/cron using standard
// five-field cron expressions.
type CronEngine struct {
	cron    *cron.Cron
	parser  cron.Parser
	handler FireHandler
	logger  logging.Logger

	mu      sync.Mutex
	entries map[string]cron.EntryID
	names   map[string]string // "namespace/name" -> identifier
}

// NewCronEngine creates a started cron engine. The handler may be nil,
// in which case fires are logged and otherwise ignored.
func NewCronEngine(handler FireHandler) *CronEngine {
	logger := logging.GetGlobalLogger()

	if handler == nil {
		handler = func(identifier string, trigger *models.Trigger) {
			logger.Debug("trigger fired",
				logging.String("identifier", identifier),
				logging.String("namespace", trigger.Namespace),
				logging.String("name", trigger.Name),
			)
		}
	}

	engine := &CronEngine{
		cron:    cron.New(),
		parser:  cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow),
		handler: handler,
		logger:  logger,
		entries: make(map[string]cron.EntryID),
		names:   make(map[string]string),
	}
	engine.cron.Start()

	return engine
}

// Register validates the trigger's cron expression, assigns an
// identifier, and schedules a cron entry. A second registration for
// the same (namespace, name) pair is rejected.
func (e *CronEngine) Register(ctx context.Context, trigger *models.Trigger) (string, error) {
	schedule, err := e.parser.Parse(trigger.Cron)
	if err != nil {
		return "", fmt.Errorf("invalid cron expression %q: %w", trigger.Cron, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	nameKey := trigger.Namespace + "/" + trigger.Name
	if _, exists := e.names[nameKey]; exists {
		return "", fmt.Errorf("trigger %s already registered", nameKey)
	}

	identifier := uuid.NewString()
	registered := *trigger

	entryID := e.cron.Schedule(schedule, cron.FuncJob(func() {
		e.handler(identifier, &registered)
	}))

	e.entries[identifier] = entryID
	e.names[nameKey] = identifier

	e.logger.Info("trigger registered with scheduler",
		logging.String("identifier", identifier),
		logging.String("namespace", trigger.Namespace),
		logging.String("name", trigger.Name),
		logging.String("cron", trigger.Cron),
	)

	return identifier, nil
}

// Unregister removes a scheduled trigger
func (e *CronEngine) Unregister(identifier string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	entryID, exists := e.entries[identifier]
	if !exists {
		return fmt.Errorf("trigger %s is not registered", identifier)
	}

	e.cron.Remove(entryID)
	delete(e.entries, identifier)
	for nameKey, id := range e.names {
		if id == identifier {
			delete(e.names, nameKey)
			break
		}
	}

	return nil
}

// Stop halts the underlying cron runner. Entries stop firing once the
// returned context from cron completes.
func (e *CronEngine) Stop() {
	e.cron.Stop()
}
