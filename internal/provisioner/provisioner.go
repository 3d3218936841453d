// Package provisioner implements the trigger admission workflow:
// validation, remote authorization, scheduling engine registration,
// and persistence. Each creation request runs the pipeline strictly
// in that order; any failure short-circuits and nothing is retried.
package provisioner

import (
	"context"
	"time"

	"trigger-provider/internal/authz"
	"trigger-provider/internal/common/errors"
	"trigger-provider/internal/common/logging"
	"trigger-provider/internal/models"
	"trigger-provider/internal/scheduler"
	"trigger-provider/internal/storage"
	"trigger-provider/internal/validation"
)

// Provisioner coordinates trigger creation across the validator, the
// authorizer, the scheduling engine and the trigger store.
type Provisioner struct {
	validator  *validation.Validator
	authorizer authz.Authorizer
	engine     scheduler.Engine
	store      storage.Store
	logger     logging.Logger
	now        func() time.Time
}

// New creates a Provisioner
func New(validator *validation.Validator, authorizer authz.Authorizer, engine scheduler.Engine, store storage.Store) *Provisioner {
	return &Provisioner{
		validator:  validator,
		authorizer: authorizer,
		engine:     engine,
		store:      store,
		logger:     logging.GetGlobalLogger(),
		now:        time.Now,
	}
}

// Create runs the admission pipeline for one trigger creation request
// and returns the engine-assigned identifier and the persisted record.
//
// A store failure after a successful engine registration is reported
// as a persistence failure and the engine entry is left in place; this
// inconsistency window is an accepted limitation of the workflow.
func (p *Provisioner) Create(ctx context.Context, req *models.TriggerRequest, identity models.Identity) (string, *models.Trigger, error) {
	if err := p.validator.Validate(req, identity); err != nil {
		return "", nil, err
	}

	if err := p.authorizer.Authorize(ctx, identity, req.Namespace, req.Name); err != nil {
		return "", nil, err
	}

	trigger := &models.Trigger{
		Namespace:   req.Namespace,
		Name:        req.Name,
		Cron:        req.Cron,
		MaxTriggers: req.MaxTriggers,
		APIKey:      req.APIKey,
	}

	identifier, err := p.engine.Register(ctx, trigger)
	if err != nil {
		return "", nil, errors.CreationFailed(err)
	}

	trigger.Status = models.TriggerStatus{
		Active:      true,
		DateChanged: p.now().UTC().Format(time.RFC3339),
	}

	if err := p.store.Insert(ctx, trigger, identifier); err != nil {
		p.logger.Error("trigger insert failed after engine registration", err,
			logging.String("identifier", identifier),
			logging.String("namespace", trigger.Namespace),
			logging.String("name", trigger.Name),
		)
		return "", nil, errors.PersistenceFailed(err)
	}

	p.logger.Info("trigger created successfully",
		logging.String("identifier", identifier),
		logging.String("namespace", trigger.Namespace),
		logging.String("name", trigger.Name),
		logging.Int("maxTriggers", trigger.MaxTriggers),
	)

	return identifier, trigger, nil
}
