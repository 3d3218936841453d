// Package validation checks trigger creation requests for structural
// well-formedness and applies default policy values.
package validation

import (
	"fmt"

	"trigger-provider/internal/common/errors"
	"trigger-provider/internal/models"
)

// Validator normalizes trigger creation requests. The default fire
// limit is injected at construction and immutable afterwards.
type Validator struct {
	defaultFireLimit int
}

// New creates a Validator with the given default fire limit
func New(defaultFireLimit int) *Validator {
	return &Validator{defaultFireLimit: defaultFireLimit}
}

// Validate checks the request and caller identity in a fixed order and
// returns the first failing field as a validation error. On success the
// request has defaults applied and its apikey attached.
//
// Checks, first failure wins:
//  1. namespace present
//  2. name present
//  3. cron present (syntax is checked later by the scheduling engine)
//  4. maxTriggers defaulted when unset
//  5. caller uuid present
//  6. caller key present
func (v *Validator) Validate(req *models.TriggerRequest, identity models.Identity) error {
	if req.Namespace == "" {
		return errors.MissingField("namespace")
	}
	if req.Name == "" {
		return errors.MissingField("name")
	}
	if req.Cron == "" {
		return errors.MissingField("cron")
	}

	// A zero maxTriggers is indistinguishable from an absent one and is
	// replaced with the default. Negative values pass through untouched.
	if req.MaxTriggers == 0 {
		req.MaxTriggers = v.defaultFireLimit
	}

	if identity.UUID == "" {
		return errors.MissingField("user uuid")
	}
	if identity.Key == "" {
		return errors.MissingField("user key")
	}

	req.APIKey = fmt.Sprintf("%s:%s", identity.UUID, identity.Key)

	return nil
}
