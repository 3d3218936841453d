package models

// TriggerRequest is the body of a trigger creation request as parsed by
// the HTTP layer. APIKey is computed during validation from the caller
// identity and is never accepted from the client.
type TriggerRequest struct {
	Namespace   string `json:"namespace"`
	Name        string `json:"name"`
	Cron        string `json:"cron"`
	MaxTriggers int    `json:"maxTriggers,omitempty"`
	APIKey      string `json:"-"`
}

// Identity is the authenticated caller identity attached by the HTTP
// layer. It is never persisted on its own; the validator folds it into
// the trigger's apikey.
type Identity struct {
	UUID string `json:"uuid"`
	Key  string `json:"key"`
}

// TriggerStatus tracks the lifecycle state of a trigger. Active is
// always true at creation; later lifecycle transitions (firing,
// exhaustion, deactivation) write to these fields.
type TriggerStatus struct {
	Active      bool   `json:"active"`
	DateChanged string `json:"dateChanged"`
}

// Trigger is the persisted trigger record. The apikey carries the
// owner's authority for later firings and is excluded from client
// facing JSON.
type Trigger struct {
	Namespace   string        `json:"namespace"`
	Name        string        `json:"name"`
	Cron        string        `json:"cron"`
	MaxTriggers int           `json:"maxTriggers"`
	APIKey      string        `json:"-"`
	Status      TriggerStatus `json:"status"`
}
