package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"trigger-provider/internal/common/logging"
	"trigger-provider/internal/models"
	"trigger-provider/internal/storage"
)

// CreateTrigger provisions a new cron trigger. The caller identity
// comes from the authenticated session's basic auth credentials; the
// fronting router has already verified them, this service re-checks
// namespace access through the authorization probe.
func (h *Handlers) CreateTrigger(w http.ResponseWriter, r *http.Request) {
	var req models.TriggerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
			Message: "invalid request body",
			Error:   fmt.Sprintf("Invalid JSON: %v", err),
		})
		return
	}

	var identity models.Identity
	identity.UUID, identity.Key, _ = r.BasicAuth()

	h.logger.Info("got trigger creation request",
		logging.String("namespace", req.Namespace),
		logging.String("name", req.Name),
		logging.String("cron", req.Cron),
	)

	identifier, _, err := h.provisioner.Create(r.Context(), &req, identity)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Location", "/triggers/"+identifier)
	writeJSON(w, http.StatusOK, models.OKResponse{OK: "your trigger was created successfully"})
}

// GetTrigger returns a stored trigger by identifier. The apikey is
// excluded from the serialized record.
func (h *Handlers) GetTrigger(w http.ResponseWriter, r *http.Request) {
	identifier := mux.Vars(r)["id"]

	trigger, err := h.storage.Get(r.Context(), identifier)
	if err != nil {
		status := http.StatusInternalServerError
		if storage.IsNotFound(err) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, models.ErrorResponse{
			Message: "failed to get trigger",
			Error:   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, trigger)
}

// HealthCheck reports store health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.storage.Health(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
