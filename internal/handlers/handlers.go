// Package handlers implements the HTTP surface of the trigger
// provider. The handlers parse requests and translate workflow errors
// into responses; all provisioning decisions live in the provisioner.
package handlers

import (
	"encoding/json"
	"net/http"

	"trigger-provider/internal/common/errors"
	"trigger-provider/internal/common/logging"
	"trigger-provider/internal/models"
	"trigger-provider/internal/provisioner"
	"trigger-provider/internal/storage"
)

// Handlers holds the dependencies shared by all HTTP handlers
type Handlers struct {
	provisioner *provisioner.Provisioner
	storage     storage.Store
	logger      logging.Logger
}

// New creates the handler set
func New(p *provisioner.Provisioner, store storage.Store) *Handlers {
	return &Handlers{
		provisioner: p,
		storage:     store,
		logger:      logging.GetGlobalLogger(),
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps a workflow error onto the wire format. AuthDenied
// errors pass the upstream status code through; everything else in the
// taxonomy is a 400.
func writeError(w http.ResponseWriter, err error) {
	resp := models.ErrorResponse{Message: err.Error(), Error: err.Error()}
	if appErr, ok := err.(*errors.AppError); ok {
		resp.Message = appErr.Message
		resp.Error = appErr.Detail
		if resp.Error == nil {
			resp.Error = appErr.Message
		}
	}
	writeJSON(w, errors.HTTPStatus(err), resp)
}
