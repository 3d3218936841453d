package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingField(t *testing.T) {
	tests := []struct {
		field   string
		message string
	}{
		{"namespace", "no namespace provided"},
		{"name", "no name provided"},
		{"cron", "no cron provided"},
		{"user uuid", "no user uuid was detected"},
		{"user key", "no user key was detected"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			err := MissingField(tt.field)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, http.StatusBadRequest, err.StatusCode)
			assert.True(t, IsType(err, ErrTypeValidation))
		})
	}
}

func TestAuthDenied(t *testing.T) {
	err := AuthDenied(404, "namespace not found")

	assert.Equal(t, "Trigger authentication request failed.", err.Message)
	assert.Equal(t, 404, HTTPStatus(err))
	assert.Equal(t, "namespace not found", err.Detail)
	assert.True(t, IsType(err, ErrTypeAuthDenied))
}

func TestAuthTransportError(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := AuthTransportError(cause)

	assert.Equal(t, "Trigger authentication request failed.", err.Message)
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
	assert.Equal(t, "connection refused", err.Detail)
	assert.Equal(t, cause, err.Unwrap())
}

func TestCreationAndPersistenceErrors(t *testing.T) {
	cause := fmt.Errorf("cron parse failed")

	created := CreationFailed(cause)
	assert.Equal(t, "error creating trigger. cron parse failed", created.Message)
	assert.Equal(t, http.StatusBadRequest, created.StatusCode)
	assert.True(t, IsType(created, ErrTypeCreation))

	persisted := PersistenceFailed(fmt.Errorf("disk full"))
	assert.Equal(t, http.StatusBadRequest, persisted.StatusCode)
	assert.True(t, IsType(persisted, ErrTypePersistence))
}

func TestHTTPStatusFallback(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(fmt.Errorf("plain error")))
}

func TestIsTypeNonAppError(t *testing.T) {
	assert.False(t, IsType(nil, ErrTypeValidation))
	assert.False(t, IsType(fmt.Errorf("plain"), ErrTypeValidation))
}
