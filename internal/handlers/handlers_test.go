package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trigger-provider/internal/common/errors"
	"trigger-provider/internal/models"
	"trigger-provider/internal/provisioner"
	"trigger-provider/internal/storage"
	"trigger-provider/internal/validation"
)

type fakeAuthorizer struct {
	err   error
	calls int
}

func (f *fakeAuthorizer) Authorize(ctx context.Context, identity models.Identity, namespace, name string) error {
	f.calls++
	return f.err
}

type fakeEngine struct {
	identifier string
	err        error
	calls      int
}

func (f *fakeEngine) Register(ctx context.Context, trigger *models.Trigger) (string, error) {
	f.calls++
	return f.identifier, f.err
}

func (f *fakeEngine) Unregister(identifier string) error { return nil }

type memoryStore struct {
	triggers  map[string]*models.Trigger
	insertErr error
	healthErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{triggers: make(map[string]*models.Trigger)}
}

func (m *memoryStore) Insert(ctx context.Context, trigger *models.Trigger, identifier string) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.triggers[identifier] = trigger
	return nil
}

func (m *memoryStore) Get(ctx context.Context, identifier string) (*models.Trigger, error) {
	trigger, ok := m.triggers[identifier]
	if !ok {
		return nil, storage.NotFound(identifier)
	}
	return trigger, nil
}

func (m *memoryStore) Health() error { return m.healthErr }
func (m *memoryStore) Close() error  { return nil }

type fixture struct {
	router     *mux.Router
	authorizer *fakeAuthorizer
	engine     *fakeEngine
	store      *memoryStore
}

func setup(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		authorizer: &fakeAuthorizer{},
		engine:     &fakeEngine{identifier: "abc123"},
		store:      newMemoryStore(),
	}

	p := provisioner.New(validation.New(1000), f.authorizer, f.engine, f.store)
	h := New(p, f.store)

	f.router = mux.NewRouter()
	f.router.HandleFunc("/triggers", h.CreateTrigger).Methods("POST")
	f.router.HandleFunc("/triggers/{id}", h.GetTrigger).Methods("GET")
	f.router.HandleFunc("/health", h.HealthCheck).Methods("GET")

	return f
}

func createRequest(body string, withAuth bool) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/triggers", strings.NewReader(body))
	if withAuth {
		req.SetBasicAuth("u", "k")
	}
	return req
}

const validBody = `{"namespace":"ns1","name":"t1","cron":"* * * * *"}`

func TestCreateTriggerSuccess(t *testing.T) {
	f := setup(t)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, createRequest(validBody, true))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.OKResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "your trigger was created successfully", resp.OK)

	stored := f.store.triggers["abc123"]
	require.NotNil(t, stored)
	assert.Equal(t, 1000, stored.MaxTriggers)
	assert.Equal(t, "u:k", stored.APIKey)
	assert.True(t, stored.Status.Active)
}

func TestCreateTriggerInvalidJSON(t *testing.T) {
	f := setup(t)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, createRequest("{not json", true))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, f.authorizer.calls)
}

func TestCreateTriggerMissingField(t *testing.T) {
	f := setup(t)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, createRequest(`{"name":"t1","cron":"* * * * *"}`, true))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "no namespace provided", resp.Message)

	assert.Zero(t, f.authorizer.calls)
	assert.Zero(t, f.engine.calls)
}

func TestCreateTriggerMissingCredentials(t *testing.T) {
	f := setup(t)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, createRequest(validBody, false))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "no user uuid was detected", resp.Message)
}

func TestCreateTriggerAuthDenied(t *testing.T) {
	f := setup(t)
	f.authorizer.err = errors.AuthDenied(http.StatusNotFound, "namespace not found")

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, createRequest(validBody, true))

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Trigger authentication request failed.", resp.Message)
	assert.Equal(t, "namespace not found", resp.Error)

	assert.Zero(t, f.engine.calls)
	assert.Empty(t, f.store.triggers)
}

func TestCreateTriggerEngineFailure(t *testing.T) {
	f := setup(t)
	f.engine.err = fmt.Errorf("invalid cron expression")

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, createRequest(validBody, true))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, f.store.triggers)
}

func TestCreateTriggerStoreFailure(t *testing.T) {
	f := setup(t)
	f.store.insertErr = fmt.Errorf("disk full")

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, createRequest(validBody, true))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "error creating trigger")
}

func TestGetTriggerHidesAPIKey(t *testing.T) {
	f := setup(t)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, createRequest(validBody, true))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/triggers/abc123", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "u:k")
	assert.Contains(t, rec.Body.String(), `"active":true`)
}

func TestGetTriggerNotFound(t *testing.T) {
	f := setup(t)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/triggers/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	f := setup(t)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	f.store.healthErr = fmt.Errorf("down")
	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
