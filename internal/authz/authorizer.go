// Package authz decides whether a caller may create a trigger in a
// namespace. The decision comes from a remote probe against the
// router's trigger resource: the probe's status code is the decision,
// its body is only used to extract an error detail on denial.
package authz

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"trigger-provider/internal/common/errors"
	"trigger-provider/internal/common/logging"
	"trigger-provider/internal/models"
)

// Authorizer checks that an identity may create a trigger in a
// namespace. Implementations return nil when access is granted, an
// AuthDenied error when the upstream denies, and an AuthTransportError
// when the upstream could not be reached.
type Authorizer interface {
	Authorize(ctx context.Context, identity models.Identity, namespace, name string) error
}

// HTTPAuthorizer probes the router over HTTPS with basic auth
type HTTPAuthorizer struct {
	baseURL string
	client  *http.Client
	logger  logging.Logger
}

// New creates an HTTPAuthorizer probing the given router host on the
// standard HTTPS port.
func New(routerHost string) *HTTPAuthorizer {
	return NewWithBaseURL(fmt.Sprintf("https://%s:443", routerHost))
}

// NewWithBaseURL creates an HTTPAuthorizer against an explicit base
// URL. Used by tests to point the probe at a local server.
func NewWithBaseURL(baseURL string) *HTTPAuthorizer {
	return &HTTPAuthorizer{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logging.GetGlobalLogger(),
	}
}

// Authorize performs the probe. Any response below 400 grants access;
// the body of a granting response is discarded.
func (a *HTTPAuthorizer) Authorize(ctx context.Context, identity models.Identity, namespace, name string) error {
	probeURL := fmt.Sprintf("%s/api/v1/namespaces/%s/triggers/%s", a.baseURL, namespace, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, probeURL, nil)
	if err != nil {
		return errors.AuthTransportError(err)
	}
	req.SetBasicAuth(identity.UUID, identity.Key)

	a.logger.Debug("checking trigger creation access",
		logging.String("namespace", namespace),
		logging.String("name", name),
	)

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("trigger authentication request failed", err,
			logging.String("namespace", namespace),
		)
		return errors.AuthTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		detail := extractDetail(resp)
		a.logger.Warn("trigger creation denied",
			logging.String("namespace", namespace),
			logging.String("name", name),
			logging.Int("status", resp.StatusCode),
		)
		return errors.AuthDenied(resp.StatusCode, detail)
	}

	return nil
}

// extractDetail pulls an error detail out of a denial response. The
// body is parsed as JSON to find an "error" field; failing that, the
// raw body is used, and an empty body yields a synthesized message
// carrying the status code. Parsing problems never change the error
// kind, only the detail payload.
func extractDetail(resp *http.Response) interface{} {
	body, err := io.ReadAll(resp.Body)
	if err != nil || len(body) == 0 {
		return fmt.Sprintf("Authentication request failed with status code %d", resp.StatusCode)
	}

	var payload struct {
		Error interface{} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != nil {
		return payload.Error
	}

	return string(body)
}
