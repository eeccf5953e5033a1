// Package submit sends a filtered form payload to the remote submission endpoint
// and turns whatever comes back into a single user-facing outcome.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/chainform/internal/form"
	"github.com/mark3labs/chainform/internal/logger"
)

// SubmitPath is the endpoint path the payload is posted to.
const SubmitPath = "/api/submit"

type (
	// Transport delivers a payload and returns the server's acknowledgement
	Transport interface {
		Submit(context.Context, form.Payload) (*Response, error)
	}

	// Response is the body of a successful submission
	Response struct {
		Status string `json:"status"`
		ID     string `json:"id"`
	}

	// HTTPTransport posts payloads as JSON over HTTP
	HTTPTransport struct {
		httpClient *http.Client
		endpoint   string
	}
)

var (
	// ErrHTTPStatus is wrapped by HTTPError for non-2xx responses
	ErrHTTPStatus = errors.New("request failed with status code")

	// ErrMissingID is returned when a 2xx response carries no submission id
	ErrMissingID = errors.New("response is missing a submission id")
)

var _ Transport = (*HTTPTransport)(nil)

// NewHTTPTransport creates a transport posting to baseURL + SubmitPath. A zero
// timeout leaves the request bounded only by the caller's context.
func NewHTTPTransport(baseURL string, timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   strings.TrimRight(baseURL, "/") + SubmitPath,
	}
}

// Endpoint returns the full URL payloads are posted to.
func (t *HTTPTransport) Endpoint() string {
	return t.endpoint
}

// Submit posts the payload. Non-2xx responses come back as *HTTPError.
func (t *HTTPTransport) Submit(
	ctx context.Context, payload form.Payload,
) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal payload: %v", err)
		return nil, fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, t.endpoint, bytes.NewReader(body),
	)
	if err != nil {
		logger.Error("Failed to create request for %s: %v", t.endpoint, err)
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	logger.Debug("Submitting payload to %s: %s", t.endpoint, body)

	start := time.Now()
	resp, err := t.httpClient.Do(req)
	dur := time.Since(start)
	if err != nil {
		logger.Error("Submission request failed after %s: %v", dur, err)
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("Failed to read response body: %v", err)
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		herr := newHTTPError(resp.StatusCode, respBody)
		logger.Warn("Submission rejected: status=%d detail=%q", herr.StatusCode, herr.Detail)
		return nil, herr
	}

	var res Response
	if err := json.Unmarshal(respBody, &res); err != nil {
		logger.Error("Failed to unmarshal response: %v", err)
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if res.ID == "" {
		return nil, ErrMissingID
	}

	logger.Info("Submission accepted: id=%s status=%s (%s)", res.ID, res.Status, dur)
	return &res, nil
}
