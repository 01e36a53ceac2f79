// Package reporter notifies the external usage-data collector of consent
// state changes. Callers treat delivery as best effort; the consent state
// machine never rolls back because the collector was unreachable.
package reporter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"consentd/internal/integration"
)

const defaultTimeout = 10 * time.Second

// Reporter posts consent state transitions to the collector endpoint.
type Reporter struct {
	baseURL string
	client  *http.Client
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Reporter) {
		if client != nil {
			r.client = client
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Reporter) {
		if timeout > 0 {
			r.client.Timeout = timeout
		}
	}
}

// New constructs a Reporter targeting baseURL.
func New(baseURL string, opts ...Option) *Reporter {
	r := &Reporter{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type reportPayload struct {
	State       string       `json:"state"`
	Credentials *credentials `json:"credentials,omitempty"`
}

type credentials struct {
	AccessKey       string `json:"access_key"`
	SecretAccessKey string `json:"secret_access_key"`
}

// Report posts the new consent state. The plaintext credential pair rides
// along exactly once, on acceptance; every other transition sends nil.
func (r *Reporter) Report(ctx context.Context, state string, pair *integration.CredentialPair) error {
	payload := reportPayload{State: state}
	if pair != nil {
		payload.Credentials = &credentials{
			AccessKey:       pair.AccessKey,
			SecretAccessKey: pair.SecretAccessKey,
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/consent", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build report request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("send report: %w", err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("send report: collector returned %d", resp.StatusCode)
	}
	return nil
}
