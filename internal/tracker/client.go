package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/autodoc-cli/autodoc/internal/faults"
)

// ErrNotFound means the tracker does not know the requested ticket id.
// It is fatal: retrying will not make the ticket exist.
var ErrNotFound = errors.New("ticket not found")

// ErrPermission means the tracker rejected the configured credentials.
var ErrPermission = errors.New("tracker rejected credentials")

// Client is the narrow interface the resolver depends on. Tests substitute
// a fake; HTTPClient is the real implementation.
type Client interface {
	Fetch(ctx context.Context, id string) (*RawTicket, error)
}

// HTTPClient fetches tickets from a Jira-compatible REST v2 API.
type HTTPClient struct {
	client   *http.Client
	baseURL  string
	username string
	token    string
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.client = c }
}

// NewHTTPClient creates a tracker client for the given API base URL.
// Credentials are sent as HTTP basic auth on every request.
func NewHTTPClient(baseURL, username, token string, opts ...Option) *HTTPClient {
	h := &HTTPClient{
		client:   &http.Client{Timeout: 30 * time.Second},
		baseURL:  baseURL,
		username: username,
		token:    token,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Fetch retrieves a single ticket by id.
func (h *HTTPClient) Fetch(ctx context.Context, id string) (*RawTicket, error) {
	url := fmt.Sprintf("%s/rest/api/2/issue/%s", h.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("tracker: create request: %w", err)
	}
	req.SetBasicAuth(h.username, h.token)
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, &faults.TransientError{Op: "tracker: fetch " + id, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &faults.TransientError{Op: "tracker: read response", Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("ticket %s: %w", id, ErrNotFound)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("ticket %s: %w", id, ErrPermission)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, &faults.TransientError{
			Op:  "tracker: fetch " + id,
			Err: fmt.Errorf("api error (status %d)", resp.StatusCode),
		}
	default:
		return nil, fmt.Errorf("tracker: fetch %s: api error (status %d): %s", id, resp.StatusCode, string(body))
	}

	var raw RawTicket
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("tracker: unmarshal ticket %s: %w", id, err)
	}
	return &raw, nil
}
