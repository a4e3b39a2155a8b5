package llm

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
)

// DefaultTimeout bounds a single round trip when the config does not set one.
const DefaultTimeout = 2 * time.Minute

// ErrUnauthorized is matched by StatusError for 401 and 403 responses.
var ErrUnauthorized = errors.New("invalid API key")

// ErrRateLimited is matched by StatusError for 429 responses.
var ErrRateLimited = errors.New("rate limited")

// StatusError is returned when an API answers with a non-2xx status.
type StatusError struct {
	Provider string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 300 {
		body = body[:300] + "..."
	}
	return fmt.Sprintf("%s error (status %d): %s", e.Provider, e.Code, body)
}

func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Code == http.StatusUnauthorized || e.Code == http.StatusForbidden
	case ErrRateLimited:
		return e.Code == http.StatusTooManyRequests
	}
	return false
}

// apiClient is the JSON-over-HTTP plumbing shared by the providers.
type apiClient struct {
	provider   string
	baseURL    string
	headers    map[string]string
	httpClient *http.Client
}

func newAPIClient(provider, baseURL string, timeout time.Duration) apiClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return apiClient{
		provider: provider,
		baseURL:  strings.TrimRight(baseURL, "/"),
		headers:  make(map[string]string),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *apiClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

func (c *apiClient) do(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", c.provider, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		resp.Body.Close()
		return nil, &StatusError{Provider: c.provider, Code: resp.StatusCode, Body: string(body)}
	}

	return resp, nil
}

// postJSON marshals payload, POSTs it to path and decodes the 2xx response
// body into dest.
func (c *apiClient) postJSON(ctx context.Context, path string, payload, dest any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", c.provider, err)
	}

	return nil
}

// get issues a GET and discards the body; used by Ping.
func (c *apiClient) get(ctx context.Context, path string) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()

	return nil
}
