package feature

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout     = 15 * time.Second
	defaultMaxBodySize = 1 << 20 // 1MiB
)

// ClientConfig configures a resource client.
type ClientConfig struct {
	// BaseURL is the API root the resource lives under, e.g.
	// http://localhost:8080/api.
	BaseURL string
	// Resource is the path segment of the REST resource, e.g. "notes". It is
	// also interpolated into failure messages.
	Resource string
	// HTTPClient executes requests. When nil, a default client with a
	// conservative timeout is used.
	HTTPClient *http.Client
	// AuthToken, when set, is sent as a bearer token on every request.
	AuthToken string
	// MaxBodyBytes caps response bodies to prevent memory exhaustion.
	MaxBodyBytes int64
}

// Client issues CRUD requests against one REST resource. Every non-2xx
// response is reported as a single uniform failure; the response body is
// otherwise decoded into T unchanged.
type Client[T any] struct {
	baseURL      string
	resource     string
	httpClient   *http.Client
	authToken    string
	maxBodyBytes int64
}

// NewClient creates a resource client.
func NewClient[T any](cfg ClientConfig) (*Client[T], error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("feature: BaseURL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("feature: BaseURL must be a valid URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("feature: BaseURL scheme must be http or https")
	}

	resource := strings.Trim(strings.TrimSpace(cfg.Resource), "/")
	if resource == "" {
		return nil, fmt.Errorf("feature: Resource is required")
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	maxBodyBytes := cfg.MaxBodyBytes
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodySize
	}

	return &Client[T]{
		baseURL:      baseURL,
		resource:     resource,
		httpClient:   client,
		authToken:    cfg.AuthToken,
		maxBodyBytes: maxBodyBytes,
	}, nil
}

// List fetches the whole collection.
func (c *Client[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := c.do(ctx, http.MethodGet, c.collectionURL(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches a single record by id.
func (c *Client[T]) Get(ctx context.Context, id string) (T, error) {
	var out T
	if err := c.do(ctx, http.MethodGet, c.recordURL(id), nil, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Create posts the DTO and returns the stored record.
func (c *Client[T]) Create(ctx context.Context, dto any) (T, error) {
	var out T
	if err := c.do(ctx, http.MethodPost, c.collectionURL(), dto, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Update patches a record with the partial DTO and returns the result.
func (c *Client[T]) Update(ctx context.Context, id string, dto any) (T, error) {
	var out T
	if err := c.do(ctx, http.MethodPatch, c.recordURL(id), dto, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Delete removes a record by id.
func (c *Client[T]) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.recordURL(id), nil, nil)
}

func (c *Client[T]) collectionURL() string {
	return c.baseURL + "/" + c.resource
}

func (c *Client[T]) recordURL(id string) string {
	return c.collectionURL() + "/" + url.PathEscape(id)
}

func (c *Client[T]) do(ctx context.Context, method, endpoint string, payload, dst any) error {
	var body io.Reader = http.NoBody
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("feature: encode %s payload: %w", c.resource, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("feature: create %s request: %w", c.resource, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("feature: execute %s request: %w", c.resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s request failed: %s", c.resource, resp.Status)
	}

	if dst == nil {
		return nil
	}
	dec := json.NewDecoder(io.LimitReader(resp.Body, c.maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("feature: decode %s response: %w", c.resource, err)
	}
	return nil
}
