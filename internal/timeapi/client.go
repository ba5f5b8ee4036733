package timeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Fetcher defines the interface for fetching timezone data.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	ListTimezones(ctx context.Context) ([]string, error)
	FetchZone(ctx context.Context, id string) (Zone, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to a world time REST API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultBaseURL   = "https://worldtimeapi.org/api"
	defaultUserAgent = "zoneclock/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for the given API base URL.
func NewClient(baseURL string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// ListTimezones retrieves the full list of timezone identifiers.
func (c *Client) ListTimezones(ctx context.Context) ([]string, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var ids []string
	if err := c.do(ctx, "/timezone", &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// FetchZone retrieves the current offset and next DST transition window for
// one timezone identifier.
func (c *Client) FetchZone(ctx context.Context, id string) (Zone, error) {
	if c == nil {
		return Zone{}, fmt.Errorf("client is nil")
	}
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return Zone{}, fmt.Errorf("timezone id required")
	}
	var payload zoneResponse
	if err := c.do(ctx, "/timezone/"+trimmed, &payload); err != nil {
		return Zone{}, err
	}
	return payload.toZone(trimmed), nil
}

// Ping issues a cheap request against the timezone list endpoint and
// discards the body. Used by the connectivity watcher.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, "/timezone", nil)
}

func (c *Client) do(ctx context.Context, path string, dest any) error {
	reqURL := *c.baseURL
	reqURL.Path += path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", path, resp.StatusCode)
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", baseURL, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
