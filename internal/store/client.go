// Package store is the adapter for the remote path-addressed document store.
// Every node in the tree is reachable over the store's REST surface as
// <base>/<path>.json; a read of an absent node yields the JSON literal null.
package store

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

	"github.com/rs/zerolog"

	"github.com/smileworks/dentaldesk/internal/model"
)

type Config struct {
	BaseURL   string
	AuthToken string
	Timeout   time.Duration
}

// Client is a thin JSON-over-HTTP client for the store. All methods are
// blocking; a failure to reach the store surfaces as model.ErrStoreUnavailable
// and is never retried here.
type Client struct {
	baseURL   string
	authToken string
	http      *http.Client
	logger    zerolog.Logger
}

func New(cfg Config, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		authToken: cfg.AuthToken,
		http:      &http.Client{Timeout: timeout},
		logger:    logger.With().Str("component", "store").Logger(),
	}
}

// Get reads the node at path into out. It returns false with a nil error when
// the node does not exist; a read miss is not an error.
func (c *Client) Get(ctx context.Context, path string, out interface{}) (bool, error) {
	body, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return false, err
	}
	if isNull(body) {
		return false, nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return false, fmt.Errorf("failed to decode node %s: %w", path, err)
	}
	return true, nil
}

// Set writes value at path, replacing whatever was there.
func (c *Client) Set(ctx context.Context, path string, value interface{}) error {
	_, err := c.do(ctx, http.MethodPut, path, value, nil)
	return err
}

// Delete removes the node at path. Deleting an absent node is a no-op on the
// store side and is not reported as an error.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// Push appends value under path with a store-generated unique key and
// returns that key.
func (c *Client) Push(ctx context.Context, path string, value interface{}) (string, error) {
	body, err := c.do(ctx, http.MethodPost, path, value, nil)
	if err != nil {
		return "", err
	}
	var resp struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode push response: %w", err)
	}
	if resp.Name == "" {
		return "", fmt.Errorf("store returned no key for push to %s", path)
	}
	return resp.Name, nil
}

// QueryEqual reads every child of path whose named child field string-equals
// value. out receives the resulting object keyed by child id; an empty result
// decodes as null and leaves out untouched.
func (c *Client) QueryEqual(ctx context.Context, path, child, value string, out interface{}) (bool, error) {
	q := url.Values{}
	q.Set("orderBy", jsonQuote(child))
	q.Set("equalTo", jsonQuote(value))
	body, err := c.do(ctx, http.MethodGet, path, nil, q)
	if err != nil {
		return false, err
	}
	if isNull(body) {
		return false, nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return false, fmt.Errorf("failed to decode query on %s: %w", path, err)
	}
	return true, nil
}

// Keys lists the child keys of path without fetching their subtrees, using
// the store's shallow read. Empty slice when the node is absent.
func (c *Client) Keys(ctx context.Context, path string) ([]string, error) {
	q := url.Values{}
	q.Set("shallow", "true")
	body, err := c.do(ctx, http.MethodGet, path, nil, q)
	if err != nil {
		return nil, err
	}
	if isNull(body) {
		return []string{}, nil
	}
	var shallow map[string]json.RawMessage
	if err := json.Unmarshal(body, &shallow); err != nil {
		return nil, fmt.Errorf("failed to decode shallow read of %s: %w", path, err)
	}
	keys := make([]string, 0, len(shallow))
	for k := range shallow {
		keys = append(keys, k)
	}
	return keys, nil
}

// Ping performs a cheap shallow read of the tree root to verify the store is
// reachable.
func (c *Client) Ping(ctx context.Context) error {
	q := url.Values{}
	q.Set("shallow", "true")
	_, err := c.do(ctx, http.MethodGet, "", nil, q)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, value interface{}, query url.Values) ([]byte, error) {
	var reqBody io.Reader
	if value != nil {
		buf, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode value for %s: %w", path, err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.urlFor(path, query), reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build store request: %w", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("method", method).Str("path", path).Msg("store request failed")
		return nil, fmt.Errorf("%w: %s %s: %s", model.ErrStoreUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response for %s: %s", model.ErrStoreUnavailable, path, err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("store call")

	// The store itself answers absent nodes with 200 and a null body; a
	// proxy fronting it may answer 404 instead. Both read as a miss.
	if resp.StatusCode == http.StatusNotFound {
		return []byte("null"), nil
	}
	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("%w: %s %s returned %d", model.ErrStoreUnavailable, method, path, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("store rejected %s %s: %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

func (c *Client) urlFor(path string, query url.Values) string {
	var b strings.Builder
	b.WriteString(c.baseURL)
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		b.WriteString("/")
		b.WriteString(url.PathEscape(seg))
	}
	b.WriteString(".json")

	if c.authToken != "" {
		if query == nil {
			query = url.Values{}
		}
		query.Set("auth", c.authToken)
	}
	if len(query) > 0 {
		b.WriteString("?")
		b.WriteString(query.Encode())
	}
	return b.String()
}

// jsonQuote wraps s in JSON string quotes, the form the store's query
// parameters expect.
func jsonQuote(s string) string {
	buf, _ := json.Marshal(s)
	return string(buf)
}

func isNull(body []byte) bool {
	return len(bytes.TrimSpace(body)) == 0 || bytes.Equal(bytes.TrimSpace(body), []byte("null"))
}
