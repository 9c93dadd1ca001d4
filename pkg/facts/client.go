// Package facts provides a client for the remote facts collection resource.
//
// The collection exposes exactly two operations on a single path:
//
//	GET  /facts  -> JSON array of {"text": string, ...}
//	POST /facts  <- {"text": string}
//
// Anything else about the backend (ordering, ids, persistence) is opaque.
package facts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/papercomputeco/factboard/pkg/fact"
	"github.com/papercomputeco/factboard/pkg/logger"
	"github.com/papercomputeco/factboard/pkg/utils"
)

const (
	// CollectionPath is the path of the collection resource under the base URL.
	CollectionPath = "/facts"

	// DefaultBaseURL is the public backend the widget was first written against.
	DefaultBaseURL = "https://the-abyss-backend.up.railway.app"

	// DefaultTimeout bounds a single request when Config.Timeout is zero.
	DefaultTimeout = 15 * time.Second

	// errorBodyLimit caps how much of a failed response is kept in a StatusError.
	errorBodyLimit = 512
)

// ErrNoTarget is returned by NewClient when no base URL is configured.
var ErrNoTarget = errors.New("facts collection base URL is required")

// Config is the collection client configuration.
type Config struct {
	// BaseURL is the scheme and host of the backend (e.g. "http://localhost:3000").
	// A trailing slash or path prefix is allowed; CollectionPath is appended.
	BaseURL string

	// Timeout bounds each request. Defaults to DefaultTimeout.
	Timeout time.Duration

	// HTTPClient overrides the underlying client. Timeout is ignored when set.
	HTTPClient *http.Client

	// Logger defaults to a no-op logger.
	Logger *slog.Logger
}

// Client talks to the facts collection resource.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a collection client for the configured base URL.
func NewClient(c Config) (*Client, error) {
	if strings.TrimSpace(c.BaseURL) == "" {
		return nil, ErrNoTarget
	}

	base, err := url.Parse(strings.TrimSpace(c.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid facts base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid facts base URL %q: scheme must be http or https", c.BaseURL)
	}
	base.Path = strings.TrimSuffix(base.Path, "/") + CollectionPath

	httpClient := c.HTTPClient
	if httpClient == nil {
		timeout := c.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	log := c.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &Client{
		endpoint:   base.String(),
		httpClient: httpClient,
		logger:     log,
	}, nil
}

// Endpoint returns the absolute URL of the collection resource.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// List fetches the full collection in the order the backend returns it.
func (c *Client) List(ctx context.Context) ([]fact.Fact, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating list request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{Method: http.MethodGet, URL: c.endpoint, Err: err}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Method: http.MethodGet, URL: c.endpoint, Err: err}
	}

	var list []fact.Fact
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, &DecodeError{URL: c.endpoint, Err: err}
	}
	if list == nil {
		list = []fact.Fact{}
	}

	c.logger.Debug("listed facts",
		"url", c.endpoint,
		"count", len(list),
		"elapsed", time.Since(start),
	)

	return list, nil
}

// Create asks the collection to append a fact with the given text.
// The text is sent verbatim, empty strings included. The response body is
// drained and discarded; only the status is checked.
func (c *Client) Create(ctx context.Context, text string) error {
	payload, err := json.Marshal(fact.New(text))
	if err != nil {
		return fmt.Errorf("marshaling fact: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RequestError{Method: http.MethodPost, URL: c.endpoint, Err: err}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	c.logger.Debug("created fact",
		"url", c.endpoint,
		"status", resp.StatusCode,
		"text", utils.Truncate(text, 64),
	)

	return nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	return &StatusError{
		Method:     resp.Request.Method,
		URL:        resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}
