// Package graphql implements a minimal GraphQL-over-HTTP client.
// Operations are fixed, pre-declared documents; there is no schema
// introspection or code generation.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"offer-storefront/internal/transport"
)

// TokenSource supplies the bearer token for backend requests.
// Injected so tests can run against fake backends without credentials.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource returns a TokenSource that always yields the given
// token. An empty token disables the Authorization header, which the
// read-only catalog queries allow.
func StaticTokenSource(token string) TokenSource {
	return staticTokenSource(token)
}

type staticTokenSource string

func (s staticTokenSource) Token(context.Context) (string, error) {
	return string(s), nil
}

// Config holds client configuration.
type Config struct {
	// URL is the GraphQL endpoint.
	URL string

	// Tokens supplies the bearer token. Required; use
	// StaticTokenSource("") for unauthenticated access.
	Tokens TokenSource

	// Timeout bounds each round-trip. Defaults to 30s.
	Timeout time.Duration

	// HTTPClient overrides the default client. Used by tests; when nil
	// a client with the Chrome fingerprint transport is built.
	HTTPClient *http.Client

	// Observe, when set, is called after every operation with its name,
	// duration, and outcome.
	Observe func(operation string, d time.Duration, err error)
}

// Client executes GraphQL operations against a single endpoint.
// Safe for concurrent use; holds no per-request state.
type Client struct {
	httpClient *http.Client
	url        string
	tokens     TokenSource
	observe    func(string, time.Duration, error)
}

// New creates a Client from the configuration.
func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("graphql endpoint URL is required")
	}
	if cfg.Tokens == nil {
		return nil, fmt.Errorf("token source is required")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   timeout,
			Transport: transport.NewChromeTransport(timeout),
		}
	}

	return &Client{
		httpClient: httpClient,
		url:        cfg.URL,
		tokens:     cfg.Tokens,
		observe:    cfg.Observe,
	}, nil
}

// request is the GraphQL-over-HTTP request envelope.
type request struct {
	OperationName string         `json:"operationName,omitempty"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
}

// response is the GraphQL-over-HTTP response envelope.
type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []ResponseError `json:"errors,omitempty"`
}

// ResponseError is one entry of a GraphQL errors array.
type ResponseError struct {
	Message string `json:"message"`
}

// Errors aggregates the errors array of a GraphQL response.
type Errors []ResponseError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, re := range e {
		msgs[i] = re.Message
	}
	return strings.Join(msgs, "; ")
}

// Do executes one operation and decodes the data object into out.
// Transport failures, non-2xx statuses, and a non-empty errors array all
// return an error; out may be nil when the caller ignores the data.
func (c *Client) Do(ctx context.Context, operation, query string, variables map[string]any, out any) error {
	start := time.Now()
	err := c.do(ctx, operation, query, variables, out)
	if c.observe != nil {
		c.observe(operation, time.Since(start), err)
	}
	return err
}

func (c *Client) do(ctx context.Context, operation, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(request{
		OperationName: operation,
		Query:         query,
		Variables:     variables,
	})
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("resolving token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain enough of the body for a useful error without echoing
		// megabytes of upstream HTML.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s: status %d: %s", operation, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var envelope response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decoding %s response: %w", operation, err)
	}

	if len(envelope.Errors) > 0 {
		return Errors(envelope.Errors)
	}

	if out != nil {
		if envelope.Data == nil {
			return fmt.Errorf("%s: response contained no data", operation)
		}
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("decoding %s data: %w", operation, err)
		}
	}

	return nil
}
