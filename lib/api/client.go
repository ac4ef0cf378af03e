// Copyright 2026 The Sentinel Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/sentinel-ops/sentinel/lib/clock"
)

// apiPrefix is the path prefix the service mounts its routes under.
const apiPrefix = "/api"

// maxResponseSize caps how much of a response body the client reads.
// The largest documented response is the full resource collection;
// one megabyte leaves generous headroom.
const maxResponseSize = 1 << 20

// Config holds configuration for creating a Client.
type Config struct {
	// BaseURL is the service's root URL (e.g., "https://ops.example.com").
	// The client appends the "/api" route prefix itself. Required.
	BaseURL string

	// HTTPClient is used for all requests. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client

	// Clock provides time for request duration logging. Defaults to
	// clock.Real().
	Clock clock.Clock

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client is a typed client for the security service's REST contract.
// Safe for use from multiple goroutines; the attached token is read
// atomically per request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	clock      clock.Clock
	logger     *slog.Logger

	// token holds the currently attached bearer credential as a
	// string. Empty means unauthenticated. Written only by the
	// session store via SetToken/ClearToken.
	token atomic.Value
}

// NewClient creates a Client from the given configuration. Returns an
// error if BaseURL is missing or has no http/https scheme.
func NewClient(config Config) (*Client, error) {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("api: BaseURL is required")
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("api: BaseURL must be an http or https URL (got %q)", config.BaseURL)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client := &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		clock:      clk,
		logger:     logger,
	}
	client.token.Store("")
	return client, nil
}

// SetToken attaches a credential to all subsequent requests. The
// session store is the only caller.
func (client *Client) SetToken(token string) {
	client.token.Store(token)
}

// ClearToken detaches the credential. Subsequent requests go out
// unauthenticated.
func (client *Client) ClearToken() {
	client.token.Store("")
}

// do executes one request against the service. The path is relative to
// the /api prefix (e.g., "/resources"). A non-nil requestBody is JSON
// encoded. Non-2xx responses return *APIError; transport failures
// return plain wrapped errors.
func (client *Client) do(ctx context.Context, method, path string, requestBody any) ([]byte, error) {
	url := client.baseURL + apiPrefix + path

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("api: encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("api: creating request: %w", err)
	}

	request.Header.Set("Accept", "application/json")
	request.Header.Set("X-Request-ID", uuid.NewString())
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token, _ := client.token.Load().(string); token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	started := client.clock.Now()
	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("api: %s %s: %w", method, url, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("api: reading response body: %w", err)
	}

	client.logger.Debug("request complete",
		"method", method,
		"path", path,
		"status", response.StatusCode,
		"duration", client.clock.Now().Sub(started),
	)

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, parseAPIError(response.StatusCode, body)
	}
	return body, nil
}

// get executes a GET and decodes the JSON response into result.
func (client *Client) get(ctx context.Context, path string, result any) error {
	body, err := client.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("api: decoding %s response: %w", path, err)
	}
	return nil
}

// post executes a POST with a JSON body, decoding into result when
// result is non-nil.
func (client *Client) post(ctx context.Context, path string, requestBody, result any) error {
	body, err := client.do(ctx, http.MethodPost, path, requestBody)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("api: decoding %s response: %w", path, err)
	}
	return nil
}

// put executes a PUT with an optional JSON body, decoding into result
// when result is non-nil.
func (client *Client) put(ctx context.Context, path string, requestBody, result any) error {
	body, err := client.do(ctx, http.MethodPut, path, requestBody)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("api: decoding %s response: %w", path, err)
	}
	return nil
}

// delete executes a DELETE, discarding the response body.
func (client *Client) delete(ctx context.Context, path string) error {
	_, err := client.do(ctx, http.MethodDelete, path, nil)
	return err
}
