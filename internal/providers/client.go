// Package providers contains the thin HTTP clients for each platform API.
// Every client performs at most one outbound HTTPS call per operation once
// given a bearer token; no state is shared between calls.
package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"socialportal/internal/common"
)

// maxResponseSize caps provider response bodies to prevent OOM from
// unexpectedly large responses.
const maxResponseSize = 10 << 20 // 10MB

// defaultTimeout bounds every provider call.
const defaultTimeout = 60 * time.Second

// restClient is the shared HTTP plumbing for all platform clients.
type restClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
}

// ClientOption configures a platform client.
type ClientOption func(*restClient)

// WithBaseURL overrides the platform API base URL. Used by tests to point
// a client at a local server.
func WithBaseURL(u string) ClientOption {
	return func(c *restClient) { c.baseURL = u }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *restClient) { c.httpClient = hc }
}

func newRESTClient(baseURL string, logger *common.Logger, opts ...ClientOption) *restClient {
	c := &restClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs a GET request with a bearer token.
func (c *restClient) get(ctx context.Context, path, accessToken string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, accessToken, nil)
}

// postJSON performs a POST request with a JSON body and a bearer token.
func (c *restClient) postJSON(ctx context.Context, path, accessToken string, data interface{}) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, accessToken, data)
}

func (c *restClient) do(ctx context.Context, method, path, accessToken string, data interface{}) ([]byte, error) {
	c.logger.Debug().Str("method", method).Str("path", path).Msg("provider request")

	var bodyReader io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.Error().Str("method", method).Str("path", path).Int64("duration_ms", duration.Milliseconds()).Str("error", err.Error()).Msg("provider request failed")
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug().Int("status", resp.StatusCode).Int64("duration_ms", duration.Milliseconds()).Msg("provider response")

	if resp.StatusCode >= 400 {
		return nil, parseErrorResponse(resp.StatusCode, body)
	}

	return body, nil
}

// parseErrorResponse extracts a meaningful message from a provider error
// body. The platforms disagree on error shapes, so several are tried.
func parseErrorResponse(statusCode int, body []byte) error {
	// Graph-style: {"error": {"message": "..."}}
	var graphErr struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &graphErr) == nil && graphErr.Error.Message != "" {
		return fmt.Errorf("%s", graphErr.Error.Message)
	}

	// Flat: {"error": "..."} or Twitter's {"detail": "..."}
	var flatErr struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &flatErr) == nil {
		if flatErr.Error != "" {
			return fmt.Errorf("%s", flatErr.Error)
		}
		if flatErr.Detail != "" {
			return fmt.Errorf("%s", flatErr.Detail)
		}
	}

	return fmt.Errorf("provider returned %d: %s", statusCode, string(body))
}
