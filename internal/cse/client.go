package cse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"csekit/internal/config"
	"csekit/internal/logger"
)

// Response is the uniform envelope returned by every client operation. Data
// holds the raw JSON body and is set only on success; Error is set only on
// failure. StatusCode is 0 when no HTTP status was observed.
type Response struct {
	Success    bool            `json:"success"`
	StatusCode int             `json:"status_code"`
	Data       json.RawMessage `json:"data,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// Decode unmarshals the payload into v. It fails on failure envelopes.
func (r *Response) Decode(v interface{}) error {
	if !r.Success {
		return fmt.Errorf("cannot decode failed response: %s", r.Error)
	}
	return json.Unmarshal(r.Data, v)
}

// Client issues POST requests against the CSE public API and wraps every
// result in the Response envelope. Calls are paced by a shared rate limiter
// but never retried.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        logger.Logger
}

// NewClient creates a client from API configuration.
func NewClient(cfg *config.APIConfig) *Client {
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), burst),
		log:        logger.Default().WithField("component", "cse_client"),
	}
}

// do executes one POST against baseURL + endpoint. Transport errors, non-200
// statuses and undecodable bodies all surface as failure envelopes, never as
// Go errors.
func (c *Client) do(ctx context.Context, endpoint string, params url.Values) *Response {
	requestID := uuid.NewString()
	start := time.Now()

	if err := c.limiter.Wait(ctx); err != nil {
		return c.fail(endpoint, requestID, 0, fmt.Sprintf("rate limit wait: %v", err))
	}

	var body io.Reader
	if params != nil {
		body = strings.NewReader(params.Encode())
	} else {
		body = strings.NewReader("")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, body)
	if err != nil {
		return c.fail(endpoint, requestID, 0, fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(endpoint, requestID, 0, fmt.Sprintf("request failed: %v", err))
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.fail(endpoint, requestID, resp.StatusCode, fmt.Sprintf("read body: %v", err))
	}

	if resp.StatusCode != http.StatusOK {
		return c.fail(endpoint, requestID, resp.StatusCode,
			fmt.Sprintf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(payload))))
	}

	if !json.Valid(payload) {
		return c.fail(endpoint, requestID, resp.StatusCode, "failed to decode JSON response")
	}

	c.log.Debug("request completed",
		"endpoint", endpoint,
		"request_id", requestID,
		"status", resp.StatusCode,
		"duration", time.Since(start).String(),
	)

	return &Response{
		Success:    true,
		StatusCode: resp.StatusCode,
		Data:       json.RawMessage(payload),
	}
}

func (c *Client) fail(endpoint, requestID string, status int, msg string) *Response {
	c.log.Warn("request failed",
		"endpoint", endpoint,
		"request_id", requestID,
		"status", status,
		"error", msg,
	)
	return &Response{
		Success:    false,
		StatusCode: status,
		Error:      msg,
	}
}
