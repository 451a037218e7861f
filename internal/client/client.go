package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"maize_maturity"
)

const (
	DefaultBaseURL = "http://127.0.0.1:10000"

	defaultClientTimeout         = 10 * time.Second
	defaultResponseHeaderTimeout = 5 * time.Second
	defaultDialerTimeout         = 2 * time.Second
	defaultIdleConnTimeout       = 90 * time.Second

	maxResponseBody = 1 << 20
)

// ErrConnect marks transport failures: the server was never reached or dropped the connection.
var ErrConnect = errors.New("failed to connect to server")

// APIError is a non-2xx answer from the service.
type APIError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "Unknown error"
	}
	if e.Details != "" {
		return fmt.Sprintf("%s (%d): %s", msg, e.StatusCode, e.Details)
	}
	return fmt.Sprintf("%s (%d)", msg, e.StatusCode)
}

// Config captures the tunables of the HTTP client. Zero values are replaced by defaults.
type Config struct {
	BaseURL               string
	Timeout               time.Duration
	ResponseHeaderTimeout time.Duration
	DialerTimeout         time.Duration
	HTTPClient            *http.Client
}

type Option func(*Config)

func WithBaseURL(u string) Option { return func(c *Config) { c.BaseURL = u } }

func WithTimeout(d time.Duration) Option { return func(c *Config) { c.Timeout = d } }

func WithResponseHeaderTimeout(d time.Duration) Option {
	return func(c *Config) { c.ResponseHeaderTimeout = d }
}

// WithHTTPClient replaces the transport entirely; timeouts are then the caller's concern.
func WithHTTPClient(hc *http.Client) Option { return func(c *Config) { c.HTTPClient = hc } }

// Client talks to the prediction service. Every call is one request, no retries.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(opts ...Option) *Client {
	cfg := Config{
		BaseURL:               DefaultBaseURL,
		Timeout:               defaultClientTimeout,
		ResponseHeaderTimeout: defaultResponseHeaderTimeout,
		DialerTimeout:         defaultDialerTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	sanitize(&cfg)

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				DialContext:           (&net.Dialer{Timeout: cfg.DialerTimeout}).DialContext,
				ResponseHeaderTimeout: cfg.ResponseHeaderTimeout,
				IdleConnTimeout:       defaultIdleConnTimeout,
			},
		}
	}
	return &Client{baseURL: cfg.BaseURL, http: hc}
}

func sanitize(c *Config) {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultClientTimeout
	}
	if c.ResponseHeaderTimeout <= 0 {
		c.ResponseHeaderTimeout = defaultResponseHeaderTimeout
	}
	if c.DialerTimeout <= 0 {
		c.DialerTimeout = defaultDialerTimeout
	}
}

// BaseURL returns the service root the client posts to.
func (c *Client) BaseURL() string { return c.baseURL }

// Predict posts one sample to /predict. A body without "prediction" is an error
// even on 2xx.
func (c *Client) Predict(ctx context.Context, req maize_maturity.PredictRequest) (maize_maturity.PredictResponse, error) {
	var out maize_maturity.PredictResponse

	payload, err := json.Marshal(req)
	if err != nil {
		return out, fmt.Errorf("encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return out, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	body, status, err := c.do(httpReq)
	if err != nil {
		return out, err
	}
	if status < 200 || status > 299 {
		return out, decodeAPIError(status, body)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return out, &APIError{StatusCode: status, Message: "malformed response"}
	}
	if _, ok := raw["prediction"]; !ok {
		return out, decodeAPIError(status, body)
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, &APIError{StatusCode: status, Message: "malformed response"}
	}
	return out, nil
}

// Health fetches /health. The endpoint answers 200 in both healthy and degraded state.
func (c *Client) Health(ctx context.Context) (maize_maturity.HealthResponse, error) {
	var out maize_maturity.HealthResponse

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return out, fmt.Errorf("build request: %w", err)
	}
	body, status, err := c.do(httpReq)
	if err != nil {
		return out, err
	}
	if status != http.StatusOK {
		return out, decodeAPIError(status, body)
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, &APIError{StatusCode: status, Message: "malformed response"}
	}
	return out, nil
}

func (c *Client) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrConnect, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: read response: %w", ErrConnect, err)
	}
	return body, resp.StatusCode, nil
}

func decodeAPIError(status int, body []byte) error {
	var e maize_maturity.ErrorResponse
	if err := json.Unmarshal(body, &e); err != nil || e.Error == "" {
		return &APIError{StatusCode: status, Message: http.StatusText(status)}
	}
	return &APIError{StatusCode: status, Message: e.Error, Details: e.Details}
}
