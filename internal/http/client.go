// Package http implements the single-attempt JSON transport used by the Data
// API client.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/dataapi/internal/constants"
	"github.com/fivetwenty-io/dataapi/pkg/dataapi"
)

// Logger is the logging contract of the transport.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Observer is notified once per dispatched request. statusCode is zero when
// no response was received.
type Observer func(method, path string, statusCode int, duration time.Duration, err error)

// Request is a single outbound call.
type Request struct {
	Method  string
	Path    string
	Body    interface{}
	Headers map[string]string
}

// Response holds a fully read response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client sends requests to a fixed base URL with a fixed header set. It never
// retries and configures no timeout of its own.
type Client struct {
	baseURL  string
	headers  map[string]string
	client   *retryablehttp.Client
	logger   Logger
	debug    bool
	observer Observer
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.client.HTTPClient = httpClient
		}
	}
}

// WithObserver registers a callback invoked after every dispatched request.
func WithObserver(observer Observer) Option {
	return func(c *Client) {
		c.observer = observer
	}
}

// NewClient creates a transport for baseURL. headers are sent with every
// request; the map is copied.
func NewClient(baseURL string, headers map[string]string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.CheckRetry = neverRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	fixed := make(map[string]string, len(headers))
	for key, value := range headers {
		fixed[key] = value
	}

	client := &Client{
		baseURL: baseURL,
		headers: fixed,
		client:  retryClient,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.debug && client.logger != nil {
		retryClient.Logger = &leveledLogger{logger: client.logger}
	}

	return client
}

// BaseURL returns the URL every request path is appended to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs req exactly once. A non-2xx status returns the response together
// with a *dataapi.StatusError. Failures before dispatch return a
// *dataapi.RequestError and transport failures a *dataapi.NoResponseError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	body, err := encodeBody(req.Body)
	if err != nil {
		return nil, &dataapi.RequestError{Err: err}
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, c.baseURL+req.Path, body)
	if err != nil {
		return nil, &dataapi.RequestError{Err: err}
	}

	for key, value := range c.headers {
		httpReq.Header.Set(key, value)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    httpReq.URL.String(),
			"body":   string(body),
		})
	}

	start := time.Now()

	resp, err := c.client.Do(httpReq)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
		}

		c.observe(req, 0, start, err)

		return nil, &dataapi.NoResponseError{Err: err}
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(req, resp.StatusCode, start, err)

		return nil, &dataapi.NoResponseError{Err: fmt.Errorf("reading response body: %w", err)}
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status_code": resp.StatusCode,
			"body":        string(respBody),
			"duration":    time.Since(start).String(),
		})
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		statusErr := &dataapi.StatusError{StatusCode: resp.StatusCode, Body: respBody}
		c.observe(req, resp.StatusCode, start, statusErr)

		return response, statusErr
	}

	c.observe(req, resp.StatusCode, start, nil)

	return response, nil
}

// Post sends body as JSON to path.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
}

func (c *Client) observe(req *Request, statusCode int, start time.Time, err error) {
	if c.observer != nil {
		c.observer(req.Method, req.Path, statusCode, time.Since(start), err)
	}
}

func encodeBody(body interface{}) ([]byte, error) {
	if body == nil {
		return nil, nil
	}

	if raw, ok := body.([]byte); ok {
		return raw, nil
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	return data, nil
}

// neverRetry stops after the first attempt whatever its outcome.
func neverRetry(_ context.Context, _ *http.Response, _ error) (bool, error) {
	return false, nil
}

// DefaultHeaders returns the fixed header set for an API key.
func DefaultHeaders(apiKey string) map[string]string {
	return map[string]string{
		constants.HeaderContentType: constants.ContentTypeJSON,
		constants.HeaderAPIKey:      apiKey,
	}
}
