package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/dataapi/internal/constants"
	"github.com/fivetwenty-io/dataapi/internal/http"
	"github.com/fivetwenty-io/dataapi/internal/logging"
	"github.com/fivetwenty-io/dataapi/pkg/dataapi"
)

// Client implements the dataapi.Client interface.
type Client struct {
	httpClient        *http.Client
	logger            dataapi.Logger
	defaultDataSource string
	defaultDatabase   string
}

var _ dataapi.Client = (*Client)(nil)

// BaseURL builds the Data API base URL for config. Endpoint wins over AppID.
func BaseURL(config *dataapi.Config) string {
	if config.Endpoint != "" {
		return strings.TrimSuffix(config.Endpoint, "/")
	}

	return fmt.Sprintf(constants.BaseURLTemplate, constants.DefaultHost, config.AppID)
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *dataapi.Config, logger dataapi.Logger) []http.Option {
	httpOpts := []http.Option{http.WithLogger(logger)}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, http.WithHTTPClient(config.HTTPClient))
	}

	return httpOpts
}

// New creates a client. It performs no I/O and no validation; a nil config is
// treated as an empty one.
func New(config *dataapi.Config, opts ...http.Option) *Client {
	if config == nil {
		config = &dataapi.Config{}
	}

	var logger dataapi.Logger = config.Logger
	if logger == nil {
		logger = logging.NewProduction()
	}

	httpOpts := append(createHTTPClientOptions(config, logger), opts...)

	return &Client{
		httpClient:        http.NewClient(BaseURL(config), http.DefaultHeaders(config.APIKey), httpOpts...),
		logger:            logger,
		defaultDataSource: config.DefaultDataSource,
		defaultDatabase:   config.DefaultDatabase,
	}
}

// NewWithHTTPClient creates a client over an existing transport.
func NewWithHTTPClient(httpClient *http.Client, logger dataapi.Logger, defaultDataSource, defaultDatabase string) *Client {
	if logger == nil {
		logger = logging.Nop()
	}

	return &Client{
		httpClient:        httpClient,
		logger:            logger,
		defaultDataSource: defaultDataSource,
		defaultDatabase:   defaultDatabase,
	}
}

// BaseURL returns the base URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.httpClient.BaseURL()
}

// Call implements dataapi.Caller. It merges the client defaults into request,
// sends it to action once, and decodes a successful body into response. Every
// failure is logged before it is returned.
func (c *Client) Call(ctx context.Context, action dataapi.Action, request interface{}, response interface{}) error {
	payload, err := c.buildPayload(request)
	if err != nil {
		return c.handleRequestError(action, &dataapi.RequestError{Err: err})
	}

	resp, err := c.httpClient.Post(ctx, string(action), payload)
	if err != nil {
		return c.handleRequestError(action, err)
	}

	if response == nil || len(resp.Body) == 0 {
		return nil
	}

	err = json.Unmarshal(resp.Body, response)
	if err != nil {
		return c.handleRequestError(action, &dataapi.RequestError{Err: fmt.Errorf("parsing %s response: %w", action.Name(), err)})
	}

	return nil
}

// buildPayload shallow-merges request with the configured defaults. A
// dataSource or database that is absent or falsy falls back to the default;
// when the default is empty too the key is left out.
func (c *Client) buildPayload(request interface{}) (map[string]json.RawMessage, error) {
	data, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	var payload map[string]json.RawMessage

	err = json.Unmarshal(data, &payload)
	if err != nil || payload == nil {
		return nil, dataapi.ErrNotJSONObject
	}

	err = mergeDefault(payload, "dataSource", c.defaultDataSource)
	if err != nil {
		return nil, err
	}

	err = mergeDefault(payload, "database", c.defaultDatabase)
	if err != nil {
		return nil, err
	}

	return payload, nil
}

func mergeDefault(payload map[string]json.RawMessage, key, fallback string) error {
	if truthy(payload[key]) {
		return nil
	}

	if fallback == "" {
		delete(payload, key)

		return nil
	}

	value, err := json.Marshal(fallback)
	if err != nil {
		return fmt.Errorf("encoding default %s: %w", key, err)
	}

	payload[key] = value

	return nil
}

// truthy reports whether a JSON value is truthy: not absent, null, false, 0,
// or the empty string.
func truthy(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}

	var value interface{}

	err := json.Unmarshal(raw, &value)
	if err != nil {
		return false
	}

	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	default:
		return true
	}
}

// handleRequestError logs err according to where the request failed and
// returns it unchanged.
func (c *Client) handleRequestError(action dataapi.Action, err error) error {
	statusErr := &dataapi.StatusError{}
	noResp := &dataapi.NoResponseError{}

	switch {
	case errors.As(err, &statusErr):
		c.logger.Error("Request failed with status", map[string]interface{}{
			"action":        action.Name(),
			"status_code":   statusErr.StatusCode,
			"response_body": string(statusErr.Body),
		})
	case errors.As(err, &noResp):
		c.logger.Error("No response received from server", map[string]interface{}{
			"action": action.Name(),
			"error":  noResp.Error(),
		})
	default:
		c.logger.Error("Error occurred while sending request", map[string]interface{}{
			"action": action.Name(),
			"error":  err.Error(),
		})
	}

	return err
}

// FindOne implements dataapi.Client.FindOne.
func (c *Client) FindOne(ctx context.Context, request dataapi.FindOneRequest) dataapi.Result[dataapi.FindOneResponse[dataapi.Document]] {
	return dataapi.FindOne[dataapi.Document](ctx, c, request)
}

// Find implements dataapi.Client.Find.
func (c *Client) Find(ctx context.Context, request dataapi.FindRequest) dataapi.Result[dataapi.FindResponse[dataapi.Document]] {
	return dataapi.Find[dataapi.Document](ctx, c, request)
}

// InsertOne implements dataapi.Client.InsertOne.
func (c *Client) InsertOne(ctx context.Context, request dataapi.InsertOneRequest[dataapi.Document]) dataapi.Result[dataapi.InsertOneResponse] {
	return dataapi.InsertOne(ctx, c, request)
}

// InsertMany implements dataapi.Client.InsertMany.
func (c *Client) InsertMany(ctx context.Context, request dataapi.InsertManyRequest[dataapi.Document]) dataapi.Result[dataapi.InsertManyResponse] {
	return dataapi.InsertMany(ctx, c, request)
}

// UpdateOne implements dataapi.Client.UpdateOne.
func (c *Client) UpdateOne(ctx context.Context, request dataapi.UpdateOneRequest) dataapi.Result[dataapi.UpdateResponse] {
	return dataapi.UpdateOne(ctx, c, request)
}

// UpdateMany implements dataapi.Client.UpdateMany.
func (c *Client) UpdateMany(ctx context.Context, request dataapi.UpdateManyRequest) dataapi.Result[dataapi.UpdateResponse] {
	return dataapi.UpdateMany(ctx, c, request)
}

// ReplaceOne implements dataapi.Client.ReplaceOne.
func (c *Client) ReplaceOne(ctx context.Context, request dataapi.ReplaceOneRequest[dataapi.Document]) dataapi.Result[dataapi.UpdateResponse] {
	return dataapi.ReplaceOne(ctx, c, request)
}

// DeleteOne implements dataapi.Client.DeleteOne.
func (c *Client) DeleteOne(ctx context.Context, request dataapi.DeleteOneRequest) dataapi.Result[dataapi.DeleteResponse] {
	return dataapi.DeleteOne(ctx, c, request)
}

// DeleteMany implements dataapi.Client.DeleteMany.
func (c *Client) DeleteMany(ctx context.Context, request dataapi.DeleteManyRequest) dataapi.Result[dataapi.DeleteResponse] {
	return dataapi.DeleteMany(ctx, c, request)
}

// Aggregate implements dataapi.Client.Aggregate.
func (c *Client) Aggregate(ctx context.Context, request dataapi.AggregateRequest) dataapi.Result[dataapi.AggregateResponse[dataapi.Document]] {
	return dataapi.Aggregate[dataapi.Document](ctx, c, request)
}
