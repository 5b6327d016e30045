// Package dataapiclient provides the main entry point for creating Data API clients
package dataapiclient

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fivetwenty-io/dataapi/internal/client"
	"github.com/fivetwenty-io/dataapi/internal/constants"
	internalhttp "github.com/fivetwenty-io/dataapi/internal/http"
	"github.com/fivetwenty-io/dataapi/internal/logging"
	"github.com/fivetwenty-io/dataapi/internal/metrics"
	"github.com/fivetwenty-io/dataapi/pkg/dataapi"
)

type options struct {
	registerer prometheus.Registerer
	namespace  string
	httpClient *http.Client
}

// Option configures optional client behavior.
type Option func(*options)

// WithMetrics records one observation per request in registerer. namespace
// defaults to dataapi_client when empty.
func WithMetrics(registerer prometheus.Registerer, namespace string) Option {
	return func(o *options) {
		o.registerer = registerer
		o.namespace = namespace
	}
}

// WithHTTPClient sends requests through httpClient. It takes precedence over
// Config.HTTPClient.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *options) {
		o.httpClient = httpClient
	}
}

// New creates a Data API client. It performs no I/O and does not validate the
// configuration; a bad AppID or APIKey shows up as a failed Result on the
// first call.
func New(config *dataapi.Config, opts ...Option) dataapi.Client {
	if config == nil {
		config = &dataapi.Config{}
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	var httpOpts []internalhttp.Option

	if o.httpClient != nil {
		httpOpts = append(httpOpts, internalhttp.WithHTTPClient(o.httpClient))
	}

	if o.registerer != nil {
		if observer := newObserver(config, o); observer != nil {
			httpOpts = append(httpOpts, internalhttp.WithObserver(observer))
		}
	}

	return client.New(config, httpOpts...)
}

func newObserver(config *dataapi.Config, o *options) internalhttp.Observer {
	namespace := o.namespace
	if namespace == "" {
		namespace = constants.MetricsNamespace
	}

	collector, err := metrics.NewCollector(namespace, o.registerer)
	if err != nil {
		var logger dataapi.Logger = config.Logger
		if logger == nil {
			logger = logging.NewProduction()
		}

		logger.Warn("Metrics disabled", map[string]interface{}{"error": err.Error()})

		return nil
	}

	return collector.Observe
}

// NewWithAppID creates a client for an App Services application.
func NewWithAppID(appID, apiKey string) dataapi.Client {
	return New(&dataapi.Config{
		AppID:  appID,
		APIKey: apiKey,
	})
}

// NewWithDefaults creates a client that fills in dataSource and database for
// requests that leave them empty.
func NewWithDefaults(appID, apiKey, dataSource, database string) dataapi.Client {
	return New(&dataapi.Config{
		AppID:             appID,
		APIKey:            apiKey,
		DefaultDataSource: dataSource,
		DefaultDatabase:   database,
	})
}

// NewWithEndpoint creates a client for a full base URL, such as a regional
// deployment or a proxy.
func NewWithEndpoint(endpoint, apiKey string) dataapi.Client {
	return New(&dataapi.Config{
		Endpoint: endpoint,
		APIKey:   apiKey,
	})
}
