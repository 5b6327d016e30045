// Package metrics records Data API calls as prometheus metrics.
package metrics

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeSuccess    = "success"
	OutcomeRejected   = "rejected"
	OutcomeNoResponse = "no_response"
)

// Collector holds the client metrics.
type Collector struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewCollector creates the client metrics and registers them with registerer.
// A nil registerer leaves them unregistered. Metrics already registered under
// the same names are reused, so several clients can share one registry.
func NewCollector(namespace string, registerer prometheus.Registerer) (*Collector, error) {
	collector := &Collector{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Total number of Data API requests",
			},
			[]string{"action", "status", "outcome"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Data API request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"action"},
		),
	}

	if registerer == nil {
		return collector, nil
	}

	requests, err := register(registerer, collector.RequestsTotal)
	if err != nil {
		return nil, err
	}

	duration, err := register(registerer, collector.RequestDuration)
	if err != nil {
		return nil, err
	}

	collector.RequestsTotal = requests
	collector.RequestDuration = duration

	return collector, nil
}

func register[C prometheus.Collector](registerer prometheus.Registerer, c C) (C, error) {
	err := registerer.Register(c)
	if err == nil {
		return c, nil
	}

	alreadyRegistered := prometheus.AlreadyRegisteredError{}
	if errors.As(err, &alreadyRegistered) {
		if existing, ok := alreadyRegistered.ExistingCollector.(C); ok {
			return existing, nil
		}
	}

	return c, fmt.Errorf("registering metrics: %w", err)
}

// Observe records one dispatched request. It matches the transport's
// Observer signature.
func (c *Collector) Observe(_ string, path string, statusCode int, duration time.Duration, err error) {
	action := actionLabel(path)

	status := "none"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}

	outcome := OutcomeSuccess

	switch {
	case statusCode == 0 && err != nil:
		outcome = OutcomeNoResponse
	case err != nil:
		outcome = OutcomeRejected
	}

	c.RequestsTotal.WithLabelValues(action, status, outcome).Inc()
	c.RequestDuration.WithLabelValues(action).Observe(duration.Seconds())
}

func actionLabel(path string) string {
	return strings.TrimPrefix(path, "/action/")
}
