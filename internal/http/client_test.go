package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apihttp "github.com/fivetwenty-io/dataapi/internal/http"
	"github.com/fivetwenty-io/dataapi/pkg/dataapi"
)

var errRequestFailed = errors.New("Request failed") //nolint:staticcheck // mirrors the transport message under test

// MockLogger for testing.
type MockLogger struct {
	logs []map[string]interface{}
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "debug", "msg": msg, "fields": fields})
}

func (l *MockLogger) Info(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "info", "msg": msg, "fields": fields})
}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "warn", "msg": msg, "fields": fields})
}

func (l *MockLogger) Error(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "error", "msg": msg, "fields": fields})
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()

	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/app/data-abc/endpoint/data/v1/action/findOne", request.URL.Path)
			assert.Equal(t, http.MethodPost, request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))
			assert.Equal(t, "test-key", request.Header.Get("api-key"))

			var body map[string]string

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, "users", body["collection"])

			_ = json.NewEncoder(writer).Encode(map[string]interface{}{"document": map[string]string{"name": "Ada"}})
		}))
		defer server.Close()

		client := apihttp.NewClient(server.URL+"/app/data-abc/endpoint/data/v1", apihttp.DefaultHeaders("test-key"))

		resp, err := client.Post(context.Background(), "/action/findOne", map[string]string{"collection": "users"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result map[string]map[string]string

		require.NoError(t, json.Unmarshal(resp.Body, &result))
		assert.Equal(t, "Ada", result["document"]["name"])
	})

	t.Run("custom headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "custom-value", request.Header.Get("X-Custom-Header"))
			assert.Equal(t, "test-key", request.Header.Get("api-key"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := apihttp.NewClient(server.URL, apihttp.DefaultHeaders("test-key"))

		resp, err := client.Do(context.Background(), &apihttp.Request{
			Method:  http.MethodPost,
			Path:    "/action/find",
			Headers: map[string]string{"X-Custom-Header": "custom-value"},
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("error response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusUnauthorized)
			_, _ = writer.Write([]byte(`{"error":"invalid session","error_code":"InvalidSession"}`))
		}))
		defer server.Close()

		client := apihttp.NewClient(server.URL, apihttp.DefaultHeaders("bad-key"))

		resp, err := client.Post(context.Background(), "/action/find", map[string]string{"collection": "users"})
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		statusErr := &dataapi.StatusError{}
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
		assert.JSONEq(t, `{"error":"invalid session","error_code":"InvalidSession"}`, string(statusErr.Body))
		assert.Equal(t, "Request failed with status code 401", err.Error())
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(writer).Encode(map[string]int{"deletedCount": 1})
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := apihttp.NewClient(server.URL, nil, apihttp.WithLogger(logger), apihttp.WithDebug(true))

		_, err := client.Post(context.Background(), "/action/deleteOne", map[string]string{"collection": "users"})
		require.NoError(t, err)

		var messages []interface{}
		for _, entry := range logger.logs {
			messages = append(messages, entry["msg"])
		}

		assert.Contains(t, messages, "HTTP Request")
		assert.Contains(t, messages, "HTTP Response")
	})

	t.Run("no debug logging by default", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := apihttp.NewClient(server.URL, nil, apihttp.WithLogger(logger))

		_, err := client.Post(context.Background(), "/action/find", nil)
		require.NoError(t, err)
		assert.Empty(t, logger.logs)
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Failures(t *testing.T) {
	t.Parallel()

	t.Run("transport failure", func(t *testing.T) {
		t.Parallel()

		var attempts int32

		httpClient := &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
			atomic.AddInt32(&attempts, 1)

			return nil, errRequestFailed
		})}

		client := apihttp.NewClient("https://data.example.com", nil, apihttp.WithHTTPClient(httpClient))

		resp, err := client.Post(context.Background(), "/action/insertOne", map[string]string{"collection": "users"})
		require.Error(t, err)
		assert.Nil(t, resp)
		assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))

		noResp := &dataapi.NoResponseError{}
		require.ErrorAs(t, err, &noResp)
		require.ErrorIs(t, err, errRequestFailed)
		assert.Equal(t, "Request failed", err.Error())
	})

	t.Run("does not retry on server errors", func(t *testing.T) {
		t.Parallel()

		var attempts int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			atomic.AddInt32(&attempts, 1)
			writer.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := apihttp.NewClient(server.URL, nil)

		resp, err := client.Post(context.Background(), "/action/find", map[string]string{"collection": "users"})
		require.Error(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
	})

	t.Run("does not retry on rate limiting", func(t *testing.T) {
		t.Parallel()

		var attempts int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			atomic.AddInt32(&attempts, 1)
			writer.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := apihttp.NewClient(server.URL, nil)

		_, err := client.Post(context.Background(), "/action/find", nil)
		require.Error(t, err)
		assert.True(t, dataapi.IsStatus(err, http.StatusTooManyRequests))
		assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
	})

	t.Run("unencodable body", func(t *testing.T) {
		t.Parallel()

		client := apihttp.NewClient("https://data.example.com", nil)

		_, err := client.Post(context.Background(), "/action/insertOne", map[string]interface{}{"bad": make(chan int)})
		require.Error(t, err)

		reqErr := &dataapi.RequestError{}
		require.ErrorAs(t, err, &reqErr)
		assert.False(t, dataapi.IsNoResponse(err))
	})

	t.Run("invalid base URL", func(t *testing.T) {
		t.Parallel()

		client := apihttp.NewClient("://missing-scheme", nil)

		_, err := client.Post(context.Background(), "/action/find", nil)
		require.Error(t, err)

		reqErr := &dataapi.RequestError{}
		require.ErrorAs(t, err, &reqErr)
	})

	t.Run("context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			<-request.Context().Done()
		}))
		defer server.Close()

		client := apihttp.NewClient(server.URL, nil)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := client.Post(ctx, "/action/find", nil)
		require.Error(t, err)
		assert.True(t, dataapi.IsNoResponse(err))
	})
}

func TestClient_Observer(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	var (
		observedPath   string
		observedStatus int
		observedErr    error
	)

	client := apihttp.NewClient(server.URL, nil, apihttp.WithObserver(
		func(method, path string, statusCode int, _ time.Duration, err error) {
			assert.Equal(t, http.MethodPost, method)
			observedPath = path
			observedStatus = statusCode
			observedErr = err
		}))

	_, err := client.Post(context.Background(), "/action/updateOne", nil)
	require.Error(t, err)
	assert.Equal(t, "/action/updateOne", observedPath)
	assert.Equal(t, http.StatusBadRequest, observedStatus)
	assert.Error(t, observedErr)
}

func TestDefaultHeaders(t *testing.T) {
	t.Parallel()

	headers := apihttp.DefaultHeaders("secret")
	assert.Equal(t, map[string]string{
		"Content-Type": "application/json",
		"api-key":      "secret",
	}, headers)
}
