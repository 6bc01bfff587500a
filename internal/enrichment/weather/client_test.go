package weather

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geocatalog/internal/platform/metrics"
	"geocatalog/pkg/domainerrors"
)

func testClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics:    metrics.NewForTesting(),
	}
}

func TestClient_Current_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forecast", r.URL.Path)
		assert.Equal(t, "-15.8", r.URL.Query().Get("latitude"))
		assert.Equal(t, "-47.9", r.URL.Query().Get("longitude"))
		assert.Equal(t, "true", r.URL.Query().Get("current_weather"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"current_weather":{"temperature":24.3,"windspeed":11.5,"winddirection":140}}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	conditions, err := c.Current(context.Background(), "-15.8", "-47.9")
	require.NoError(t, err)

	assert.Equal(t, 24.3, conditions.Temperature)
	assert.Equal(t, 11.5, conditions.WindSpeed)
}

func TestClient_Current_OutOfRangeSkipsRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := testClient(srv.URL)

	_, err := c.Current(context.Background(), "95", "0")
	require.Error(t, err)
	assert.True(t, domainerrors.HasCode(err, domainerrors.CodeValidation))

	_, err = c.Current(context.Background(), "0", "181")
	require.Error(t, err)
	assert.True(t, domainerrors.HasCode(err, domainerrors.CodeValidation))

	_, err = c.Current(context.Background(), "abc", "0")
	require.Error(t, err)
	assert.True(t, domainerrors.HasCode(err, domainerrors.CodeValidation))

	assert.False(t, called, "invalid coordinates must not reach the API")
}

func TestClient_Current_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Current(context.Background(), "0", "0")
	require.Error(t, err)
	assert.True(t, domainerrors.HasCode(err, domainerrors.CodeUpstream))
}

func TestClient_Current_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c := testClient(srv.URL)
	_, err := c.Current(context.Background(), "0", "0")
	require.Error(t, err)
	assert.True(t, domainerrors.HasCode(err, domainerrors.CodeUpstream))
	assert.Error(t, errors.Unwrap(err), "transport error must survive as the cause")
}

func TestClient_Current_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Current(context.Background(), "0", "0")
	require.Error(t, err)
	assert.True(t, domainerrors.HasCode(err, domainerrors.CodeUpstream))
	assert.Error(t, errors.Unwrap(err), "decode error must survive as the cause")
}
