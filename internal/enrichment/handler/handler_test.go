package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geocatalog/internal/enrichment/countries"
	"geocatalog/internal/enrichment/weather"
	"geocatalog/internal/platform/metrics"
)

func newRouter(countriesURL, weatherURL string) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.NewForTesting()

	h := New(
		countries.NewClient(countriesURL, 5*time.Second, logger, m),
		weather.NewClient(weatherURL, 5*time.Second, logger, m),
		logger,
	)
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func TestCountryInfo(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3.1/name/brazil" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name":{"official":"Federative Republic of Brazil"},"flags":{"png":"https://flagcdn.com/w320/br.png"},"region":"Americas"}]`))
	}))
	defer upstream.Close()

	router := newRouter(upstream.URL, upstream.URL)

	t.Run("match", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/info-country/brazil", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "Federative Republic of Brazil", body["officialName"])
		assert.Equal(t, "Americas", body["region"])
	})

	t.Run("no match", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/info-country/atlantis", nil))
		require.Equal(t, http.StatusNotFound, rec.Code)

		var body map[string]string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "not_found", body["error"])
	})
}

func TestCurrentWeather(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"current_weather":{"temperature":18.2,"windspeed":7.4}}`))
	}))
	defer upstream.Close()

	router := newRouter(upstream.URL, upstream.URL)

	t.Run("valid coordinates", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/weather?lat=-15.8&lon=-47.9", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]float64
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, 18.2, body["temperature"])
		assert.Equal(t, 7.4, body["windSpeed"])
	})

	t.Run("missing coordinates", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/weather", nil))
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var body map[string]string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "validation", body["error"])
	})

	t.Run("out of range", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/weather?lat=120&lon=0", nil))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCountryInfoUpstreamOutage(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	router := newRouter(upstream.URL, upstream.URL)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/info-country/brazil", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "upstream", body["error"])
}
