package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"geocatalog/internal/geo/models"
	"geocatalog/internal/platform/metrics"
	"geocatalog/pkg/domainerrors"
)

// Conditions holds the current weather for a coordinate pair.
type Conditions struct {
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"windSpeed"`
}

// Client fetches current conditions from the Open-Meteo forecast API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewClient creates an Open-Meteo client.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger, m *metrics.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  logger,
		metrics: m,
	}
}

// Current returns the conditions at the given coordinates. Coordinates are
// range-checked locally so malformed input never produces an upstream call.
func (c *Client) Current(ctx context.Context, lat, lon models.Number) (Conditions, error) {
	if err := models.ValidateCoordinates(lat, lon); err != nil {
		return Conditions{}, err
	}
	latitude, _ := lat.Float64()
	longitude, _ := lon.Float64()

	params := url.Values{
		"latitude":        {strconv.FormatFloat(latitude, 'f', -1, 64)},
		"longitude":       {strconv.FormatFloat(longitude, 'f', -1, 64)},
		"current_weather": {"true"},
	}
	u := fmt.Sprintf("%s/v1/forecast?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Conditions{}, domainerrors.Wrap(err, domainerrors.CodeInternal, "create weather request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.count("failure")
		c.logger.Error("weather request failed", "latitude", latitude, "longitude", longitude, "error", err)
		return Conditions{}, domainerrors.Wrap(err, domainerrors.CodeUpstream, "weather service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.count("failure")
		c.logger.Error("weather service returned unexpected status", "status", resp.StatusCode)
		return Conditions{}, domainerrors.New(domainerrors.CodeUpstream,
			fmt.Sprintf("weather service returned status %d", resp.StatusCode))
	}

	var payload forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.count("failure")
		return Conditions{}, domainerrors.Wrap(err, domainerrors.CodeUpstream, "decode weather response")
	}

	c.count("success")
	return Conditions{
		Temperature: payload.CurrentWeather.Temperature,
		WindSpeed:   payload.CurrentWeather.WindSpeed,
	}, nil
}

func (c *Client) count(outcome string) {
	if c.metrics != nil {
		c.metrics.EnrichLookups.WithLabelValues("weather", outcome).Inc()
	}
}

// Open-Meteo forecast response types.

type forecastResponse struct {
	CurrentWeather currentWeather `json:"current_weather"`
}

type currentWeather struct {
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"windspeed"`
}
