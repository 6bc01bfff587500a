package countries

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"geocatalog/internal/platform/metrics"
	"geocatalog/pkg/domainerrors"
)

// Profile is the subset of the REST Countries record the catalog exposes.
type Profile struct {
	OfficialName string `json:"officialName"`
	FlagImageURL string `json:"flagImageUrl"`
	Region       string `json:"region"`
}

// Client looks up country profiles in the REST Countries v3.1 API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewClient creates a REST Countries client.
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

// Lookup resolves a country name to its official name, flag image and region.
// The API returns an array of candidate matches; the first one wins.
func (c *Client) Lookup(ctx context.Context, name string) (Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Profile{}, domainerrors.New(domainerrors.CodeValidation, "country name is required")
	}

	u := fmt.Sprintf("%s/v3.1/name/%s", c.baseURL, url.PathEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Profile{}, domainerrors.Wrap(err, domainerrors.CodeInternal, "create country lookup request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.count("failure")
		c.logger.Error("country lookup request failed", "name", name, "error", err)
		return Profile{}, domainerrors.Wrap(err, domainerrors.CodeUpstream, "country catalog unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.count("miss")
		return Profile{}, domainerrors.New(domainerrors.CodeNotFound, "country not found in external catalog")
	}
	if resp.StatusCode != http.StatusOK {
		c.count("failure")
		c.logger.Error("country lookup returned unexpected status", "name", name, "status", resp.StatusCode)
		return Profile{}, domainerrors.New(domainerrors.CodeUpstream,
			fmt.Sprintf("country catalog returned status %d", resp.StatusCode))
	}

	var matches []countryRecord
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		c.count("failure")
		return Profile{}, domainerrors.Wrap(err, domainerrors.CodeUpstream, "decode country catalog response")
	}
	if len(matches) == 0 {
		c.count("miss")
		return Profile{}, domainerrors.New(domainerrors.CodeNotFound, "country not found in external catalog")
	}

	c.count("success")
	m := matches[0]
	return Profile{
		OfficialName: m.Name.Official,
		FlagImageURL: m.Flags.PNG,
		Region:       m.Region,
	}, nil
}

func (c *Client) count(outcome string) {
	if c.metrics != nil {
		c.metrics.EnrichLookups.WithLabelValues("countries", outcome).Inc()
	}
}

// REST Countries v3.1 response types.

type countryRecord struct {
	Name   countryName  `json:"name"`
	Flags  countryFlags `json:"flags"`
	Region string       `json:"region"`
}

type countryName struct {
	Official string `json:"official"`
}

type countryFlags struct {
	PNG string `json:"png"`
}
