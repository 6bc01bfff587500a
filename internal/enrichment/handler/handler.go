package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"geocatalog/internal/enrichment/countries"
	"geocatalog/internal/enrichment/weather"
	"geocatalog/internal/geo/models"
	"geocatalog/pkg/platform/httputil"
)

// Handler exposes the external enrichment lookups over HTTP.
type Handler struct {
	countries *countries.Client
	weather   *weather.Client
	logger    *slog.Logger
}

// New creates an enrichment handler.
func New(countriesClient *countries.Client, weatherClient *weather.Client, logger *slog.Logger) *Handler {
	return &Handler{
		countries: countriesClient,
		weather:   weatherClient,
		logger:    logger,
	}
}

// Register mounts the enrichment routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/info-country/{name}", h.countryInfo)
	r.Get("/weather", h.currentWeather)
}

func (h *Handler) countryInfo(w http.ResponseWriter, r *http.Request) {
	profile, err := h.countries.Lookup(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) currentWeather(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat := models.Number(q.Get("lat"))
	lon := models.Number(q.Get("lon"))

	conditions, err := h.weather.Current(r.Context(), lat, lon)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, conditions)
}
