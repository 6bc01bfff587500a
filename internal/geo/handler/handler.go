// Package handler exposes the catalog CRUD surface over HTTP. It binds JSON
// bodies to the typed requests, delegates to the service, and renders
// outcomes through httputil; no business logic lives here.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"geocatalog/internal/geo/models"
	"geocatalog/internal/geo/service"
	"geocatalog/pkg/domainerrors"
	"geocatalog/pkg/platform/httputil"
)

// Handler wires HTTP endpoints to the geo service.
type Handler struct {
	svc    *service.Service
	logger *slog.Logger
}

// New constructs a Handler.
func New(svc *service.Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Register mounts the CRUD routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/continents", h.listContinents)
	r.Post("/continents", h.createContinent)
	r.Put("/continents/{id}", h.updateContinent)
	r.Delete("/continents/{id}", h.deleteContinent)

	r.Get("/countries", h.listCountries)
	r.Post("/countries", h.createCountry)
	r.Put("/countries/{id}", h.updateCountry)
	r.Delete("/countries/{id}", h.deleteCountry)

	r.Get("/cities", h.listCities)
	r.Post("/cities", h.createCity)
	r.Put("/cities/{id}", h.updateCity)
	r.Delete("/cities/{id}", h.deleteCity)
}

func (h *Handler) listContinents(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListContinents(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) createContinent(w http.ResponseWriter, r *http.Request) {
	var req models.ContinentRequest
	if err := decodeBody(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	record, err := h.svc.CreateContinent(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, record)
}

func (h *Handler) updateContinent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req models.ContinentRequest
	if err := decodeBody(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	record, err := h.svc.UpdateContinent(r.Context(), id, &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) deleteContinent(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, h.svc.DeleteContinent)
}

func (h *Handler) listCountries(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListCountries(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) createCountry(w http.ResponseWriter, r *http.Request) {
	var req models.CountryRequest
	if err := decodeBody(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	record, err := h.svc.CreateCountry(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, record)
}

func (h *Handler) updateCountry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req models.CountryRequest
	if err := decodeBody(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	record, err := h.svc.UpdateCountry(r.Context(), id, &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) deleteCountry(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, h.svc.DeleteCountry)
}

func (h *Handler) listCities(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListCities(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) createCity(w http.ResponseWriter, r *http.Request) {
	var req models.CityRequest
	if err := decodeBody(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	record, err := h.svc.CreateCity(r.Context(), &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, record)
}

func (h *Handler) updateCity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req models.CityRequest
	if err := decodeBody(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	record, err := h.svc.UpdateCity(r.Context(), id, &req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) deleteCity(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, h.svc.DeleteCity)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id int64) error) {
	id, err := pathID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := op(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeValidation, "malformed request body")
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domainerrors.New(domainerrors.CodeValidation, "id must be a positive integer")
	}
	return id, nil
}
