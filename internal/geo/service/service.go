// Package service translates loosely-typed request payloads into strictly
// typed store calls and store outcomes into response semantics. The store
// assumes already-validated input; everything is checked here first.
package service

import (
	"context"
	"errors"
	"log/slog"

	"geocatalog/internal/geo/models"
	"geocatalog/internal/geo/store"
	"geocatalog/internal/platform/metrics"
	"geocatalog/pkg/domainerrors"
	"geocatalog/pkg/platform/sentinel"
)

// Service orchestrates catalog reads and writes.
type Service struct {
	store   store.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(s *Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(st store.Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{store: st, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) ListContinents(ctx context.Context) ([]models.Continent, error) {
	list, err := s.store.ListContinents(ctx)
	if err != nil {
		s.logger.Error("list continents failed", "error", err)
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to list continents")
	}
	return list, nil
}

func (s *Service) CreateContinent(ctx context.Context, req *models.ContinentRequest) (*models.Continent, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	record := req.Record()
	if err := s.store.CreateContinent(ctx, &record); err != nil {
		s.logger.Error("create continent failed", "error", err)
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to create continent")
	}
	s.countCreated("continent")
	return &record, nil
}

func (s *Service) UpdateContinent(ctx context.Context, id int64, req *models.ContinentRequest) (*models.Continent, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	record := req.Record()
	record.ID = id
	if err := s.store.UpdateContinent(ctx, &record); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, domainerrors.New(domainerrors.CodeNotFound, "continent not found")
		}
		s.logger.Error("update continent failed", "id", id, "error", err)
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to update continent")
	}
	return &record, nil
}

func (s *Service) DeleteContinent(ctx context.Context, id int64) error {
	if err := s.store.DeleteContinent(ctx, id); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrConflict):
			s.countConflict("continent")
			return domainerrors.New(domainerrors.CodeConflict, "cannot delete continent with linked countries")
		case errors.Is(err, sentinel.ErrNotFound):
			return domainerrors.New(domainerrors.CodeNotFound, "continent not found")
		default:
			s.logger.Error("delete continent failed", "id", id, "error", err)
			return domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to delete continent")
		}
	}
	s.countDeleted("continent")
	return nil
}

func (s *Service) ListCountries(ctx context.Context) ([]models.Country, error) {
	list, err := s.store.ListCountries(ctx)
	if err != nil {
		s.logger.Error("list countries failed", "error", err)
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to list countries")
	}
	return list, nil
}

func (s *Service) CreateCountry(ctx context.Context, req *models.CountryRequest) (*models.Country, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	record := req.Record()
	if err := s.store.CreateCountry(ctx, &record); err != nil {
		if errors.Is(err, sentinel.ErrReference) {
			return nil, domainerrors.New(domainerrors.CodeReference, "continent does not exist")
		}
		s.logger.Error("create country failed", "error", err)
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to create country")
	}
	s.countCreated("country")
	return &record, nil
}

func (s *Service) UpdateCountry(ctx context.Context, id int64, req *models.CountryRequest) (*models.Country, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	record := req.Record()
	record.ID = id
	if err := s.store.UpdateCountry(ctx, &record); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, domainerrors.New(domainerrors.CodeNotFound, "country not found")
		case errors.Is(err, sentinel.ErrReference):
			return nil, domainerrors.New(domainerrors.CodeReference, "continent does not exist")
		default:
			s.logger.Error("update country failed", "id", id, "error", err)
			return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to update country")
		}
	}
	return &record, nil
}

func (s *Service) DeleteCountry(ctx context.Context, id int64) error {
	if err := s.store.DeleteCountry(ctx, id); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrConflict):
			s.countConflict("country")
			return domainerrors.New(domainerrors.CodeConflict, "cannot delete country with linked cities")
		case errors.Is(err, sentinel.ErrNotFound):
			return domainerrors.New(domainerrors.CodeNotFound, "country not found")
		default:
			s.logger.Error("delete country failed", "id", id, "error", err)
			return domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to delete country")
		}
	}
	s.countDeleted("country")
	return nil
}

func (s *Service) ListCities(ctx context.Context) ([]models.City, error) {
	list, err := s.store.ListCities(ctx)
	if err != nil {
		s.logger.Error("list cities failed", "error", err)
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to list cities")
	}
	return list, nil
}

func (s *Service) CreateCity(ctx context.Context, req *models.CityRequest) (*models.City, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	record := req.Record()
	if err := s.store.CreateCity(ctx, &record); err != nil {
		if errors.Is(err, sentinel.ErrReference) {
			return nil, domainerrors.New(domainerrors.CodeReference, "country does not exist")
		}
		s.logger.Error("create city failed", "error", err)
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to create city")
	}
	s.countCreated("city")
	return &record, nil
}

func (s *Service) UpdateCity(ctx context.Context, id int64, req *models.CityRequest) (*models.City, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	record := req.Record()
	record.ID = id
	if err := s.store.UpdateCity(ctx, &record); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, domainerrors.New(domainerrors.CodeNotFound, "city not found")
		case errors.Is(err, sentinel.ErrReference):
			return nil, domainerrors.New(domainerrors.CodeReference, "country does not exist")
		default:
			s.logger.Error("update city failed", "id", id, "error", err)
			return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to update city")
		}
	}
	return &record, nil
}

func (s *Service) DeleteCity(ctx context.Context, id int64) error {
	if err := s.store.DeleteCity(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return domainerrors.New(domainerrors.CodeNotFound, "city not found")
		}
		s.logger.Error("delete city failed", "id", id, "error", err)
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to delete city")
	}
	s.countDeleted("city")
	return nil
}

func (s *Service) countCreated(kind string) {
	if s.metrics != nil {
		s.metrics.RecordsCreated.WithLabelValues(kind).Inc()
	}
}

func (s *Service) countDeleted(kind string) {
	if s.metrics != nil {
		s.metrics.RecordsDeleted.WithLabelValues(kind).Inc()
	}
}

func (s *Service) countConflict(kind string) {
	if s.metrics != nil {
		s.metrics.DeleteConflicts.WithLabelValues(kind).Inc()
	}
}
