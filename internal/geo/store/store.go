// Package store persists the geographic hierarchy and enforces its
// referential-integrity invariants on write and delete.
//
// Implementations return sentinel errors: ErrReference when a declared
// parent id does not exist, ErrConflict when a delete would orphan
// dependent rows, ErrNotFound when the target id is absent. Deletion is
// always rejected on conflict, never cascaded.
package store

import (
	"context"

	"geocatalog/internal/geo/models"
)

// Store is the single writer for the three entity tables. Create assigns
// the identity; Create and Update on child kinds fill the joined parent
// name so callers get the same shape reads produce. Listings are ordered
// by ascending id.
type Store interface {
	ListContinents(ctx context.Context) ([]models.Continent, error)
	CreateContinent(ctx context.Context, c *models.Continent) error
	UpdateContinent(ctx context.Context, c *models.Continent) error
	DeleteContinent(ctx context.Context, id int64) error

	ListCountries(ctx context.Context) ([]models.Country, error)
	CreateCountry(ctx context.Context, c *models.Country) error
	UpdateCountry(ctx context.Context, c *models.Country) error
	DeleteCountry(ctx context.Context, id int64) error

	ListCities(ctx context.Context) ([]models.City, error)
	CreateCity(ctx context.Context, c *models.City) error
	UpdateCity(ctx context.Context, c *models.City) error
	DeleteCity(ctx context.Context, id int64) error
}
