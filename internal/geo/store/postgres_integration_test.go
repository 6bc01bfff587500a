//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"geocatalog/internal/geo/models"
	"geocatalog/internal/geo/store"
	"geocatalog/pkg/platform/sentinel"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	store     *store.Postgres
	ctx       context.Context
}

func TestPostgresIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := tcpostgres.Run(s.ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("geocatalog"),
		tcpostgres.WithUsername("geo"),
		tcpostgres.WithPassword("geo"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	st, err := store.NewPostgres(s.ctx, connStr)
	s.Require().NoError(err)
	s.Require().NoError(st.Migrate(s.ctx))
	s.store = st
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.store != nil {
		s.store.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(s.ctx))
	}
}

// TestHierarchyLifecycle walks the full create/list/update/delete flow,
// including the delete-order constraint enforced by the foreign keys.
func (s *PostgresIntegrationSuite) TestHierarchyLifecycle() {
	continent := models.Continent{Name: "South America", Description: "southern hemisphere"}
	s.Require().NoError(s.store.CreateContinent(s.ctx, &continent))
	s.Positive(continent.ID)

	country := models.Country{
		Name: "Brazil", Population: 210000000,
		Language: "Portuguese", Currency: "BRL",
		ContinentID: continent.ID,
	}
	s.Require().NoError(s.store.CreateCountry(s.ctx, &country))
	s.Equal("South America", country.ContinentName)

	city := models.City{
		Name: "Brasília", Population: 3000000,
		Latitude: -15.8, Longitude: -47.9,
		CountryID: country.ID,
	}
	s.Require().NoError(s.store.CreateCity(s.ctx, &city))
	s.Equal("Brazil", city.CountryName)

	// Dangling parent reference is rejected.
	bad := models.Country{Name: "Atlantis", ContinentID: continent.ID + 1000}
	s.Require().ErrorIs(s.store.CreateCountry(s.ctx, &bad), sentinel.ErrReference)

	// Parent deletes are blocked while children exist.
	s.Require().ErrorIs(s.store.DeleteContinent(s.ctx, continent.ID), sentinel.ErrConflict)
	s.Require().ErrorIs(s.store.DeleteCountry(s.ctx, country.ID), sentinel.ErrConflict)

	// Update replaces the full field set, identity unchanged.
	country.Population = 212000000
	country.Currency = "BRL"
	s.Require().NoError(s.store.UpdateCountry(s.ctx, &country))

	countries, err := s.store.ListCountries(s.ctx)
	s.Require().NoError(err)
	s.Require().NotEmpty(countries)
	last := countries[len(countries)-1]
	s.Equal(country.ID, last.ID)
	s.Equal(int64(212000000), last.Population)
	s.Equal("South America", last.ContinentName)

	// Leaf-first deletion succeeds; retries surface not-found.
	s.Require().NoError(s.store.DeleteCity(s.ctx, city.ID))
	s.Require().NoError(s.store.DeleteCountry(s.ctx, country.ID))
	s.Require().NoError(s.store.DeleteContinent(s.ctx, continent.ID))
	s.Require().ErrorIs(s.store.DeleteContinent(s.ctx, continent.ID), sentinel.ErrNotFound)
}

// TestListOrdering verifies ascending id order straight from the database.
func (s *PostgresIntegrationSuite) TestListOrdering() {
	for _, name := range []string{"Zealandia", "Avalonia", "Baltica"} {
		c := models.Continent{Name: name}
		s.Require().NoError(s.store.CreateContinent(s.ctx, &c))
	}

	list, err := s.store.ListContinents(s.ctx)
	s.Require().NoError(err)
	for i := 1; i < len(list); i++ {
		s.Less(list[i-1].ID, list[i].ID)
	}
}
