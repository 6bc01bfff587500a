package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"geocatalog/internal/geo/models"
	"geocatalog/pkg/platform/sentinel"
)

// pgForeignKeyViolation is the class 23 code raised when a foreign key
// constraint blocks a write or delete.
const pgForeignKeyViolation = "23503"

// Pool is the subset of pgxpool.Pool the store uses. pgxmock satisfies the
// same interface, which keeps the store unit-testable without a database.
type Pool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Postgres persists the hierarchy in PostgreSQL. Every check-then-act
// sequence (parent exists before a child insert, no dependents before a
// delete) runs inside a transaction, with the schema's RESTRICT foreign
// keys as a second line of defense against races.
type Postgres struct {
	pool Pool
}

// NewPostgres connects a pool and verifies the database is reachable.
func NewPostgres(ctx context.Context, connString string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool; used by tests.
func NewPostgresWithPool(pool Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Migrate applies the schema. It is idempotent and runs at startup.
func (s *Postgres) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: apply schema: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Postgres) Close() {
	s.pool.Close()
}

func (s *Postgres) ListContinents(ctx context.Context) ([]models.Continent, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, description FROM continents ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list continents: %w", err)
	}
	defer rows.Close()

	out := []models.Continent{}
	for rows.Next() {
		var c models.Continent
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("scan continent: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Postgres) CreateContinent(ctx context.Context, c *models.Continent) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO continents (name, description) VALUES ($1, $2) RETURNING id`,
		c.Name, c.Description).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("create continent: %w", err)
	}
	return nil
}

func (s *Postgres) UpdateContinent(ctx context.Context, c *models.Continent) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE continents SET name = $1, description = $2 WHERE id = $3`,
		c.Name, c.Description, c.ID)
	if err != nil {
		return fmt.Errorf("update continent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) DeleteContinent(ctx context.Context, id int64) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("delete continent: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	var hasChildren bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM countries WHERE continent_id = $1)`, id).Scan(&hasChildren)
	if err != nil {
		return fmt.Errorf("delete continent: check countries: %w", err)
	}
	if hasChildren {
		return sentinel.ErrConflict
	}

	tag, err := tx.Exec(ctx, `DELETE FROM continents WHERE id = $1`, id)
	if err != nil {
		return translateDeleteErr(err, "delete continent")
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return tx.Commit(ctx)
}

func (s *Postgres) ListCountries(ctx context.Context) ([]models.Country, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT c.id, c.name, c.population, c.language, c.currency, c.continent_id, ct.name
		   FROM countries c
		   JOIN continents ct ON ct.id = c.continent_id
		  ORDER BY c.id`)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	defer rows.Close()

	out := []models.Country{}
	for rows.Next() {
		var c models.Country
		if err := rows.Scan(&c.ID, &c.Name, &c.Population, &c.Language,
			&c.Currency, &c.ContinentID, &c.ContinentName); err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Postgres) CreateCountry(ctx context.Context, c *models.Country) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("create country: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var parentName string
	err = tx.QueryRow(ctx, `SELECT name FROM continents WHERE id = $1`, c.ContinentID).Scan(&parentName)
	if errors.Is(err, pgx.ErrNoRows) {
		return sentinel.ErrReference
	}
	if err != nil {
		return fmt.Errorf("create country: check continent: %w", err)
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO countries (name, population, language, currency, continent_id)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		c.Name, c.Population, c.Language, c.Currency, c.ContinentID).Scan(&c.ID)
	if err != nil {
		return translateWriteErr(err, "create country")
	}
	c.ContinentName = parentName
	return tx.Commit(ctx)
}

func (s *Postgres) UpdateCountry(ctx context.Context, c *models.Country) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("update country: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var parentName string
	err = tx.QueryRow(ctx, `SELECT name FROM continents WHERE id = $1`, c.ContinentID).Scan(&parentName)
	if errors.Is(err, pgx.ErrNoRows) {
		return sentinel.ErrReference
	}
	if err != nil {
		return fmt.Errorf("update country: check continent: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE countries SET name = $1, population = $2, language = $3, currency = $4, continent_id = $5
		  WHERE id = $6`,
		c.Name, c.Population, c.Language, c.Currency, c.ContinentID, c.ID)
	if err != nil {
		return translateWriteErr(err, "update country")
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	c.ContinentName = parentName
	return tx.Commit(ctx)
}

func (s *Postgres) DeleteCountry(ctx context.Context, id int64) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("delete country: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var hasChildren bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM cities WHERE country_id = $1)`, id).Scan(&hasChildren)
	if err != nil {
		return fmt.Errorf("delete country: check cities: %w", err)
	}
	if hasChildren {
		return sentinel.ErrConflict
	}

	tag, err := tx.Exec(ctx, `DELETE FROM countries WHERE id = $1`, id)
	if err != nil {
		return translateDeleteErr(err, "delete country")
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return tx.Commit(ctx)
}

func (s *Postgres) ListCities(ctx context.Context) ([]models.City, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT c.id, c.name, c.population, c.latitude, c.longitude, c.country_id, co.name
		   FROM cities c
		   JOIN countries co ON co.id = c.country_id
		  ORDER BY c.id`)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	defer rows.Close()

	out := []models.City{}
	for rows.Next() {
		var c models.City
		if err := rows.Scan(&c.ID, &c.Name, &c.Population, &c.Latitude,
			&c.Longitude, &c.CountryID, &c.CountryName); err != nil {
			return nil, fmt.Errorf("scan city: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Postgres) CreateCity(ctx context.Context, c *models.City) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("create city: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var parentName string
	err = tx.QueryRow(ctx, `SELECT name FROM countries WHERE id = $1`, c.CountryID).Scan(&parentName)
	if errors.Is(err, pgx.ErrNoRows) {
		return sentinel.ErrReference
	}
	if err != nil {
		return fmt.Errorf("create city: check country: %w", err)
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO cities (name, population, latitude, longitude, country_id)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		c.Name, c.Population, c.Latitude, c.Longitude, c.CountryID).Scan(&c.ID)
	if err != nil {
		return translateWriteErr(err, "create city")
	}
	c.CountryName = parentName
	return tx.Commit(ctx)
}

func (s *Postgres) UpdateCity(ctx context.Context, c *models.City) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("update city: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var parentName string
	err = tx.QueryRow(ctx, `SELECT name FROM countries WHERE id = $1`, c.CountryID).Scan(&parentName)
	if errors.Is(err, pgx.ErrNoRows) {
		return sentinel.ErrReference
	}
	if err != nil {
		return fmt.Errorf("update city: check country: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE cities SET name = $1, population = $2, latitude = $3, longitude = $4, country_id = $5
		  WHERE id = $6`,
		c.Name, c.Population, c.Latitude, c.Longitude, c.CountryID, c.ID)
	if err != nil {
		return translateWriteErr(err, "update city")
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	c.CountryName = parentName
	return tx.Commit(ctx)
}

func (s *Postgres) DeleteCity(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM cities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete city: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// translateWriteErr maps foreign key violations on insert/update to the
// reference sentinel; the in-transaction parent check normally catches
// these first, the constraint covers the race.
func translateWriteErr(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return sentinel.ErrReference
	}
	return fmt.Errorf("%s: %w", op, err)
}

// translateDeleteErr maps foreign key violations on delete to the conflict
// sentinel: a dependent row appeared between the check and the delete.
func translateDeleteErr(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return sentinel.ErrConflict
	}
	return fmt.Errorf("%s: %w", op, err)
}
