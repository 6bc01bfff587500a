package store

// Schema for the three entity tables. The foreign keys are declared
// RESTRICT so the database itself blocks destructive deletes even if a
// conflicting write slips past the store's own checks.
const schema = `
CREATE TABLE IF NOT EXISTS continents (
    id          BIGSERIAL PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS countries (
    id           BIGSERIAL PRIMARY KEY,
    name         TEXT NOT NULL,
    population   BIGINT NOT NULL CHECK (population >= 0),
    language     TEXT NOT NULL DEFAULT '',
    currency     TEXT NOT NULL DEFAULT '',
    continent_id BIGINT NOT NULL REFERENCES continents (id) ON DELETE RESTRICT
);

CREATE TABLE IF NOT EXISTS cities (
    id         BIGSERIAL PRIMARY KEY,
    name       TEXT NOT NULL,
    population BIGINT NOT NULL CHECK (population >= 0),
    latitude   DOUBLE PRECISION NOT NULL CHECK (latitude BETWEEN -90 AND 90),
    longitude  DOUBLE PRECISION NOT NULL CHECK (longitude BETWEEN -180 AND 180),
    country_id BIGINT NOT NULL REFERENCES countries (id) ON DELETE RESTRICT
);

CREATE INDEX IF NOT EXISTS idx_countries_continent_id ON countries (continent_id);
CREATE INDEX IF NOT EXISTS idx_cities_country_id ON cities (country_id);
`
