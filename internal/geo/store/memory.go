package store

import (
	"context"
	"sort"
	"sync"

	"geocatalog/internal/geo/models"
	"geocatalog/pkg/platform/sentinel"
)

// Memory is an in-memory Store for development and tests. All check-then-act
// sequences run under a single mutex, so a parent cannot disappear between a
// child's reference check and its insert.
type Memory struct {
	mu sync.RWMutex

	continents map[int64]models.Continent
	countries  map[int64]models.Country
	cities     map[int64]models.City

	// Identity counters only ever advance; ids are never reused after a
	// delete.
	nextContinentID int64
	nextCountryID   int64
	nextCityID      int64
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		continents: make(map[int64]models.Continent),
		countries:  make(map[int64]models.Country),
		cities:     make(map[int64]models.City),
	}
}

func (m *Memory) ListContinents(_ context.Context) ([]models.Continent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Continent, 0, len(m.continents))
	for _, c := range m.continents {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) CreateContinent(_ context.Context, c *models.Continent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextContinentID++
	c.ID = m.nextContinentID
	m.continents[c.ID] = *c
	return nil
}

func (m *Memory) UpdateContinent(_ context.Context, c *models.Continent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.continents[c.ID]; !ok {
		return sentinel.ErrNotFound
	}
	m.continents[c.ID] = *c
	return nil
}

func (m *Memory) DeleteContinent(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.continents[id]; !ok {
		return sentinel.ErrNotFound
	}
	for _, country := range m.countries {
		if country.ContinentID == id {
			return sentinel.ErrConflict
		}
	}
	delete(m.continents, id)
	return nil
}

func (m *Memory) ListCountries(_ context.Context) ([]models.Country, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Country, 0, len(m.countries))
	for _, c := range m.countries {
		c.ContinentName = m.continents[c.ContinentID].Name
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) CreateCountry(_ context.Context, c *models.Country) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	parent, ok := m.continents[c.ContinentID]
	if !ok {
		return sentinel.ErrReference
	}
	m.nextCountryID++
	c.ID = m.nextCountryID
	c.ContinentName = parent.Name
	m.countries[c.ID] = *c
	return nil
}

func (m *Memory) UpdateCountry(_ context.Context, c *models.Country) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.countries[c.ID]; !ok {
		return sentinel.ErrNotFound
	}
	parent, ok := m.continents[c.ContinentID]
	if !ok {
		return sentinel.ErrReference
	}
	c.ContinentName = parent.Name
	m.countries[c.ID] = *c
	return nil
}

func (m *Memory) DeleteCountry(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.countries[id]; !ok {
		return sentinel.ErrNotFound
	}
	for _, city := range m.cities {
		if city.CountryID == id {
			return sentinel.ErrConflict
		}
	}
	delete(m.countries, id)
	return nil
}

func (m *Memory) ListCities(_ context.Context) ([]models.City, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.City, 0, len(m.cities))
	for _, c := range m.cities {
		c.CountryName = m.countries[c.CountryID].Name
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) CreateCity(_ context.Context, c *models.City) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	parent, ok := m.countries[c.CountryID]
	if !ok {
		return sentinel.ErrReference
	}
	m.nextCityID++
	c.ID = m.nextCityID
	c.CountryName = parent.Name
	m.cities[c.ID] = *c
	return nil
}

func (m *Memory) UpdateCity(_ context.Context, c *models.City) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.cities[c.ID]; !ok {
		return sentinel.ErrNotFound
	}
	parent, ok := m.countries[c.CountryID]
	if !ok {
		return sentinel.ErrReference
	}
	c.CountryName = parent.Name
	m.cities[c.ID] = *c
	return nil
}

func (m *Memory) DeleteCity(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.cities[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(m.cities, id)
	return nil
}
