package models

import (
	"encoding/json"
	"strconv"
	"strings"

	"geocatalog/pkg/domainerrors"
)

// Number accepts a JSON number or a string-encoded number. The web client
// posts form values verbatim, so "210000000" and 210000000 must both parse.
// An absent field decodes to the empty string and fails conversion, which
// makes missing numerics validation errors rather than silent zeroes.
type Number string

func (n *Number) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Number(s)
		return nil
	}
	*n = Number(data)
	return nil
}

// Int64 parses the value as a base-10 integer.
func (n Number) Int64() (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(string(n)), 10, 64)
	return v, err == nil
}

// Float64 parses the value as a floating point number.
func (n Number) Float64() (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(string(n)), 64)
	return v, err == nil
}

// ContinentRequest carries the full continent field set for create and
// update. Updates never patch-merge; every field must be supplied again.
type ContinentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r *ContinentRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

func (r *ContinentRequest) Validate() error {
	if r.Name == "" {
		return domainerrors.New(domainerrors.CodeValidation, "name is required")
	}
	return nil
}

// Record converts the validated request into a Continent.
func (r *ContinentRequest) Record() Continent {
	return Continent{Name: r.Name, Description: r.Description}
}

// CountryRequest carries the full country field set.
type CountryRequest struct {
	Name        string `json:"name"`
	Population  Number `json:"population"`
	Language    string `json:"language"`
	Currency    string `json:"currency"`
	ContinentID Number `json:"continentId"`
}

func (r *CountryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Language = strings.TrimSpace(r.Language)
	r.Currency = strings.TrimSpace(r.Currency)
}

func (r *CountryRequest) Validate() error {
	if r.Name == "" {
		return domainerrors.New(domainerrors.CodeValidation, "name is required")
	}
	population, ok := r.Population.Int64()
	if !ok {
		return domainerrors.New(domainerrors.CodeValidation, "population must be an integer")
	}
	if population < 0 {
		return domainerrors.New(domainerrors.CodeValidation, "population must not be negative")
	}
	continentID, ok := r.ContinentID.Int64()
	if !ok || continentID <= 0 {
		return domainerrors.New(domainerrors.CodeValidation, "continentId must be a positive integer")
	}
	return nil
}

// Record converts the validated request into a Country.
func (r *CountryRequest) Record() Country {
	population, _ := r.Population.Int64()
	continentID, _ := r.ContinentID.Int64()
	return Country{
		Name:        r.Name,
		Population:  population,
		Language:    r.Language,
		Currency:    r.Currency,
		ContinentID: continentID,
	}
}

// CityRequest carries the full city field set.
type CityRequest struct {
	Name       string `json:"name"`
	Population Number `json:"population"`
	Latitude   Number `json:"latitude"`
	Longitude  Number `json:"longitude"`
	CountryID  Number `json:"countryId"`
}

func (r *CityRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r *CityRequest) Validate() error {
	if r.Name == "" {
		return domainerrors.New(domainerrors.CodeValidation, "name is required")
	}
	population, ok := r.Population.Int64()
	if !ok {
		return domainerrors.New(domainerrors.CodeValidation, "population must be an integer")
	}
	if population < 0 {
		return domainerrors.New(domainerrors.CodeValidation, "population must not be negative")
	}
	if err := ValidateCoordinates(r.Latitude, r.Longitude); err != nil {
		return err
	}
	countryID, ok := r.CountryID.Int64()
	if !ok || countryID <= 0 {
		return domainerrors.New(domainerrors.CodeValidation, "countryId must be a positive integer")
	}
	return nil
}

// Record converts the validated request into a City.
func (r *CityRequest) Record() City {
	population, _ := r.Population.Int64()
	latitude, _ := r.Latitude.Float64()
	longitude, _ := r.Longitude.Float64()
	countryID, _ := r.CountryID.Int64()
	return City{
		Name:       r.Name,
		Population: population,
		Latitude:   latitude,
		Longitude:  longitude,
		CountryID:  countryID,
	}
}

// ValidateCoordinates checks a latitude/longitude pair. It is shared with
// the enrichment gateway so out-of-range coordinates are rejected before
// any external call.
func ValidateCoordinates(lat, lon Number) error {
	latitude, ok := lat.Float64()
	if !ok {
		return domainerrors.New(domainerrors.CodeValidation, "latitude must be a number")
	}
	if latitude < -90 || latitude > 90 {
		return domainerrors.New(domainerrors.CodeValidation, "latitude must be between -90 and 90")
	}
	longitude, ok := lon.Float64()
	if !ok {
		return domainerrors.New(domainerrors.CodeValidation, "longitude must be a number")
	}
	if longitude < -180 || longitude > 180 {
		return domainerrors.New(domainerrors.CodeValidation, "longitude must be between -180 and 180")
	}
	return nil
}
