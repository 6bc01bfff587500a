// Package models defines the catalog records and the typed request payloads
// that gate everything reaching the store.
package models

// Continent is the root of the hierarchy. ContinentName fields on child
// records are join-computed view data, never stored duplicates.
type Continent struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Country belongs to exactly one continent.
type Country struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Population  int64  `json:"population"`
	Language    string `json:"language"`
	Currency    string `json:"currency"`
	ContinentID int64  `json:"continentId"`

	// ContinentName is filled from a join on reads; it is not a column.
	ContinentName string `json:"continentName,omitempty"`
}

// City belongs to exactly one country.
type City struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Population int64   `json:"population"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	CountryID  int64   `json:"countryId"`

	// CountryName is filled from a join on reads; it is not a column.
	CountryName string `json:"countryName,omitempty"`
}
