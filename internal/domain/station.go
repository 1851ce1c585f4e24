package domain

import "strings"

// Station is one normalized recording location.
type Station struct {
	// ID is "<network_code>.<station_code>".
	ID            string
	Latitude      float64
	Longitude     float64
	ElevationInM  float64
	LocalDepthInM float64
}

// NetworkCode returns the part of the id before the first dot.
func (s Station) NetworkCode() string {
	code, _, _ := strings.Cut(s.ID, ".")
	return code
}

// StationCode returns the part of the id after the first dot.
func (s Station) StationCode() string {
	_, code, _ := strings.Cut(s.ID, ".")
	return code
}

// StationRecord is the loose ingestion form of a Station. LocalDepthInM is
// the sensor burial depth below the surface and defaults to 0 when absent.
type StationRecord struct {
	ID            *string `json:"id" yaml:"id"`
	Latitude      *Number `json:"latitude" yaml:"latitude"`
	Longitude     *Number `json:"longitude" yaml:"longitude"`
	ElevationInM  *Number `json:"elevation_in_m" yaml:"elevation_in_m"`
	LocalDepthInM *Number `json:"local_depth_in_m" yaml:"local_depth_in_m"`
}

// Station validates the record and builds a normalized Station.
func (r StationRecord) Station() (Station, error) {
	id := ""
	if r.ID != nil {
		id = *r.ID
	}
	missing := func(field string) error {
		return &InvalidRecordError{Kind: "station", ID: id, Field: field, Reason: "required field is missing"}
	}

	if r.ID == nil || *r.ID == "" {
		return Station{}, missing("id")
	}
	if r.Latitude == nil {
		return Station{}, missing("latitude")
	}
	if r.Longitude == nil {
		return Station{}, missing("longitude")
	}
	if r.ElevationInM == nil {
		return Station{}, missing("elevation_in_m")
	}

	st := Station{
		ID:           id,
		Latitude:     float64(*r.Latitude),
		Longitude:    float64(*r.Longitude),
		ElevationInM: float64(*r.ElevationInM),
	}
	if r.LocalDepthInM != nil {
		st.LocalDepthInM = float64(*r.LocalDepthInM)
	}
	return st, nil
}
