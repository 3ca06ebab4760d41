package models

// Coordinate represents a geographical point in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"` // Latitude of the geographical point, -90..90.
	Lng float64 `json:"lng"` // Longitude of the geographical point, -180..180.
}

// Marker is a coordinate placed on the map, optionally labelled.
type Marker struct {
	Coordinate
	Label string `json:"label,omitempty"`
}

// Place is a single geocoding candidate.
type Place struct {
	PlaceID     string     `json:"place_id"`
	DisplayName string     `json:"display_name"`
	Coordinate  Coordinate `json:"coordinate"`
}
