// Package geometrics computes great-circle distances between coordinates and
// formats distances and durations for display.
package geometrics

import (
	"errors"
	"fmt"
	"math"

	"github.com/UnknownOlympus/meridian/internal/models"
)

// EarthRadius is the mean Earth radius in meters used by the haversine formula.
const EarthRadius = 6371000.0

// averageSpeedKmh is the travel speed the pathfinding backend assumes for its duration estimate.
const averageSpeedKmh = 30.0

// ErrInvalidCoordinate is returned when a coordinate is outside the valid latitude/longitude range.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// ComputeDistance returns the great-circle distance in meters between a and b
// on a spherical Earth. Inputs are not validated; NaN propagates.
func ComputeDistance(a, b models.Coordinate) float64 {
	lat1Rad := toRadians(a.Lat)
	lat2Rad := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadius * c
}

// PathLength sums the great-circle distances between consecutive points of path.
func PathLength(path []models.Coordinate) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += ComputeDistance(path[i-1], path[i])
	}
	return total
}

// EstimateDuration returns the travel time in seconds for a distance in meters
// at an average speed of 30 km/h.
func EstimateDuration(meters float64) float64 {
	return (meters / 1000) / averageSpeedKmh * 3600
}

// Validate reports whether c lies within latitude [-90, 90] and longitude [-180, 180].
func Validate(c models.Coordinate) error {
	if math.IsNaN(c.Lat) || c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude %v must be between -90 and 90", ErrInvalidCoordinate, c.Lat)
	}
	if math.IsNaN(c.Lng) || c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("%w: longitude %v must be between -180 and 180", ErrInvalidCoordinate, c.Lng)
	}
	return nil
}
