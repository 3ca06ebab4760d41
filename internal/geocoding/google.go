package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/meridian/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider is a struct that holds the client for Google Maps API
// and a logger for logging purposes. It is used to interact with the
// Google Maps geocoding services.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

// GoogleAPIClient is the subset of *maps.Client used by the provider.
type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// ErrEmptyResponse is returned when the Google Maps API responds with an empty result.
var ErrEmptyResponse = errors.New("get empty response from Google Maps API")

// NewGoogleProvider initializes a new GoogleProvider with the given client and logger.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Search resolves query with the Google Maps Geocoding API and returns at most
// limit candidates, keeping Google's ordering.
func (gp *GoogleProvider) Search(ctx context.Context, query string, limit int) ([]models.Place, error) {
	gp.log.DebugContext(ctx, "Searching using Google Maps", "query", query)

	req := maps.GeocodingRequest{Address: query}
	results, err := gp.client.Geocode(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode query: %w", err)
	}

	if len(results) == 0 {
		return nil, ErrEmptyResponse
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	places := make([]models.Place, 0, len(results))
	for _, result := range results {
		location := result.Geometry.Location
		places = append(places, models.Place{
			PlaceID:     result.PlaceID,
			DisplayName: result.FormattedAddress,
			Coordinate:  models.Coordinate{Lat: location.Lat, Lng: location.Lng},
		})
	}

	return places, nil
}
