package geocoding

import (
	"context"
	"errors"
	"net/http"

	"github.com/UnknownOlympus/meridian/internal/models"
)

// Provider is an interface that defines a method for searching places.
// The Search method takes a context, a free-text query and the maximum number
// of candidates, and returns the matching places ordered by relevance.
type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]models.Place, error)
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// IsNoResults reports whether err means the provider found no candidates.
func IsNoResults(err error) bool {
	return errors.Is(err, ErrEmptyResponse) ||
		errors.Is(err, ErrNominatimEmptyResponse) ||
		errors.Is(err, ErrVisicomEmptyResponse)
}
