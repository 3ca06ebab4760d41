package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/meridian/internal/geometrics"
	"github.com/UnknownOlympus/meridian/internal/models"
	"golang.org/x/time/rate"
)

// NominatimBaseURL is the public OpenStreetMap Nominatim endpoint.
const NominatimBaseURL = "https://nominatim.openstreetmap.org"

// NominatimProvider implements the Provider interface using OpenStreetMap's Nominatim API.
// This is a free geocoding service with usage limits (1 request/second for fair use).
type NominatimProvider struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL for the Nominatim API
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter honoring the usage policy
	// userAgent is required by Nominatim usage policy
	userAgent string
}

// nominatimResponse represents a single search result of the Nominatim API.
type nominatimResponse struct {
	PlaceID     json.Number `json:"place_id"`     // Numeric OSM place identifier
	Lat         string      `json:"lat"`          // Latitude as string
	Lon         string      `json:"lon"`          // Longitude as string
	DisplayName string      `json:"display_name"` // Full human-readable name
}

// Common errors for Nominatim provider.
var (
	ErrNominatimEmptyResponse = errors.New("nominatim API returned empty response")
	ErrNominatimInvalidCoords = errors.New("nominatim API returned invalid coordinates")
)

const nominatimUserAgent = "Meridian-Route-Service/1.0 (https://github.com/UnknownOlympus/meridian)"

// NewNominatimProvider creates a new Nominatim geocoding provider.
// Uses the public Nominatim API endpoint by default.
func NewNominatimProvider(log *slog.Logger) *NominatimProvider {
	const timeout = 10
	return &NominatimProvider{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		baseURL:   NominatimBaseURL,
		log:       log,
		limiter:   rate.NewLimiter(rate.Every(time.Second), 1),
		userAgent: nominatimUserAgent,
	}
}

// NewNominatimProviderWithClient creates a Nominatim provider with a custom HTTP client
// and no rate limiting. Useful for testing with mocked HTTP clients.
func NewNominatimProviderWithClient(client HTTPClient, log *slog.Logger) *NominatimProvider {
	return &NominatimProvider{
		client:    client,
		baseURL:   NominatimBaseURL,
		log:       log,
		limiter:   rate.NewLimiter(rate.Inf, 0),
		userAgent: nominatimUserAgent,
	}
}

// Search resolves a free-text query to at most limit places using the Nominatim API.
// It respects Nominatim's usage policy by including a User-Agent header.
//
// Uses a progressive fallback strategy for long queries:
// 1. Try the full query
// 2. Try the query without its last comma-separated component
// 3. Try the query without its last two components
// 4. Try the first component only
func (np *NominatimProvider) Search(ctx context.Context, query string, limit int) ([]models.Place, error) {
	np.log.DebugContext(ctx, "Searching using Nominatim", "query", query)

	variations := np.generateQueryFallbacks(query)

	for idx, variation := range variations {
		places, err := np.searchSingle(ctx, variation, limit)
		if err == nil {
			if idx > 0 {
				np.log.InfoContext(ctx, "Found places using fallback query",
					"original", query,
					"fallback", variation,
					"fallback_level", idx)
			}
			return places, nil
		}

		// Anything but an empty response is final (API error, invalid coords, etc.)
		if !errors.Is(err, ErrNominatimEmptyResponse) {
			return nil, err
		}

		np.log.DebugContext(ctx, "Query variation returned no results, trying fallback",
			"variation", variation,
			"fallback_level", idx)
	}

	np.log.WarnContext(ctx, "All query fallbacks exhausted", "query", query, "variations_tried", len(variations))
	return nil, ErrNominatimEmptyResponse
}

// generateQueryFallbacks creates a list of progressively simpler query variations.
func (np *NominatimProvider) generateQueryFallbacks(query string) []string {
	if query == "" {
		return []string{""}
	}

	seen := make(map[string]bool)
	variations := []string{}

	addVariation := func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			variations = append(variations, v)
		}
	}

	addVariation(query)

	parts := strings.Split(query, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	if len(parts) > 1 {
		addVariation(strings.Join(parts[:len(parts)-1], ", "))

		const lenComponents = 2
		if len(parts) > lenComponents {
			addVariation(strings.Join(parts[:len(parts)-2], ", "))
		}

		addVariation(parts[0])
	}

	return variations
}

// searchSingle performs a single search request without fallback logic.
func (np *NominatimProvider) searchSingle(ctx context.Context, query string, limit int) ([]models.Place, error) {
	if err := np.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	reqURL, err := url.Parse(strings.TrimRight(np.baseURL, "/") + "/search")
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	params := reqURL.Query()
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("addressdetails", "1")
	reqURL.RawQuery = params.Encode()

	np.log.DebugContext(ctx, "Nominatim request URL", "url", reqURL.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set required headers per Nominatim usage policy
	req.Header.Set("User-Agent", np.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := np.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		np.log.ErrorContext(ctx, "Nominatim API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("nominatim API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	np.log.DebugContext(ctx, "Nominatim raw response", "body", string(body))

	var results []nominatimResponse
	if err = json.Unmarshal(body, &results); err != nil {
		np.log.ErrorContext(ctx, "Failed to parse Nominatim response", "error", err, "body", string(body))
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}

	if len(results) == 0 {
		return nil, ErrNominatimEmptyResponse
	}

	places := make([]models.Place, 0, len(results))
	for _, result := range results {
		var lat, lon float64
		if _, err = fmt.Sscanf(result.Lat, "%f", &lat); err != nil {
			return nil, fmt.Errorf("%w: invalid latitude: %s", ErrNominatimInvalidCoords, result.Lat)
		}
		if _, err = fmt.Sscanf(result.Lon, "%f", &lon); err != nil {
			return nil, fmt.Errorf("%w: invalid longitude: %s", ErrNominatimInvalidCoords, result.Lon)
		}

		coords := models.Coordinate{Lat: lat, Lng: lon}
		if err = geometrics.Validate(coords); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNominatimInvalidCoords, err)
		}

		places = append(places, models.Place{
			PlaceID:     result.PlaceID.String(),
			DisplayName: result.DisplayName,
			Coordinate:  coords,
		})
	}

	if len(places) > limit && limit > 0 {
		places = places[:limit]
	}

	return places, nil
}
