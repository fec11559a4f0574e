// README: Attraction hints for the itinerary prompt via Google Places text search.
package maps

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
)

const (
	minRating     = 4.0
	maxAttraction = 5
)

// Place represents a simplified attraction result.
type Place struct {
	Name             string
	Address          string
	Rating           float32
	PlaceID          string
	UserRatingsTotal int
}

// String renders the place as a single prompt line.
func (p Place) String() string {
	if p.Address == "" {
		return fmt.Sprintf("%s (%.1f)", p.Name, p.Rating)
	}
	return fmt.Sprintf("%s (%.1f) - %s", p.Name, p.Rating, p.Address)
}

// PlacesService handles interactions with Google Places API.
type PlacesService struct {
	client *maps.Client
}

// NewPlacesService creates a PlacesService with the given API key. Extra client options
// (for example maps.WithBaseURL) are applied after the key.
func NewPlacesService(apiKey string, opts ...maps.ClientOption) (*PlacesService, error) {
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client}, nil
}

// SearchAttractions returns up to five well-rated places in city matching interests.
// Duplicate place IDs are dropped.
func (s *PlacesService) SearchAttractions(ctx context.Context, city, interests string) ([]Place, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, nil
	}

	query := "tourist attractions in " + city
	if interests = strings.TrimSpace(interests); interests != "" {
		query = fmt.Sprintf("%s in %s", interests, city)
	}

	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	seen := make(map[string]struct{})
	var results []Place
	for _, r := range resp.Results {
		if r.Rating < minRating {
			continue
		}
		if _, dup := seen[r.PlaceID]; dup {
			continue
		}
		seen[r.PlaceID] = struct{}{}

		results = append(results, Place{
			Name:             r.Name,
			Address:          r.FormattedAddress,
			Rating:           r.Rating,
			PlaceID:          r.PlaceID,
			UserRatingsTotal: r.UserRatingsTotal,
		})
		if len(results) >= maxAttraction {
			break
		}
	}
	return results, nil
}

// Hints formats places as prompt lines.
func Hints(places []Place) []string {
	out := make([]string, 0, len(places))
	for _, p := range places {
		out = append(out, p.String())
	}
	return out
}
