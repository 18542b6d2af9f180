package maps

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"googlemaps.github.io/maps"

	"wanderbot/internal/plan"
)

// lookupConcurrency caps in-flight Places requests during Enrich.
const lookupConcurrency = 4

var ErrNoPlace = errors.New("no matching place found")

// Place represents a simplified location result.
type Place struct {
	Name             string  `json:"name"`
	Address          string  `json:"address"`
	Rating           float32 `json:"rating"`
	PlaceID          string  `json:"placeId"`
	UserRatingsTotal int     `json:"userRatingsTotal"`
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
}

// ActivityPlace is the lookup outcome for one distinct activity location.
type ActivityPlace struct {
	Location string `json:"location"`
	Days     []int  `json:"days"`
	Place    *Place `json:"place,omitempty"`
	Error    string `json:"error,omitempty"`
}

// PlacesService resolves itinerary locations with the Places Text Search API.
type PlacesService struct {
	client *maps.Client
}

// NewPlacesService creates a new PlacesService with the given API Key.
func NewPlacesService(apiKey string, opts ...maps.ClientOption) (*PlacesService, error) {
	client, err := NewClient(apiKey, opts...)
	if err != nil {
		return nil, err
	}
	return &PlacesService{client: client}, nil
}

// Lookup returns the best text-search match for "<location>, <destination>".
func (s *PlacesService) Lookup(ctx context.Context, location, destination string) (*Place, error) {
	query := strings.TrimSpace(location)
	if query == "" {
		return nil, ErrNoPlace
	}
	if d := strings.TrimSpace(destination); d != "" {
		query = fmt.Sprintf("%s, %s", query, d)
	}

	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}
	if len(resp.Results) == 0 {
		return nil, ErrNoPlace
	}

	r := resp.Results[0]
	return &Place{
		Name:             r.Name,
		Address:          r.FormattedAddress,
		Rating:           r.Rating,
		PlaceID:          r.PlaceID,
		UserRatingsTotal: r.UserRatingsTotal,
		Lat:              r.Geometry.Location.Lat,
		Lng:              r.Geometry.Location.Lng,
	}, nil
}

// Enrich looks up every distinct activity location of the itinerary. A failed
// lookup is recorded on its entry; only context cancellation fails the call.
func (s *PlacesService) Enrich(ctx context.Context, it *plan.Itinerary, destination string) ([]ActivityPlace, error) {
	entries := distinctLocations(it)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(lookupConcurrency)
	var mu sync.Mutex
	for i := range entries {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			place, err := s.Lookup(gctx, entries[i].Location, destination)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				entries[i].Error = err.Error()
				return nil
			}
			entries[i].Place = place
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// distinctLocations lists non-blank activity locations in first-seen order
// together with the days they appear on.
func distinctLocations(it *plan.Itinerary) []ActivityPlace {
	entries := []ActivityPlace{}
	if it == nil {
		return entries
	}
	index := map[string]int{}
	for _, day := range it.Days {
		for _, act := range day.Activities {
			loc := strings.TrimSpace(act.Location)
			if loc == "" {
				continue
			}
			key := strings.ToLower(loc)
			i, ok := index[key]
			if !ok {
				index[key] = len(entries)
				entries = append(entries, ActivityPlace{Location: loc, Days: []int{day.Day}})
				continue
			}
			if days := entries[i].Days; days[len(days)-1] != day.Day {
				entries[i].Days = append(days, day.Day)
			}
		}
	}
	return entries
}
