package maps

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"googlemaps.github.io/maps"

	"wanderbot/internal/plan"
)

var ErrNoRoute = errors.New("no route found")

// RouteService estimates travel between consecutive activities of a day.
type RouteService struct {
	client *maps.Client
	mode   maps.Mode
}

// NewRouteService creates a new RouteService with the given API Key. Legs are
// estimated for public transit.
func NewRouteService(apiKey string, opts ...maps.ClientOption) (*RouteService, error) {
	client, err := NewClient(apiKey, opts...)
	if err != nil {
		return nil, err
	}
	return &RouteService{client: client, mode: maps.TravelModeTransit}, nil
}

// Leg is the travel estimate between two consecutive activities.
type Leg struct {
	Day      int           `json:"day"`
	From     string        `json:"from"`
	To       string        `json:"to"`
	Duration time.Duration `json:"duration"`
	Distance string        `json:"distance,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// GetTravelEstimate returns the duration and distance string between two places.
func (s *RouteService) GetTravelEstimate(ctx context.Context, origin, destination string) (time.Duration, string, error) {
	r := &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        s.mode,
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return 0, "", fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return 0, "", ErrNoRoute
	}

	leg := routes[0].Legs[0]
	return leg.Duration, leg.Distance.HumanReadable, nil
}

// DayLegs estimates every hop between consecutive activity locations, day by day.
// Repeated locations are skipped and a failed estimate is recorded on its leg.
func (s *RouteService) DayLegs(ctx context.Context, it *plan.Itinerary, destination string) ([]Leg, error) {
	legs := []Leg{}
	if it == nil {
		return legs, nil
	}
	for _, day := range it.Days {
		prev := ""
		for _, act := range day.Activities {
			loc := strings.TrimSpace(act.Location)
			if loc == "" || strings.EqualFold(loc, prev) {
				continue
			}
			if prev != "" {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				leg := Leg{Day: day.Day, From: prev, To: loc}
				d, dist, err := s.GetTravelEstimate(ctx, qualify(prev, destination), qualify(loc, destination))
				if err != nil {
					leg.Error = err.Error()
				} else {
					leg.Duration, leg.Distance = d, dist
				}
				legs = append(legs, leg)
			}
			prev = loc
		}
	}
	return legs, nil
}

func qualify(location, destination string) string {
	if destination == "" {
		return location
	}
	return location + ", " + destination
}
