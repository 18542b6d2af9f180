package maps

import (
	"fmt"

	"googlemaps.github.io/maps"
)

// NewClient builds a Google Maps client for the given API key. Extra options
// (base URL, HTTP client) are mostly useful in tests.
func NewClient(apiKey string, opts ...maps.ClientOption) (*maps.Client, error) {
	all := append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)
	client, err := maps.NewClient(all...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return client, nil
}
