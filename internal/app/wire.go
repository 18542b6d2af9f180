// README: Shared wiring for the API server and the CLI: credential backend, model gateway, planner and maps services.
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"wanderbot/internal/ai"
	"wanderbot/internal/config"
	"wanderbot/internal/credential"
	"wanderbot/internal/infra"
	"wanderbot/internal/maps"
	"wanderbot/internal/service"
)

const connectTimeout = 5 * time.Second

// OpenCredentialStore returns the configured backend and a func releasing its connections.
func OpenCredentialStore(ctx context.Context, cfg config.Config) (credential.Store, func(), error) {
	noop := func() {}
	switch cfg.Credential.Backend {
	case config.BackendMemory:
		return credential.NewMemoryStore(), noop, nil
	case config.BackendRedis:
		ctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		client, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			return nil, noop, err
		}
		return credential.NewRedisStore(client), func() { _ = client.Close() }, nil
	case config.BackendPostgres:
		ctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		pool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return nil, noop, err
		}
		return credential.NewPostgresStore(pool), pool.Close, nil
	case config.BackendFile, "":
		path := cfg.Credential.File
		if path == "" {
			p, err := credential.DefaultFilePath()
			if err != nil {
				return nil, noop, err
			}
			path = p
		}
		return credential.NewFileStore(path), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown credential backend %q", cfg.Credential.Backend)
	}
}

func NewGenerator(cfg config.Config) ai.Generator {
	if cfg.Gemini.Gateway == config.GatewaySDK {
		return ai.NewSDKGateway(cfg.Gemini.Model)
	}
	return ai.NewGeminiGateway(ai.WithBaseURL(cfg.Gemini.BaseURL), ai.WithModel(cfg.Gemini.Model))
}

// NewPlanner opens the credential store, seeds it from GEMINI_API_KEY when empty
// and builds the planner.
func NewPlanner(ctx context.Context, cfg config.Config) (*service.TripPlanner, func(), error) {
	store, closeStore, err := OpenCredentialStore(ctx, cfg)
	if err != nil {
		return nil, closeStore, fmt.Errorf("credential store: %w", err)
	}
	seeded, err := credential.Seed(ctx, store, cfg.Gemini.SeedKey)
	if err != nil {
		closeStore()
		return nil, func() {}, fmt.Errorf("seed api key: %w", err)
	}
	if seeded {
		log.Printf("api key seeded from GEMINI_API_KEY into %s store", cfg.Credential.Backend)
	}

	planner := service.NewTripPlanner(store, NewGenerator(cfg),
		service.WithPlanMaxTokens(cfg.Gemini.PlanMaxTokens),
		service.WithChatMaxTokens(cfg.Gemini.ChatMaxTokens),
		service.WithRetry(service.RetryPolicy{MaxAttempts: cfg.Retry.Attempts, BaseDelay: cfg.Retry.BaseDelay}),
	)
	return planner, closeStore, nil
}

// NewMapsServices returns nil services when no Maps key is configured.
func NewMapsServices(cfg config.Config) (*maps.PlacesService, *maps.RouteService, error) {
	if cfg.Maps.APIKey == "" {
		return nil, nil, nil
	}
	places, err := maps.NewPlacesService(cfg.Maps.APIKey)
	if err != nil {
		return nil, nil, err
	}
	routes, err := maps.NewRouteService(cfg.Maps.APIKey)
	if err != nil {
		return nil, nil, err
	}
	return places, routes, nil
}
