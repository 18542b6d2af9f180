// README: HTTP router registration.
package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"wanderbot/internal/http/handlers"
	"wanderbot/internal/http/middleware"
	"wanderbot/internal/service"
)

const (
	DefaultPlanTimeout = 90 * time.Second
	DefaultChatTimeout = 30 * time.Second
)

type RouterDeps struct {
	Planner *service.TripPlanner
	// Places and Routes are optional; their endpoints answer 503 when unset.
	Places handlers.PlaceEnricher
	Routes handlers.LegEstimator

	PlanTimeout time.Duration
	ChatTimeout time.Duration
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.PlanTimeout <= 0 {
		deps.PlanTimeout = DefaultPlanTimeout
	}
	if deps.ChatTimeout <= 0 {
		deps.ChatTimeout = DefaultChatTimeout
	}

	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging())

	r.GET("/health", handlers.Health)

	api := r.Group("/api")
	api.GET("/interests", handlers.Interests)

	credentialHandler := handlers.NewCredentialHandler(deps.Planner)
	api.GET("/credential", credentialHandler.Status)
	api.PUT("/credential", credentialHandler.Set)

	planHandler := handlers.NewPlanHandler(deps.Planner, deps.Places, deps.Routes, deps.PlanTimeout)
	api.POST("/plans", planHandler.Generate)
	api.GET("/plans/current", planHandler.Current)
	api.DELETE("/plans/current", planHandler.Reset)
	api.GET("/plans/current/places", planHandler.Places)
	api.GET("/plans/current/routes", planHandler.Routes)

	chatHandler := handlers.NewChatHandler(deps.Planner, deps.ChatTimeout)
	api.GET("/chat", chatHandler.Messages)
	api.POST("/chat", chatHandler.Ask)

	return r
}
