// README: Entry point; loads config, wires the planner and optional Maps services, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"wanderbot/internal/app"
	"wanderbot/internal/config"
	httptransport "wanderbot/internal/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	planner, closeStore, err := app.NewPlanner(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	deps := httptransport.RouterDeps{Planner: planner}
	places, routes, err := app.NewMapsServices(cfg)
	if err != nil {
		log.Fatalf("maps init: %v", err)
	}
	if places != nil {
		deps.Places = places
		deps.Routes = routes
		log.Println("place lookups enabled")
	}

	gin.SetMode(gin.ReleaseMode)
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: httptransport.NewRouter(deps)}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("wanderbot api listening on %s (gateway=%s, credentials=%s)", cfg.HTTP.Addr, cfg.Gemini.Gateway, cfg.Credential.Backend)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
