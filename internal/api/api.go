// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/outfitly/outfitly/internal/config"
	"github.com/outfitly/outfitly/internal/infrastructure"
	"github.com/outfitly/outfitly/pkg/middleware"
	"github.com/outfitly/outfitly/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// The session sweeper and classification client shutdown are registered
// with the lifecycle coordinator.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)

	domain, err := NewDomain(runtime.Lifecycle.Context(), runtime)
	if err != nil {
		return nil, err
	}

	if err := domain.Sessions.Start(runtime.Lifecycle); err != nil {
		return nil, err
	}

	lc := runtime.Lifecycle
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := domain.Stylist.Close(); err != nil {
			runtime.Logger.Error("stylist close failed", "error", err)
		}
	})

	mux := http.NewServeMux()
	registerRoutes(mux, domain)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
