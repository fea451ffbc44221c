package api

import (
	"github.com/outfitly/outfitly/internal/config"
	"github.com/outfitly/outfitly/internal/infrastructure"
	"github.com/outfitly/outfitly/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Stylist    *config.StylistConfig
	Chat       *config.ChatConfig
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Pagination: cfg.API.Pagination,
		Stylist:    &cfg.Stylist,
		Chat:       &cfg.Chat,
	}
}
