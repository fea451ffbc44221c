package api

import (
	"net/http"

	"github.com/outfitly/outfitly/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	routes.Register(
		mux,
		domain.Wardrobe.Handler().Routes(),
		domain.Chat.Handler().Routes(),
	)
}
