package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/openreceptor/receptordb/internal/api/handlers"
	mw "github.com/openreceptor/receptordb/internal/api/middleware"
)

type Dependencies struct {
	ProteinsHandler *handlers.ProteinsHandler
	CatalogHandler  *handlers.CatalogHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS)
	r.Use(mw.RateLimit(10, 20))
	r.Use(chimid.Compress(5))

	hh := handlers.NewHealthHandler()
	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)

	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/proteins", func(pr chi.Router) {
			pr.Get("/", dep.ProteinsHandler.List)
			pr.Get("/{entry_name}", dep.ProteinsHandler.Get)
		})
		api.Get("/publications", dep.CatalogHandler.Publications)
		api.Get("/news", dep.CatalogHandler.News)
		api.Get("/pages", dep.CatalogHandler.Pages)
		api.Get("/documentation", dep.CatalogHandler.Documentation)
	})

	return r
}
