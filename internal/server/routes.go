package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"winedeck/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/", func(r chi.Router) {
		r.Get("/wines", handler(s.getWines))

		r.Route("/v1", func(r chi.Router) {
			// admin zone
			r.Route("/catalog", func(r chi.Router) {
				r.Post("/sync", handler(s.postV1CatalogSync))
				r.Get("/sync/status", handler(s.getV1CatalogSyncStatus))
			})
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
