package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter mounts the JSON API and, when contentDir is non-empty, serves
// the static quiz content (pages, question files, images) from it.
func NewRouter(api *API, contentDir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/config", api.HandleConfig)
		r.Get("/questions", api.HandleQuestions)
		r.Post("/sessions", api.HandleCreateSession)
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", api.HandleSessionState)
			r.Post("/answer", api.HandleAnswer)
			r.Post("/next", api.HandleAdvance)
			r.Get("/review", api.HandleReview)
		})
		r.Get("/results/recent", api.HandleRecentResults)
	})

	if contentDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(contentDir)))
	}

	return r
}
