package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tunegraph/tunegraph/internal/handler"
)

func Setup(h *handler.Handler) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/recommendations", h.GetRecommendations)
		r.Post("/spotify/import", h.ImportPlaylist)
		r.Get("/tracks", h.GetTracks)
		r.Get("/artists", h.GetArtists)
		r.Post("/youtube/playlist", h.ExportPlaylist)
		r.Post("/youtube/playlist/from-recommendations", h.ExportRecommendations)
	})
	r.Get("/health", h.Health)

	// Web form
	r.Handle("/", http.FileServer(http.Dir("web")))

	return r
}
