package handler

import (
	"errors"
	"net/http"

	"github.com/tunegraph/tunegraph/internal/domain"
)

// GET /api/tracks
func (h *Handler) GetTracks(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.service.Tracks(r.Context())
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	if tracks == nil {
		tracks = []domain.Track{}
	}
	writeJSON(w, http.StatusOK, tracks)
}

// GET /api/artists
func (h *Handler) GetArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := h.service.Artists(r.Context())
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	if artists == nil {
		artists = []domain.Artist{}
	}
	writeJSON(w, http.StatusOK, artists)
}

func writeCatalogError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		writeError(w, http.StatusServiceUnavailable, "store_unavailable",
			"Catalog store is temporarily unavailable")
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
}

// GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	dbErr, cacheErr := h.service.Ping(r.Context())

	resp := HealthResponse{Status: "ok", Postgres: "up", Redis: "up"}
	status := http.StatusOK
	if dbErr != nil {
		resp.Status, resp.Postgres = "degraded", "down"
		status = http.StatusServiceUnavailable
	}
	if cacheErr != nil {
		resp.Status, resp.Redis = "degraded", "down"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, resp)
}
