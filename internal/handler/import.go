package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tunegraph/tunegraph/internal/domain"
)

// POST /api/spotify/import
func (h *Handler) ImportPlaylist(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Request body must be JSON")
		return
	}
	if req.PlaylistURL == "" {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "playlist_url is required")
		return
	}

	report, err := h.service.ImportPlaylist(r.Context(), req.PlaylistURL)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			writeError(w, http.StatusBadRequest, "invalid_parameter", err.Error())
			return
		}
		if errors.Is(err, domain.ErrStoreUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "store_unavailable",
				"Catalog store is temporarily unavailable")
			return
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			writeError(w, http.StatusServiceUnavailable, "request_timeout",
				"Request timed out, please try again")
			return
		}
		writeError(w, http.StatusBadGateway, "import_failed",
			"Failed to import playlist from the streaming API")
		return
	}

	writeJSON(w, http.StatusOK, report)
}
