package handler

import (
	"encoding/json"
	"net/http"
)

// POST /api/youtube/playlist
func (h *Handler) ExportPlaylist(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Request body must be JSON")
		return
	}
	if req.Name == "" || req.AccessToken == "" || len(req.TrackNames) == 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter",
			"name, access_token and track_names are required")
		return
	}

	playlist, err := h.service.ExportPlaylist(r.Context(), req.Name, req.Description, req.TrackNames, req.AccessToken)
	if err != nil {
		writeError(w, http.StatusBadGateway, "export_failed",
			"Failed to create playlist on the video platform")
		return
	}

	writeJSON(w, http.StatusOK, playlist)
}

// POST /api/youtube/playlist/from-recommendations
func (h *Handler) ExportRecommendations(w http.ResponseWriter, r *http.Request) {
	var req ExportRecommendationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Request body must be JSON")
		return
	}
	if len(req.SeedTracks) == 0 || req.PlaylistName == "" || req.YouTubeAccessToken == "" {
		writeError(w, http.StatusBadRequest, "invalid_parameter",
			"seed_tracks, playlist_name and youtube_access_token are required")
		return
	}

	playlist, err := h.service.ExportRecommendations(r.Context(),
		req.SeedTracks, req.PlaylistName, req.YouTubeAccessToken, req.Limit)
	if err != nil {
		writeRecommendError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, playlist)
}
