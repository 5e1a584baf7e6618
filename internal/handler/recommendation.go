package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tunegraph/tunegraph/internal/domain"
)

// GET /api/recommendations?seed_tracks=a,b,c&limit=N
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	seeds := splitSeeds(r.URL.Query().Get("seed_tracks"))
	if len(seeds) == 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "At least one seed track is required")
		return
	}

	// Parse and validate limit; zero means "use the configured
	// default", and the service clamps to the configured max.
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	result, err := h.service.Recommend(r.Context(), seeds, limit)
	if err != nil {
		writeRecommendError(w, err)
		return
	}

	resp := RecommendationResponse{
		Seeds:           seeds,
		Recommendations: result.Tracks,
		Metadata: domain.RecommendationMeta{
			CacheHit:    result.CacheHit,
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			TotalCount:  len(result.Tracks),
		},
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeRecommendError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, "invalid_parameter", err.Error())
	case errors.Is(err, domain.ErrNoValidSeeds):
		writeError(w, http.StatusUnprocessableEntity, "no_valid_seeds",
			"None of the requested seed tracks exist in the catalog")
	case errors.Is(err, domain.ErrStoreUnavailable):
		writeError(w, http.StatusServiceUnavailable, "store_unavailable",
			"Catalog store is temporarily unavailable")
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, "request_timeout",
			"Request timed out, please try again")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}

func splitSeeds(raw string) []string {
	var seeds []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			seeds = append(seeds, part)
		}
	}
	return seeds
}
