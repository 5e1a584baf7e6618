package handler

import "github.com/tunegraph/tunegraph/internal/domain"

type RecommendationResponse struct {
	Seeds           []string                  `json:"seeds"`
	Recommendations []domain.RankedTrack      `json:"recommendations"`
	Metadata        domain.RecommendationMeta `json:"metadata"`
}

type ImportRequest struct {
	PlaylistURL string `json:"playlist_url"`
}

type ExportRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	TrackNames  []string `json:"track_names"`
	AccessToken string   `json:"access_token"`
}

type ExportRecommendationsRequest struct {
	SeedTracks         []string `json:"seed_tracks"`
	PlaylistName       string   `json:"playlist_name"`
	YouTubeAccessToken string   `json:"youtube_access_token"`
	Limit              int      `json:"limit,omitempty"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Postgres string `json:"postgres"`
	Redis    string `json:"redis"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
