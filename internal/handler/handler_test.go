package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tunegraph/tunegraph/internal/domain"
	"github.com/tunegraph/tunegraph/internal/engine"
	"github.com/tunegraph/tunegraph/internal/service"
	"github.com/tunegraph/tunegraph/internal/spotify"
)

// fakeCatalog backs both the engine's feature reads and the service's
// metadata lookups.
type fakeCatalog struct {
	features map[string]domain.AudioFeatures
	names    map[string]string
}

func (f *fakeCatalog) FeaturesByIDs(ctx context.Context, ids []string) (map[string]domain.AudioFeatures, error) {
	out := make(map[string]domain.AudioFeatures)
	for _, id := range ids {
		if feats, ok := f.features[id]; ok {
			out[id] = feats
		}
	}
	return out, nil
}

func (f *fakeCatalog) AllFeatures(ctx context.Context, excluding []string) ([]domain.FeatureVector, error) {
	skip := make(map[string]bool, len(excluding))
	for _, id := range excluding {
		skip[id] = true
	}
	var out []domain.FeatureVector
	for id, feats := range f.features {
		if !skip[id] {
			out = append(out, domain.FeatureVector{TrackID: id, Features: feats})
		}
	}
	return out, nil
}

func (f *fakeCatalog) UpsertTrack(ctx context.Context, t domain.Track) error   { return nil }
func (f *fakeCatalog) UpsertArtist(ctx context.Context, a domain.Artist) error { return nil }
func (f *fakeCatalog) GetAllTracks(ctx context.Context) ([]domain.Track, error) {
	return nil, nil
}
func (f *fakeCatalog) GetAllArtists(ctx context.Context) ([]domain.Artist, error) {
	return nil, nil
}
func (f *fakeCatalog) TracksByIDs(ctx context.Context, ids []string) ([]domain.Track, error) {
	return nil, nil
}
func (f *fakeCatalog) TrackNamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	return f.names, nil
}
func (f *fakeCatalog) Ping(ctx context.Context) error { return nil }

// missCache never hits; Set and Clear are no-ops.
type missCache struct{}

func (missCache) Get(ctx context.Context, seedIDs []string, limit int) ([]domain.RankedTrack, bool, error) {
	return nil, false, nil
}
func (missCache) Set(ctx context.Context, seedIDs []string, limit int, recs []domain.RankedTrack) error {
	return nil
}
func (missCache) Clear(ctx context.Context) error { return nil }
func (missCache) Ping(ctx context.Context) error  { return nil }

// newTestHandler wires a handler over a fake catalog with one seed and
// five candidates, recommendation default 2 and max 3.
func newTestHandler(t *testing.T, sp *spotify.Client) *Handler {
	t.Helper()

	catalog := &fakeCatalog{
		features: map[string]domain.AudioFeatures{
			"seed": {Valence: 0.5},
			"c1":   {Valence: 0.45},
			"c2":   {Valence: 0.55},
			"c3":   {Valence: 0.6},
			"c4":   {Valence: 0.7},
			"c5":   {Valence: 0.8},
		},
		names: map[string]string{"c1": "One", "c2": "Two"},
	}
	eng, err := engine.New(catalog, engine.DistanceConfig{})
	require.NoError(t, err)

	svc := service.NewService(catalog, missCache{}, eng, sp, nil, 2, 3)
	return NewHandler(svc)
}

func getRecommendations(t *testing.T, h *Handler, query string) (*httptest.ResponseRecorder, RecommendationResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/recommendations?"+query, nil)
	h.GetRecommendations(rec, req)

	var resp RecommendationResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestGetRecommendationsAppliesConfiguredDefault(t *testing.T) {
	h := newTestHandler(t, nil)

	rec, resp := getRecommendations(t, h, "seed_tracks=seed")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Recommendations, 2)
	require.Equal(t, "c1", resp.Recommendations[0].TrackID)
	require.Equal(t, "One", resp.Recommendations[0].Name)
}

func TestGetRecommendationsClampsToConfiguredMax(t *testing.T) {
	h := newTestHandler(t, nil)

	rec, resp := getRecommendations(t, h, "seed_tracks=seed&limit=50")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Recommendations, 3)
}

func TestGetRecommendationsHonorsExplicitLimit(t *testing.T) {
	h := newTestHandler(t, nil)

	rec, resp := getRecommendations(t, h, "seed_tracks=seed&limit=1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Recommendations, 1)
}

func TestGetRecommendationsRejectsBadLimit(t *testing.T) {
	h := newTestHandler(t, nil)

	for _, limit := range []string{"0", "-2", "abc"} {
		rec, _ := getRecommendations(t, h, "seed_tracks=seed&limit="+limit)
		require.Equal(t, http.StatusBadRequest, rec.Code, "limit=%s", limit)
	}
}

func TestGetRecommendationsRequiresSeeds(t *testing.T) {
	h := newTestHandler(t, nil)

	rec, _ := getRecommendations(t, h, "seed_tracks=")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportPlaylistMapsCancellationToTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items":[]}`)
	}))
	defer srv.Close()

	h := newTestHandler(t, spotify.NewClient(srv.Client(), srv.URL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/spotify/import",
		strings.NewReader(`{"playlist_url":"pl1"}`)).WithContext(ctx)
	h.ImportPlaylist(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "request_timeout", resp.Error)
}
