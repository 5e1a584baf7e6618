package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/tunegraph/tunegraph/internal/domain"
	"github.com/tunegraph/tunegraph/internal/engine"
	"github.com/tunegraph/tunegraph/internal/spotify"
	"github.com/tunegraph/tunegraph/internal/youtube"
)

const (
	defaultLimit      = 20
	maxLimit          = 100
	artistConcurrency = 5
)

// CatalogStore is the persistence surface the service orchestrates
// over. *repository.Repository implements it.
type CatalogStore interface {
	UpsertTrack(ctx context.Context, t domain.Track) error
	UpsertArtist(ctx context.Context, a domain.Artist) error
	GetAllTracks(ctx context.Context) ([]domain.Track, error)
	GetAllArtists(ctx context.Context) ([]domain.Artist, error)
	TracksByIDs(ctx context.Context, ids []string) ([]domain.Track, error)
	TrackNamesByIDs(ctx context.Context, ids []string) (map[string]string, error)
	Ping(ctx context.Context) error
}

// RecommendationCache stores ranked results keyed by seed set and
// limit. *cache.Cache implements it.
type RecommendationCache interface {
	Get(ctx context.Context, seedIDs []string, limit int) ([]domain.RankedTrack, bool, error)
	Set(ctx context.Context, seedIDs []string, limit int, recs []domain.RankedTrack) error
	Clear(ctx context.Context) error
	Ping(ctx context.Context) error
}

type Service struct {
	repo    CatalogStore
	cache   RecommendationCache
	engine  *engine.Engine
	spotify *spotify.Client
	youtube *youtube.Client

	recDefault int
	recMax     int
}

func NewService(repo CatalogStore, cache RecommendationCache, eng *engine.Engine,
	sp *spotify.Client, yt *youtube.Client, recDefault, recMax int) *Service {
	if recDefault <= 0 {
		recDefault = defaultLimit
	}
	if recMax <= 0 {
		recMax = maxLimit
	}
	return &Service{
		repo:       repo,
		cache:      cache,
		engine:     eng,
		spotify:    sp,
		youtube:    yt,
		recDefault: recDefault,
		recMax:     recMax,
	}
}

// Recommend serves ranked recommendations for the seed set, cache-aside.
func (s *Service) Recommend(ctx context.Context, seedIDs []string, limit int) (*domain.RecommendationResult, error) {
	seeds := engine.NormalizeSeeds(seedIDs)
	if limit <= 0 {
		limit = s.recDefault
	} else if limit > s.recMax {
		limit = s.recMax
	}

	cached, found, err := s.cache.Get(ctx, seeds, limit)
	if err != nil {
		log.Printf("[service] cache get error for seeds %v: %v", seeds, err)
	}
	if found {
		return &domain.RecommendationResult{
			Tracks:   cached,
			CacheHit: true,
		}, nil
	}

	ranked, err := s.engine.Recommend(ctx, seeds, limit)
	if err != nil {
		return nil, err
	}
	ranked = s.withNames(ctx, ranked)

	if cacheErr := s.cache.Set(ctx, seeds, limit, ranked); cacheErr != nil {
		log.Printf("[service] cache set error for seeds %v: %v", seeds, cacheErr)
	}

	return &domain.RecommendationResult{
		Tracks:   ranked,
		CacheHit: false,
	}, nil
}

// withNames fills in display names. A track whose metadata is missing
// keeps its id as the name; lookup failures never abort the request.
func (s *Service) withNames(ctx context.Context, ranked []domain.RankedTrack) []domain.RankedTrack {
	ids := make([]string, len(ranked))
	for i, r := range ranked {
		ids[i] = r.TrackID
	}

	names, err := s.repo.TrackNamesByIDs(ctx, ids)
	if err != nil {
		log.Printf("[service] name lookup failed, falling back to ids: %v", err)
		names = nil
	}
	for i := range ranked {
		if name, ok := names[ranked[i].TrackID]; ok && name != "" {
			ranked[i].Name = name
		} else {
			ranked[i].Name = ranked[i].TrackID
		}
	}
	return ranked
}

// ImportPlaylist pulls a streaming playlist into the catalog: tracks
// with audio features, their artists, albums and the edges between
// them. Artist detail fetches run on a bounded worker pool; a failed
// artist fetch is logged and skipped, never fatal.
func (s *Service) ImportPlaylist(ctx context.Context, playlistURL string) (*domain.ImportReport, error) {
	playlistID, err := spotify.ExtractPlaylistID(playlistURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	tracks, err := s.spotify.PlaylistTracks(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("fetch playlist tracks: %w", err)
	}

	imported := 0
	seen := make(map[string]bool)
	var artistIDs []string
	for _, t := range tracks {
		if err := s.repo.UpsertTrack(ctx, t); err != nil {
			return nil, fmt.Errorf("store track %s: %w", t.ID, err)
		}
		imported++
		for _, id := range t.ArtistIDs {
			if !seen[id] {
				seen[id] = true
				artistIDs = append(artistIDs, id)
			}
		}
	}

	importedArtists := s.importArtists(ctx, artistIDs)

	// Catalog changed, cached rankings are stale.
	if err := s.cache.Clear(ctx); err != nil {
		log.Printf("[service] cache invalidation error after import: %v", err)
	}

	return &domain.ImportReport{
		ImportID:        uuid.NewString(),
		PlaylistID:      playlistID,
		ImportedTracks:  imported,
		ImportedArtists: importedArtists,
	}, nil
}

// importArtists fetches and stores artist details concurrently with a
// bounded worker pool.
func (s *Service) importArtists(ctx context.Context, artistIDs []string) int {
	results := make([]bool, len(artistIDs))
	var wg sync.WaitGroup
	sem := make(chan struct{}, artistConcurrency) // semaphore

	for i, artistID := range artistIDs {
		wg.Add(1)
		go func(idx int, id string) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			artist, err := s.spotify.Artist(ctx, id)
			if err != nil {
				log.Printf("[service] failed to fetch artist %s: %v", id, err)
				return
			}
			if err := s.repo.UpsertArtist(ctx, artist); err != nil {
				log.Printf("[service] failed to store artist %s: %v", id, err)
				return
			}
			results[idx] = true
		}(i, artistID)
	}
	wg.Wait()

	count := 0
	for _, ok := range results {
		if ok {
			count++
		}
	}
	return count
}

// ExportPlaylist writes the given track names to the video platform as
// a new playlist.
func (s *Service) ExportPlaylist(ctx context.Context, name, description string, trackNames []string, accessToken string) (*domain.CreatedPlaylist, error) {
	return s.youtube.CreateFromTracks(ctx, name, description, trackNames, accessToken)
}

// ExportRecommendations runs a recommendation and publishes the result
// as a video-platform playlist.
func (s *Service) ExportRecommendations(ctx context.Context, seedIDs []string, playlistName, accessToken string, limit int) (*domain.CreatedPlaylist, error) {
	result, err := s.Recommend(ctx, seedIDs, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(result.Tracks))
	for i, r := range result.Tracks {
		ids[i] = r.TrackID
	}
	tracks, err := s.repo.TracksByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch recommended tracks: %w", err)
	}
	byID := make(map[string]domain.Track, len(tracks))
	for _, t := range tracks {
		byID[t.ID] = t
	}

	queries := make([]string, 0, len(result.Tracks))
	for _, r := range result.Tracks {
		if t, ok := byID[r.TrackID]; ok {
			queries = append(queries, youtube.FormatSearchQuery(t.Name, t.ArtistNames))
		} else {
			queries = append(queries, r.Name)
		}
	}

	return s.youtube.CreateFromTracks(ctx, playlistName,
		"Generated from seed-track recommendations", queries, accessToken)
}

func (s *Service) Tracks(ctx context.Context) ([]domain.Track, error) {
	return s.repo.GetAllTracks(ctx)
}

func (s *Service) Artists(ctx context.Context) ([]domain.Artist, error) {
	return s.repo.GetAllArtists(ctx)
}

// Ping reports backing-store connectivity for the health endpoint.
func (s *Service) Ping(ctx context.Context) (dbErr, cacheErr error) {
	return s.repo.Ping(ctx), s.cache.Ping(ctx)
}
