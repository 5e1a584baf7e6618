package engine

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/tunegraph/tunegraph/internal/domain"
)

// FeatureStore is the read-only catalog accessor the engine scores
// against. Implementations must not cache across calls; each call
// reflects current catalog state.
type FeatureStore interface {
	// FeaturesByIDs returns the feature vectors for the ids that exist.
	// Missing ids are simply absent from the map.
	FeaturesByIDs(ctx context.Context, ids []string) (map[string]domain.AudioFeatures, error)

	// AllFeatures returns every catalog feature vector whose track id is
	// not in the exclusion list, fully drained.
	AllFeatures(ctx context.Context, excluding []string) ([]domain.FeatureVector, error)
}

// Engine computes seed-based nearest-neighbor recommendations over the
// catalog. The store handle is injected at construction; the engine
// itself holds no mutable state and is safe for concurrent use.
type Engine struct {
	store FeatureStore
	cfg   DistanceConfig
}

func New(store FeatureStore, cfg DistanceConfig) (*Engine, error) {
	if len(cfg.Dimensions) == 0 {
		cfg.Dimensions = DefaultDimensions
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Engine{store: store, cfg: cfg}, nil
}

// Recommend resolves the seed tracks, scores every non-seed catalog
// track by its minimum distance to any seed, and returns up to limit
// results ordered by ascending score (ties broken by ascending track
// id). Seed ids that do not resolve are dropped; if none resolve the
// call fails with domain.ErrNoValidSeeds.
func (e *Engine) Recommend(ctx context.Context, seedIDs []string, limit int) ([]domain.RankedTrack, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", domain.ErrInvalidArgument, limit)
	}

	seeds := NormalizeSeeds(seedIDs)
	if len(seeds) == 0 {
		return nil, fmt.Errorf("%w: at least one seed track required", domain.ErrInvalidArgument)
	}

	resolved, err := e.store.FeaturesByIDs(ctx, seeds)
	if err != nil {
		return nil, fmt.Errorf("resolve seeds: %w", err)
	}
	if len(resolved) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoValidSeeds, strings.Join(seeds, ","))
	}
	if len(resolved) < len(seeds) {
		var dropped []string
		for _, id := range seeds {
			if _, ok := resolved[id]; !ok {
				dropped = append(dropped, id)
			}
		}
		log.Printf("[engine] dropped %d unresolved seed(s): %s", len(dropped), strings.Join(dropped, ","))
	}

	// Exclude every requested seed id, resolved or not.
	candidates, err := e.store.AllFeatures(ctx, seeds)
	if err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}

	ranked := make([]domain.RankedTrack, 0, len(candidates))
	for _, cand := range candidates {
		best := 0.0
		first := true
		for _, seed := range resolved {
			d := e.Distance(cand.Features, seed)
			if first || d < best {
				best = d
				first = false
			}
		}
		ranked = append(ranked, domain.RankedTrack{
			TrackID: cand.TrackID,
			Score:   best,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score < ranked[j].Score
		}
		return ranked[i].TrackID < ranked[j].TrackID
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	for i := range ranked {
		ranked[i].Rank = i
	}

	return ranked, nil
}

// NormalizeSeeds trims and drops empty ids and removes duplicates,
// keeping first-occurrence order. The service layer uses the same
// normalization for cache keys.
func NormalizeSeeds(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
