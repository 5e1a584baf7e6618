package domain

// RankedTrack is one recommendation: a candidate track with its
// aggregate dissimilarity score against the seed set and its 0-based
// position in the ascending-score ordering. Owned by a single request,
// never mutated after creation.
type RankedTrack struct {
	TrackID string  `json:"id"`
	Name    string  `json:"name"`
	Score   float64 `json:"score"`
	Rank    int     `json:"rank"`
}

type RecommendationMeta struct {
	CacheHit    bool   `json:"cache_hit"`
	GeneratedAt string `json:"generated_at"`
	TotalCount  int    `json:"total_count"`
}

type RecommendationResult struct {
	Tracks   []RankedTrack
	CacheHit bool
}
