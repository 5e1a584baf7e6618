package repository

import (
	"context"

	"github.com/tunegraph/tunegraph/internal/domain"
)

const featureColumns = `danceability, energy, speechiness, acousticness,
	instrumentalness, liveness, valence, tempo, loudness`

// FeaturesByIDs returns the feature vectors for the given track ids.
// Ids absent from the catalog are simply missing from the result; the
// caller decides whether that matters.
func (r *Repository) FeaturesByIDs(ctx context.Context, ids []string) (map[string]domain.AudioFeatures, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, `+featureColumns+`
		FROM tracks
		WHERE id = ANY($1)`, ids,
	)
	if err != nil {
		return nil, storeErr("query seed features", err)
	}
	defer rows.Close()

	out := make(map[string]domain.AudioFeatures, len(ids))
	for rows.Next() {
		var id string
		var f domain.AudioFeatures
		if err := rows.Scan(&id, &f.Danceability, &f.Energy, &f.Speechiness,
			&f.Acousticness, &f.Instrumentalness, &f.Liveness,
			&f.Valence, &f.Tempo, &f.Loudness); err != nil {
			return nil, storeErr("scan seed features", err)
		}
		out[id] = f
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate seed features", err)
	}
	return out, nil
}

// AllFeatures returns every catalog feature vector not in the exclusion
// list. The result set is fully drained before returning.
func (r *Repository) AllFeatures(ctx context.Context, excluding []string) ([]domain.FeatureVector, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, `+featureColumns+`
		FROM tracks
		WHERE NOT (id = ANY($1))
		ORDER BY id`, excluding,
	)
	if err != nil {
		return nil, storeErr("query candidate features", err)
	}
	defer rows.Close()

	var out []domain.FeatureVector
	for rows.Next() {
		var v domain.FeatureVector
		f := &v.Features
		if err := rows.Scan(&v.TrackID, &f.Danceability, &f.Energy, &f.Speechiness,
			&f.Acousticness, &f.Instrumentalness, &f.Liveness,
			&f.Valence, &f.Tempo, &f.Loudness); err != nil {
			return nil, storeErr("scan candidate features", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate candidate features", err)
	}
	return out, nil
}
