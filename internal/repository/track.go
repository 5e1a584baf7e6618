package repository

import (
	"context"

	"github.com/tunegraph/tunegraph/internal/domain"
)

const trackSelect = `SELECT t.id, t.name,
		COALESCE(array_agg(a.id ORDER BY a.id) FILTER (WHERE a.id IS NOT NULL), '{}'),
		COALESCE(array_agg(a.name ORDER BY a.id) FILTER (WHERE a.id IS NOT NULL), '{}'),
		t.album_id, COALESCE(al.name, ''),
		t.duration_ms, t.popularity, t.explicit, t.preview_url,
		t.danceability, t.energy, t.speechiness, t.acousticness,
		t.instrumentalness, t.liveness, t.valence, t.tempo, t.loudness
	FROM tracks t
	LEFT JOIN albums al ON al.id = t.album_id
	LEFT JOIN track_artists ta ON ta.track_id = t.id
	LEFT JOIN artists a ON a.id = ta.artist_id`

// UpsertTrack merges one track node plus its album and artist edges.
// Artists referenced by the track but not yet imported get placeholder
// rows so the performed edge always resolves; a later UpsertArtist
// fills in the details.
func (r *Repository) UpsertTrack(ctx context.Context, t domain.Track) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return storeErr("begin upsert track", err)
	}
	defer tx.Rollback(ctx)

	if t.AlbumID != "" {
		if _, err := tx.Exec(ctx,
			`INSERT INTO albums (id, name) VALUES ($1, $2)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name`,
			t.AlbumID, t.AlbumName,
		); err != nil {
			return storeErr("upsert album", err)
		}
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO tracks (id, name, album_id, duration_ms, popularity, explicit, preview_url,
			danceability, energy, speechiness, acousticness, instrumentalness,
			liveness, valence, tempo, loudness, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, now())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, album_id = EXCLUDED.album_id,
			duration_ms = EXCLUDED.duration_ms, popularity = EXCLUDED.popularity,
			explicit = EXCLUDED.explicit, preview_url = EXCLUDED.preview_url,
			danceability = EXCLUDED.danceability, energy = EXCLUDED.energy,
			speechiness = EXCLUDED.speechiness, acousticness = EXCLUDED.acousticness,
			instrumentalness = EXCLUDED.instrumentalness, liveness = EXCLUDED.liveness,
			valence = EXCLUDED.valence, tempo = EXCLUDED.tempo,
			loudness = EXCLUDED.loudness, updated_at = now()`,
		t.ID, t.Name, t.AlbumID, t.DurationMS, t.Popularity, t.Explicit, t.PreviewURL,
		t.Features.Danceability, t.Features.Energy, t.Features.Speechiness,
		t.Features.Acousticness, t.Features.Instrumentalness, t.Features.Liveness,
		t.Features.Valence, t.Features.Tempo, t.Features.Loudness,
	); err != nil {
		return storeErr("upsert track", err)
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM track_artists WHERE track_id = $1`, t.ID,
	); err != nil {
		return storeErr("clear performed edges", err)
	}
	for i, artistID := range t.ArtistIDs {
		name := artistID
		if i < len(t.ArtistNames) {
			name = t.ArtistNames[i]
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO artists (id, name) VALUES ($1, $2)
			ON CONFLICT (id) DO NOTHING`,
			artistID, name,
		); err != nil {
			return storeErr("insert placeholder artist", err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO track_artists (track_id, artist_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`,
			t.ID, artistID,
		); err != nil {
			return storeErr("insert performed edge", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return storeErr("commit upsert track", err)
	}
	return nil
}

// GetAllTracks returns the full catalog with artist and album names,
// most popular first.
func (r *Repository) GetAllTracks(ctx context.Context) ([]domain.Track, error) {
	rows, err := r.pool.Query(ctx,
		trackSelect+`
		GROUP BY t.id, al.id, al.name
		ORDER BY t.popularity DESC, t.id`,
	)
	if err != nil {
		return nil, storeErr("query tracks", err)
	}
	defer rows.Close()
	return scanTracks(rows)
}

// TracksByIDs returns the named tracks; missing ids are absent from the
// result.
func (r *Repository) TracksByIDs(ctx context.Context, ids []string) ([]domain.Track, error) {
	rows, err := r.pool.Query(ctx,
		trackSelect+`
		WHERE t.id = ANY($1)
		GROUP BY t.id, al.id, al.name`, ids,
	)
	if err != nil {
		return nil, storeErr("query tracks by id", err)
	}
	defer rows.Close()
	return scanTracks(rows)
}

// TrackNamesByIDs is the display-name lookup for result formatting.
func (r *Repository) TrackNamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name FROM tracks WHERE id = ANY($1)`, ids,
	)
	if err != nil {
		return nil, storeErr("query track names", err)
	}
	defer rows.Close()

	names := make(map[string]string, len(ids))
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, storeErr("scan track name", err)
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate track names", err)
	}
	return names, nil
}

func (r *Repository) CountTracks(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tracks`).Scan(&total); err != nil {
		return 0, storeErr("count tracks", err)
	}
	return total, nil
}

type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanTracks(rows pgxRows) ([]domain.Track, error) {
	var items []domain.Track
	for rows.Next() {
		var t domain.Track
		f := &t.Features
		if err := rows.Scan(&t.ID, &t.Name, &t.ArtistIDs, &t.ArtistNames,
			&t.AlbumID, &t.AlbumName, &t.DurationMS, &t.Popularity,
			&t.Explicit, &t.PreviewURL,
			&f.Danceability, &f.Energy, &f.Speechiness, &f.Acousticness,
			&f.Instrumentalness, &f.Liveness, &f.Valence, &f.Tempo, &f.Loudness,
		); err != nil {
			return nil, storeErr("scan track", err)
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate tracks", err)
	}
	return items, nil
}
