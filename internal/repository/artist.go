package repository

import (
	"context"

	"github.com/tunegraph/tunegraph/internal/domain"
)

// UpsertArtist merges one artist node, replacing any placeholder row
// created while importing its tracks.
func (r *Repository) UpsertArtist(ctx context.Context, a domain.Artist) error {
	if _, err := r.pool.Exec(ctx,
		`INSERT INTO artists (id, name, genres, popularity, followers, image_url, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, genres = EXCLUDED.genres,
			popularity = EXCLUDED.popularity, followers = EXCLUDED.followers,
			image_url = EXCLUDED.image_url, updated_at = now()`,
		a.ID, a.Name, a.Genres, a.Popularity, a.Followers, a.ImageURL,
	); err != nil {
		return storeErr("upsert artist", err)
	}
	return nil
}

// GetAllArtists returns every artist node, most popular first.
func (r *Repository) GetAllArtists(ctx context.Context) ([]domain.Artist, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, genres, popularity, followers, image_url, updated_at
		FROM artists
		ORDER BY popularity DESC, id`,
	)
	if err != nil {
		return nil, storeErr("query artists", err)
	}
	defer rows.Close()

	var items []domain.Artist
	for rows.Next() {
		var a domain.Artist
		if err := rows.Scan(&a.ID, &a.Name, &a.Genres, &a.Popularity,
			&a.Followers, &a.ImageURL, &a.UpdatedAt); err != nil {
			return nil, storeErr("scan artist", err)
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate artists", err)
	}
	return items, nil
}
