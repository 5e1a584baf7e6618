package domain

import "time"

type Artist struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Genres     []string  `json:"genres"`
	Popularity int       `json:"popularity"`
	Followers  int       `json:"followers"`
	ImageURL   string    `json:"image_url,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Album struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Track struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	ArtistIDs   []string      `json:"artist_ids"`
	ArtistNames []string      `json:"artist_names"`
	AlbumID     string        `json:"album_id"`
	AlbumName   string        `json:"album_name"`
	DurationMS  int           `json:"duration_ms"`
	Popularity  int           `json:"popularity"`
	Explicit    bool          `json:"explicit"`
	PreviewURL  string        `json:"preview_url,omitempty"`
	Features    AudioFeatures `json:"features"`
}
