package spotify

import "github.com/tunegraph/tunegraph/internal/domain"

// Wire types for the streaming API. Fixed-schema structs; anything the
// API omits decodes to its zero value.

type playlistPage struct {
	Items []playlistItem `json:"items"`
	Next  *string        `json:"next"`
	Total int            `json:"total"`
}

type playlistItem struct {
	Track *trackObject `json:"track"`
}

type trackObject struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	DurationMS int         `json:"duration_ms"`
	Popularity int         `json:"popularity"`
	Explicit   bool        `json:"explicit"`
	PreviewURL string      `json:"preview_url"`
	Artists    []artistRef `json:"artists"`
	Album      albumRef    `json:"album"`
}

type artistRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type albumRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type audioFeaturesObject struct {
	Danceability     float64 `json:"danceability"`
	Energy           float64 `json:"energy"`
	Speechiness      float64 `json:"speechiness"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
	Liveness         float64 `json:"liveness"`
	Valence          float64 `json:"valence"`
	Tempo            float64 `json:"tempo"`
	Loudness         float64 `json:"loudness"`
}

type artistObject struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Genres     []string `json:"genres"`
	Popularity int      `json:"popularity"`
	Followers  struct {
		Total int `json:"total"`
	} `json:"followers"`
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
}

func mapTrack(t trackObject, f audioFeaturesObject) domain.Track {
	out := domain.Track{
		ID:         t.ID,
		Name:       t.Name,
		AlbumID:    t.Album.ID,
		AlbumName:  t.Album.Name,
		DurationMS: t.DurationMS,
		Popularity: t.Popularity,
		Explicit:   t.Explicit,
		PreviewURL: t.PreviewURL,
		Features: domain.AudioFeatures{
			Danceability:     f.Danceability,
			Energy:           f.Energy,
			Speechiness:      f.Speechiness,
			Acousticness:     f.Acousticness,
			Instrumentalness: f.Instrumentalness,
			Liveness:         f.Liveness,
			Valence:          f.Valence,
			Tempo:            f.Tempo,
			Loudness:         f.Loudness,
		},
	}
	for _, a := range t.Artists {
		if a.ID == "" {
			continue
		}
		out.ArtistIDs = append(out.ArtistIDs, a.ID)
		out.ArtistNames = append(out.ArtistNames, a.Name)
	}
	return out
}

func mapArtist(a artistObject) domain.Artist {
	out := domain.Artist{
		ID:         a.ID,
		Name:       a.Name,
		Genres:     a.Genres,
		Popularity: a.Popularity,
		Followers:  a.Followers.Total,
	}
	if out.Genres == nil {
		out.Genres = []string{}
	}
	if len(a.Images) > 0 {
		out.ImageURL = a.Images[0].URL
	}
	return out
}
