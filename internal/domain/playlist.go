package domain

// ImportReport summarizes one playlist import run.
type ImportReport struct {
	ImportID        string `json:"import_id"`
	PlaylistID      string `json:"playlist_id"`
	ImportedTracks  int    `json:"imported_tracks"`
	ImportedArtists int    `json:"imported_artists"`
}

// CreatedPlaylist describes a playlist written to the video platform.
// TracksNotFound lists the search queries that produced no playable
// video or failed to be added.
type CreatedPlaylist struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	URL            string   `json:"url"`
	TracksAdded    int      `json:"tracks_added"`
	TracksNotFound []string `json:"tracks_not_found"`
}
