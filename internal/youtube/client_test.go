package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatSearchQuery(t *testing.T) {
	require.Equal(t, "Nick Drake Pink Moon", FormatSearchQuery("Pink Moon", []string{"Nick Drake"}))
	require.Equal(t, "A B Song", FormatSearchQuery("Song", []string{"A", "B"}))
	require.Equal(t, "Song", FormatSearchQuery("Song", nil))
}

func newTestServer(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var added []string

	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		if q == "no hit" {
			fmt.Fprint(w, `{"items":[]}`)
			return
		}
		fmt.Fprintf(w, `{"items":[{"id":{"videoId":"vid-%s"},"snippet":{"title":"%s","channelTitle":"chan"}}]}`, q, q)
	})
	mux.HandleFunc("/playlists", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer user-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"id":"pl-123"}`)
	})
	mux.HandleFunc("/playlistItems", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Snippet struct {
				ResourceID struct {
					VideoID string `json:"videoId"`
				} `json:"resourceId"`
			} `json:"snippet"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.Snippet.ResourceID.VideoID == "vid-broken" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		added = append(added, body.Snippet.ResourceID.VideoID)
		fmt.Fprint(w, `{}`)
	})

	return httptest.NewServer(mux), &added
}

func TestSearchVideo(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "api-key")

	v, err := c.SearchVideo(context.Background(), "Pink Moon")
	require.NoError(t, err)
	require.NotNil(t, v)
	require.Equal(t, "vid-Pink Moon", v.ID)

	v, err = c.SearchVideo(context.Background(), "no hit")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestCreateFromTracks(t *testing.T) {
	srv, added := newTestServer(t)
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "api-key")

	got, err := c.CreateFromTracks(context.Background(), "My Mix", "",
		[]string{"song one", "no hit", "broken", "song two"}, "user-token")
	require.NoError(t, err)

	require.Equal(t, "pl-123", got.ID)
	require.Equal(t, "My Mix", got.Name)
	require.Equal(t, "https://www.youtube.com/playlist?list=pl-123", got.URL)
	require.Equal(t, 2, got.TracksAdded)
	require.Equal(t, []string{"no hit", "broken"}, got.TracksNotFound)
	require.Equal(t, []string{"vid-song one", "vid-song two"}, *added)
}

func TestCreatePlaylistRejectsBadToken(t *testing.T) {
	srv, _ := newTestServer(t)
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "api-key")
	_, err := c.CreatePlaylist(context.Background(), "Mix", "", "wrong-token")
	require.Error(t, err)
}
