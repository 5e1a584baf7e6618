package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/tunegraph/tunegraph/internal/domain"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// Client talks to the video platform API. Search uses the server API
// key; playlist mutations use the caller's OAuth access token.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
}

func NewClient(httpClient *http.Client, baseURL, apiKey string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Every(time.Second), 5),
	}
}

type Video struct {
	ID           string
	Title        string
	ChannelTitle string
}

// SearchVideo returns the top video hit for the query, or nil when
// nothing matches.
func (c *Client) SearchVideo(ctx context.Context, query string) (*Video, error) {
	endpoint := fmt.Sprintf("%s/search?part=snippet&type=video&q=%s&maxResults=1&key=%s",
		c.baseURL, url.QueryEscape(query), url.QueryEscape(c.apiKey))

	var result struct {
		Items []struct {
			ID struct {
				VideoID string `json:"videoId"`
			} `json:"id"`
			Snippet struct {
				Title        string `json:"title"`
				ChannelTitle string `json:"channelTitle"`
			} `json:"snippet"`
		} `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, endpoint, "", nil, &result); err != nil {
		return nil, fmt.Errorf("youtube search: %w", err)
	}
	if len(result.Items) == 0 {
		return nil, nil
	}
	item := result.Items[0]
	return &Video{
		ID:           item.ID.VideoID,
		Title:        item.Snippet.Title,
		ChannelTitle: item.Snippet.ChannelTitle,
	}, nil
}

// CreatePlaylist creates an empty public playlist and returns its id.
func (c *Client) CreatePlaylist(ctx context.Context, name, description, accessToken string) (string, error) {
	if description == "" {
		description = "Created by tunegraph"
	}
	payload := map[string]any{
		"snippet": map[string]any{
			"title":           name,
			"description":     description,
			"defaultLanguage": "en",
		},
		"status": map[string]any{
			"privacyStatus": "public",
		},
	}

	var result struct {
		ID string `json:"id"`
	}
	endpoint := c.baseURL + "/playlists?part=snippet,status"
	if err := c.do(ctx, http.MethodPost, endpoint, accessToken, payload, &result); err != nil {
		return "", fmt.Errorf("create playlist: %w", err)
	}
	if result.ID == "" {
		return "", fmt.Errorf("create playlist: missing playlist id in response")
	}
	return result.ID, nil
}

// AddVideo appends one video to the playlist.
func (c *Client) AddVideo(ctx context.Context, playlistID, videoID, accessToken string) error {
	payload := map[string]any{
		"snippet": map[string]any{
			"playlistId": playlistID,
			"resourceId": map[string]any{
				"kind":    "youtube#video",
				"videoId": videoID,
			},
		},
	}
	endpoint := c.baseURL + "/playlistItems?part=snippet"
	if err := c.do(ctx, http.MethodPost, endpoint, accessToken, payload, nil); err != nil {
		return fmt.Errorf("add video %s: %w", videoID, err)
	}
	return nil
}

// CreateFromTracks searches the top video for each track name and
// builds a playlist out of the hits. Tracks without a match or that
// fail to add are reported in TracksNotFound; the batch never aborts
// on a single track.
func (c *Client) CreateFromTracks(ctx context.Context, name, description string, trackNames []string, accessToken string) (*domain.CreatedPlaylist, error) {
	playlistID, err := c.CreatePlaylist(ctx, name, description, accessToken)
	if err != nil {
		return nil, err
	}

	added := 0
	notFound := []string{}
	for _, trackName := range trackNames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		video, err := c.SearchVideo(ctx, trackName)
		if err != nil {
			log.Printf("[youtube] search failed for %q: %v", trackName, err)
			notFound = append(notFound, trackName)
			continue
		}
		if video == nil {
			log.Printf("[youtube] no video found for %q", trackName)
			notFound = append(notFound, trackName)
			continue
		}
		if err := c.AddVideo(ctx, playlistID, video.ID, accessToken); err != nil {
			log.Printf("[youtube] failed to add %q: %v", trackName, err)
			notFound = append(notFound, trackName)
			continue
		}
		added++
	}

	return &domain.CreatedPlaylist{
		ID:             playlistID,
		Name:           name,
		URL:            "https://www.youtube.com/playlist?list=" + playlistID,
		TracksAdded:    added,
		TracksNotFound: notFound,
	}, nil
}

// FormatSearchQuery builds the "<artists> <title>" query used to find
// a track's video.
func FormatSearchQuery(trackName string, artistNames []string) string {
	if len(artistNames) == 0 {
		return trackName
	}
	return strings.Join(artistNames, " ") + " " + trackName
}

func (c *Client) do(ctx context.Context, method, endpoint, accessToken string, payload, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
