package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"github.com/tunegraph/tunegraph/internal/domain"
)

const (
	defaultBaseURL = "https://api.spotify.com/v1"
	tokenURL       = "https://accounts.spotify.com/api/token"

	pageLimit  = 50
	maxRetries = 3
)

// Client talks to the streaming API. The HTTP client is expected to
// carry authentication (oauth2 transport); tests inject a bare client
// against an httptest server.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		// ~100 requests per minute, matching the API's documented budget.
		limiter: rate.NewLimiter(rate.Every(time.Minute/100), 10),
	}
}

// NewFromCredentials builds a client authenticated with the
// client-credentials flow.
func NewFromCredentials(ctx context.Context, clientID, clientSecret string) *Client {
	cc := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	return NewClient(cc.Client(ctx), defaultBaseURL)
}

// ExtractPlaylistID pulls the playlist id out of a share URL like
// https://open.spotify.com/playlist/441K4rF3u0qfg9m4X1WSQJ?si=x.
// A bare playlist id passes through unchanged.
func ExtractPlaylistID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty playlist url")
	}
	last := raw
	if i := strings.LastIndex(raw, "/"); i >= 0 {
		last = raw[i+1:]
	}
	if i := strings.Index(last, "?"); i >= 0 {
		last = last[:i]
	}
	if last == "" {
		return "", fmt.Errorf("no playlist id in %q", raw)
	}
	return last, nil
}

// PlaylistTracks drains every page of the playlist and resolves audio
// features per track. Tracks whose features cannot be fetched keep
// zero-valued features rather than aborting the import.
func (c *Client) PlaylistTracks(ctx context.Context, playlistID string) ([]domain.Track, error) {
	var tracks []domain.Track
	offset := 0

	for {
		endpoint := fmt.Sprintf("%s/playlists/%s/tracks?offset=%d&limit=%d",
			c.baseURL, url.PathEscape(playlistID), offset, pageLimit)

		var page playlistPage
		if err := c.getJSON(ctx, endpoint, &page); err != nil {
			return nil, fmt.Errorf("fetch playlist page (offset %d): %w", offset, err)
		}
		if len(page.Items) == 0 {
			break
		}

		for _, item := range page.Items {
			if item.Track == nil || item.Track.ID == "" {
				continue
			}
			feats, err := c.audioFeatures(ctx, item.Track.ID)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				log.Printf("[spotify] audio features unavailable for %s: %v", item.Track.ID, err)
				feats = audioFeaturesObject{}
			}
			tracks = append(tracks, mapTrack(*item.Track, feats))
		}
		offset += pageLimit
	}

	return tracks, nil
}

func (c *Client) audioFeatures(ctx context.Context, trackID string) (audioFeaturesObject, error) {
	var out audioFeaturesObject
	endpoint := fmt.Sprintf("%s/audio-features/%s", c.baseURL, url.PathEscape(trackID))
	err := c.getJSON(ctx, endpoint, &out)
	return out, err
}

// Artist fetches one artist's details.
func (c *Client) Artist(ctx context.Context, artistID string) (domain.Artist, error) {
	var out artistObject
	endpoint := fmt.Sprintf("%s/artists/%s", c.baseURL, url.PathEscape(artistID))
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		return domain.Artist{}, fmt.Errorf("fetch artist %s: %w", artistID, err)
	}
	return mapArtist(out), nil
}

// getJSON performs a rate-limited GET with retry on network errors,
// 429 and 5xx.
func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if err := sleep(ctx, backoff(attempt)); err != nil {
				return err
			}
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return json.Unmarshal(body, out)
		case resp.StatusCode == http.StatusTooManyRequests:
			lastErr = fmt.Errorf("spotify: rate limited")
			if err := sleep(ctx, retryAfter(resp)); err != nil {
				return err
			}
			continue
		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("spotify: status %d", resp.StatusCode)
			if err := sleep(ctx, backoff(attempt)); err != nil {
				return err
			}
			continue
		default:
			return fmt.Errorf("spotify: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}
	}

	return lastErr
}

// sleep waits for d or until the context is done, whichever comes
// first. A server-supplied Retry-After must not outlive the request.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func retryAfter(resp *http.Response) time.Duration {
	if s := resp.Header.Get("Retry-After"); s != "" {
		if secs, err := strconv.Atoi(s); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return time.Second
}

func backoff(attempt int) time.Duration {
	base := 100 * time.Millisecond
	f := math.Pow(2, float64(attempt))
	jitter := time.Duration(rand.Intn(100)) * time.Millisecond
	return time.Duration(float64(base)*f) + jitter
}
