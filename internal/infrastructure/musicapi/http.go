// Package musicapi implements the streaming-service client over HTTP.
package musicapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/nashiko-dev/gomuse/internal/domain/model"
	"github.com/nashiko-dev/gomuse/internal/domain/repository"
)

const defaultTimeout = 15 * time.Second

// HTTPClient implements repository.MusicAPI against the service's JSON API.
// Responses are kept schema-agnostic as model.Value; callers decode concrete
// shapes at the boundary.
type HTTPClient struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
}

// NewHTTPClient creates a MusicAPI client for the given base URL.
func NewHTTPClient(baseURL, authToken string) *HTTPClient {
	return &HTTPClient{
		baseURL:   baseURL,
		authToken: authToken,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

func (c *HTTPClient) FetchHome(ctx context.Context) (model.Value, error) {
	return c.get(ctx, "/home")
}

func (c *HTTPClient) FetchPlaylist(ctx context.Context, playlistID string) (model.Value, error) {
	return c.get(ctx, "/playlists/"+url.PathEscape(playlistID))
}

func (c *HTTPClient) FetchArtist(ctx context.Context, artistID string) (model.Value, error) {
	return c.get(ctx, "/artists/"+url.PathEscape(artistID))
}

func (c *HTTPClient) FetchSearch(ctx context.Context, query string) (model.Value, error) {
	return c.get(ctx, "/search?q="+url.QueryEscape(query))
}

func (c *HTTPClient) FetchLibrary(ctx context.Context) (model.Value, error) {
	return c.get(ctx, "/library")
}

func (c *HTTPClient) FetchLyrics(ctx context.Context, videoID model.VideoID) (model.Value, error) {
	return c.get(ctx, "/songs/"+url.PathEscape(videoID.String())+"/lyrics")
}

func (c *HTTPClient) FetchSongMetadata(ctx context.Context, videoID model.VideoID) (model.Value, error) {
	return c.get(ctx, "/songs/"+url.PathEscape(videoID.String())+"/next")
}

func (c *HTTPClient) SubmitRating(ctx context.Context, videoID model.VideoID, rating model.Rating) error {
	body, err := json.Marshal(map[string]string{"rating": rating.String()})
	if err != nil {
		return fmt.Errorf("encode rating: %w", err)
	}

	path := "/songs/" + url.PathEscape(videoID.String()) + "/rating"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	return c.checkStatus(resp)
}

func (c *HTTPClient) get(ctx context.Context, path string) (model.Value, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return model.Value{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Value{}, fmt.Errorf("%w: %v", repository.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return model.Value{}, err
	}

	var payload model.Value
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return model.Value{}, fmt.Errorf("decode response: %w", err)
	}
	return payload, nil
}

func (c *HTTPClient) setAuth(req *http.Request) {
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
}

func (c *HTTPClient) checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return repository.ErrNotFound
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d", repository.ErrUpstreamUnavailable, resp.StatusCode)
	default:
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}
