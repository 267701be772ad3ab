package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nashiko-dev/gomuse/internal/domain/model"
	"github.com/nashiko-dev/gomuse/internal/domain/repository"
)

// mockMusicAPI provides a configurable mock for repository.MusicAPI.
type mockMusicAPI struct {
	fetchHomeFn         func(ctx context.Context) (model.Value, error)
	fetchPlaylistFn     func(ctx context.Context, playlistID string) (model.Value, error)
	fetchArtistFn       func(ctx context.Context, artistID string) (model.Value, error)
	fetchSearchFn       func(ctx context.Context, query string) (model.Value, error)
	fetchLibraryFn      func(ctx context.Context) (model.Value, error)
	fetchLyricsFn       func(ctx context.Context, videoID model.VideoID) (model.Value, error)
	fetchSongMetadataFn func(ctx context.Context, videoID model.VideoID) (model.Value, error)
	submitRatingFn      func(ctx context.Context, videoID model.VideoID, rating model.Rating) error
}

func (m *mockMusicAPI) FetchHome(ctx context.Context) (model.Value, error) {
	if m.fetchHomeFn != nil {
		return m.fetchHomeFn(ctx)
	}
	return model.Value{}, nil
}

func (m *mockMusicAPI) FetchPlaylist(ctx context.Context, playlistID string) (model.Value, error) {
	if m.fetchPlaylistFn != nil {
		return m.fetchPlaylistFn(ctx, playlistID)
	}
	return model.Value{}, nil
}

func (m *mockMusicAPI) FetchArtist(ctx context.Context, artistID string) (model.Value, error) {
	if m.fetchArtistFn != nil {
		return m.fetchArtistFn(ctx, artistID)
	}
	return model.Value{}, nil
}

func (m *mockMusicAPI) FetchSearch(ctx context.Context, query string) (model.Value, error) {
	if m.fetchSearchFn != nil {
		return m.fetchSearchFn(ctx, query)
	}
	return model.Value{}, nil
}

func (m *mockMusicAPI) FetchLibrary(ctx context.Context) (model.Value, error) {
	if m.fetchLibraryFn != nil {
		return m.fetchLibraryFn(ctx)
	}
	return model.Value{}, nil
}

func (m *mockMusicAPI) FetchLyrics(ctx context.Context, videoID model.VideoID) (model.Value, error) {
	if m.fetchLyricsFn != nil {
		return m.fetchLyricsFn(ctx, videoID)
	}
	return model.Value{}, nil
}

func (m *mockMusicAPI) FetchSongMetadata(ctx context.Context, videoID model.VideoID) (model.Value, error) {
	if m.fetchSongMetadataFn != nil {
		return m.fetchSongMetadataFn(ctx, videoID)
	}
	return model.Value{}, nil
}

func (m *mockMusicAPI) SubmitRating(ctx context.Context, videoID model.VideoID, rating model.Rating) error {
	if m.submitRatingFn != nil {
		return m.submitRatingFn(ctx, videoID, rating)
	}
	return nil
}

// setCall records one cache Set.
type setCall struct {
	key string
	ttl time.Duration
}

// spyCache is an in-memory ResponseCache that records operations, so tests
// can assert on keys and TTLs without poking at a real backend.
type spyCache struct {
	mu          sync.Mutex
	entries     map[string]model.Value
	sets        []setCall
	invalidated []string
	clearedAll  int

	getErr error
	setErr error
}

func newSpyCache() *spyCache {
	return &spyCache{entries: make(map[string]model.Value)}
}

func (c *spyCache) Get(_ context.Context, key string) (model.Value, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return model.Value{}, false, c.getErr
	}
	v, ok := c.entries[key]
	return v, ok, nil
}

func (c *spyCache) Set(_ context.Context, key string, payload model.Value, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = payload
	c.sets = append(c.sets, setCall{key: key, ttl: ttl})
	return nil
}

func (c *spyCache) Invalidate(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, prefix)
	for k := range c.entries {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(c.entries, k)
		}
	}
	return nil
}

func (c *spyCache) InvalidateAll(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearedAll++
	c.entries = make(map[string]model.Value)
	return nil
}

// mockEngine counts surface construction and hands out recording surfaces.
type mockEngine struct {
	mu        sync.Mutex
	created   int
	createErr error
	surface   *mockSurface
}

func (e *mockEngine) CreateSurface(_ context.Context) (repository.BrowserSurface, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.createErr != nil {
		return nil, e.createErr
	}
	e.created++
	if e.surface == nil {
		e.surface = &mockSurface{host: uuid.Nil}
	}
	return e.surface, nil
}

// mockSurface records everything the player does to the browser instance.
type mockSurface struct {
	mu        sync.Mutex
	host      uuid.UUID
	loads     []string
	reparents []uuid.UUID
	detaches  int
	resizes   []model.Bounds
	loadErr   error

	reparentErr error
}

func (s *mockSurface) Load(url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return s.loadErr
	}
	s.loads = append(s.loads, url)
	return nil
}

func (s *mockSurface) Evaluate(string) error { return nil }

func (s *mockSurface) Reparent(host uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reparentErr != nil {
		return s.reparentErr
	}
	s.host = host
	s.reparents = append(s.reparents, host)
	return nil
}

func (s *mockSurface) Resize(bounds model.Bounds) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resizes = append(s.resizes, bounds)
	return nil
}

func (s *mockSurface) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.host = uuid.Nil
	s.detaches++
	return nil
}
