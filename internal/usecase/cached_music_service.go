package usecase

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/nashiko-dev/gomuse/internal/domain/model"
	"github.com/nashiko-dev/gomuse/internal/infrastructure/cache"
	"github.com/nashiko-dev/gomuse/internal/infrastructure/metrics"
)

// Cache key namespaces. The cache itself only does prefix matching; the
// convention (category prefix + identifier) lives here.
const (
	keyHome        = "browse:home"
	keyLibrary     = "library:all"
	playlistPrefix = "playlist:"
	artistPrefix   = "artist:"
	searchPrefix   = "search:"
	lyricsPrefix   = "lyrics:"
	// metadataPrefix is the service's "next" payload namespace.
	metadataPrefix = "next:"
	libraryPrefix  = "library:"
)

// CachePolicy is the fixed TTL table, one duration per data category.
type CachePolicy struct {
	Home         time.Duration
	Playlist     time.Duration
	Artist       time.Duration
	Search       time.Duration
	Library      time.Duration
	Lyrics       time.Duration
	SongMetadata time.Duration
}

// DefaultCachePolicy returns the TTLs the client ships with. Lyrics never
// change, so they keep for a day; search results go stale fastest.
func DefaultCachePolicy() CachePolicy {
	return CachePolicy{
		Home:         5 * time.Minute,
		Playlist:     30 * time.Minute,
		Artist:       time.Hour,
		Search:       2 * time.Minute,
		Library:      5 * time.Minute,
		Lyrics:       24 * time.Hour,
		SongMetadata: 30 * time.Minute,
	}
}

// cachedMusicService wraps MusicService with response caching.
// It implements the decorator pattern to add caching without modifying the
// underlying service.
type cachedMusicService struct {
	delegate MusicService
	cache    cache.ResponseCache
	policy   CachePolicy
	sfGroup  singleflight.Group
}

// NewCachedMusicService creates a MusicService that serves reads through the
// response cache, falling back to the delegate on a miss.
func NewCachedMusicService(
	delegate MusicService,
	responseCache cache.ResponseCache,
	policy CachePolicy,
) MusicService {
	return &cachedMusicService{
		delegate: delegate,
		cache:    responseCache,
		policy:   policy,
	}
}

func (s *cachedMusicService) Home(ctx context.Context) (model.Value, error) {
	return s.cached(ctx, keyHome, s.policy.Home, "home", func(ctx context.Context) (model.Value, error) {
		return s.delegate.Home(ctx)
	})
}

func (s *cachedMusicService) Playlist(ctx context.Context, playlistID string) (model.Value, error) {
	if playlistID == "" {
		return model.Value{}, ErrEmptyBrowseID
	}
	return s.cached(ctx, playlistPrefix+playlistID, s.policy.Playlist, "playlist", func(ctx context.Context) (model.Value, error) {
		return s.delegate.Playlist(ctx, playlistID)
	})
}

func (s *cachedMusicService) Artist(ctx context.Context, artistID string) (model.Value, error) {
	if artistID == "" {
		return model.Value{}, ErrEmptyBrowseID
	}
	return s.cached(ctx, artistPrefix+artistID, s.policy.Artist, "artist", func(ctx context.Context) (model.Value, error) {
		return s.delegate.Artist(ctx, artistID)
	})
}

func (s *cachedMusicService) Search(ctx context.Context, query string) (model.Value, error) {
	if query == "" {
		return model.Value{}, ErrEmptyQuery
	}
	return s.cached(ctx, searchPrefix+query, s.policy.Search, "search", func(ctx context.Context) (model.Value, error) {
		return s.delegate.Search(ctx, query)
	})
}

func (s *cachedMusicService) Library(ctx context.Context) (model.Value, error) {
	return s.cached(ctx, keyLibrary, s.policy.Library, "library", func(ctx context.Context) (model.Value, error) {
		return s.delegate.Library(ctx)
	})
}

func (s *cachedMusicService) Lyrics(ctx context.Context, videoID model.VideoID) (model.Value, error) {
	return s.cached(ctx, lyricsPrefix+videoID.String(), s.policy.Lyrics, "lyrics", func(ctx context.Context) (model.Value, error) {
		return s.delegate.Lyrics(ctx, videoID)
	})
}

func (s *cachedMusicService) SongMetadata(ctx context.Context, videoID model.VideoID) (model.Value, error) {
	return s.cached(ctx, metadataPrefix+videoID.String(), s.policy.SongMetadata, "song_metadata", func(ctx context.Context) (model.Value, error) {
		return s.delegate.SongMetadata(ctx, videoID)
	})
}

// RateSong delegates the mutation, then invalidates the namespaces the rating
// makes stale: the song's metadata and the library (liked songs live there).
// Lyrics are never invalidated by mutations.
func (s *cachedMusicService) RateSong(ctx context.Context, videoID model.VideoID, rating model.Rating) error {
	if err := s.delegate.RateSong(ctx, videoID, rating); err != nil {
		return err
	}

	if err := s.cache.Invalidate(ctx, metadataPrefix+videoID.String()); err != nil {
		slog.Warn("failed to invalidate song metadata cache",
			"video_id", videoID,
			"error", err,
		)
	}
	if err := s.cache.Invalidate(ctx, libraryPrefix); err != nil {
		slog.Warn("failed to invalidate library cache",
			"error", err,
		)
	}

	return nil
}

// Reset clears the whole cache. Used on logout so no data from the previous
// session can be served to the next one.
func (s *cachedMusicService) Reset(ctx context.Context) error {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		return err
	}
	return s.delegate.Reset(ctx)
}

// cached implements the cache-aside pattern with singleflight coalescing:
// concurrent misses for the same key trigger exactly one upstream fetch.
func (s *cachedMusicService) cached(
	ctx context.Context,
	key string,
	ttl time.Duration,
	category string,
	fetch func(context.Context) (model.Value, error),
) (model.Value, error) {
	result, err, shared := s.sfGroup.Do(key, func() (any, error) {
		return s.getWithCache(ctx, key, ttl, category, fetch)
	})

	if shared {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightShared).Inc()
	} else {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightInitiated).Inc()
	}

	if err != nil {
		return model.Value{}, err
	}
	return result.(model.Value), nil
}

func (s *cachedMusicService) getWithCache(
	ctx context.Context,
	key string,
	ttl time.Duration,
	category string,
	fetch func(context.Context) (model.Value, error),
) (model.Value, error) {
	payload, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		// Log cache error but continue to the network.
		slog.Warn("cache get failed, falling back to network",
			"key", key,
			"error", err,
		)
	}
	if hit {
		return payload, nil
	}

	payload, err = fetch(ctx)
	if err != nil {
		metrics.APIFetchesTotal.WithLabelValues(category, metrics.FetchStatusError).Inc()
		return model.Value{}, err
	}
	metrics.APIFetchesTotal.WithLabelValues(category, metrics.FetchStatusSuccess).Inc()

	if err := s.cache.Set(ctx, key, payload, ttl); err != nil {
		slog.Warn("failed to cache response",
			"key", key,
			"error", err,
		)
	}

	return payload, nil
}
