// Package app wires the process-wide singletons. The cache and the playback
// surface used to be global accessors in the original client; here they are
// built once and passed by reference, which keeps the single-instance
// semantics without hidden mutable globals.
package app

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/nashiko-dev/gomuse/internal/config"
	"github.com/nashiko-dev/gomuse/internal/domain/model"
	"github.com/nashiko-dev/gomuse/internal/domain/repository"
	"github.com/nashiko-dev/gomuse/internal/infrastructure/cache"
	"github.com/nashiko-dev/gomuse/internal/infrastructure/musicapi"
	"github.com/nashiko-dev/gomuse/internal/usecase"
)

// Registry holds the wired application services. One Registry exists per
// process; consumers receive it by reference at startup.
type Registry struct {
	Config *config.Config
	Cache  cache.ResponseCache
	Music  usecase.MusicService
	Player usecase.PlayerService

	// Handle is the container the daemon hosts the surface in. A native
	// shell would mint its own handles per mounted view.
	Handle model.ContainerHandle
}

// New builds the Registry from config. The browser engine is injected by the
// caller: the daemon passes the logging engine, a native shell its webview.
func New(cfg *config.Config, logger *slog.Logger, engine repository.BrowserEngine) (*Registry, error) {
	responseCache, err := buildCache(cfg.Cache)
	if err != nil {
		return nil, err
	}

	api := musicapi.NewHTTPClient(cfg.API.BaseURL, cfg.API.AuthToken)
	music := usecase.NewCachedMusicService(
		usecase.NewMusicService(api),
		responseCache,
		policyFromTTL(cfg.TTL),
	)

	player := usecase.NewPlayerService(engine, usecase.PlayerServiceConfig{
		WatchURLTemplate: cfg.Player.WatchURLTemplate,
	})

	logger.Info("registry built",
		slog.String("cache_backend", cfg.Cache.Backend),
	)

	return &Registry{
		Config: cfg,
		Cache:  responseCache,
		Music:  music,
		Player: player,
		Handle: model.NewContainerHandle(model.Bounds{Width: 1280, Height: 720}),
	}, nil
}

func buildCache(cfg config.Cache) (cache.ResponseCache, error) {
	switch cfg.Backend {
	case config.CacheBackendMemory:
		return cache.NewMemory(), nil
	case config.CacheBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		})
		return cache.NewRedis(client), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

func policyFromTTL(ttl config.TTL) usecase.CachePolicy {
	return usecase.CachePolicy{
		Home:         ttl.Home,
		Playlist:     ttl.Playlist,
		Artist:       ttl.Artist,
		Search:       ttl.Search,
		Library:      ttl.Library,
		Lyrics:       ttl.Lyrics,
		SongMetadata: ttl.SongMetadata,
	}
}
