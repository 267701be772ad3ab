package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server Server
	Cache  Cache
	Player Player
	API    API
	TTL    TTL
}

type Server struct {
	Port            int           `envconfig:"GOMUSE_PORT" default:"7478"`
	ReadTimeout     time.Duration `envconfig:"GOMUSE_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"GOMUSE_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"GOMUSE_SHUTDOWN_TIMEOUT" default:"10s"`
}

type Cache struct {
	// Backend selects the response cache implementation: memory or redis.
	Backend   string `envconfig:"GOMUSE_CACHE_BACKEND" default:"memory"`
	RedisAddr string `envconfig:"GOMUSE_REDIS_ADDR" default:"localhost:6379"`
	RedisDB   int    `envconfig:"GOMUSE_REDIS_DB" default:"0"`
}

type Player struct {
	// WatchURLTemplate builds the navigation target; %s is the video ID.
	WatchURLTemplate string `envconfig:"GOMUSE_WATCH_URL_TEMPLATE" default:"https://music.youtube.com/watch?v=%s"`
}

type API struct {
	BaseURL   string `envconfig:"GOMUSE_API_BASE_URL" default:"https://music.youtube.com/api/v1"`
	AuthToken string `envconfig:"GOMUSE_API_AUTH_TOKEN" default:""`
}

// TTL is the per-category lifetime of cached API responses.
type TTL struct {
	Home         time.Duration `envconfig:"GOMUSE_TTL_HOME" default:"300s"`
	Playlist     time.Duration `envconfig:"GOMUSE_TTL_PLAYLIST" default:"1800s"`
	Artist       time.Duration `envconfig:"GOMUSE_TTL_ARTIST" default:"3600s"`
	Search       time.Duration `envconfig:"GOMUSE_TTL_SEARCH" default:"120s"`
	Library      time.Duration `envconfig:"GOMUSE_TTL_LIBRARY" default:"300s"`
	Lyrics       time.Duration `envconfig:"GOMUSE_TTL_LYRICS" default:"86400s"`
	SongMetadata time.Duration `envconfig:"GOMUSE_TTL_SONG_METADATA" default:"1800s"`
}

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

func (c Cache) Valid() bool {
	return c.Backend == CacheBackendMemory || c.Backend == CacheBackendRedis
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if !cfg.Cache.Valid() {
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
	return &cfg, nil
}
