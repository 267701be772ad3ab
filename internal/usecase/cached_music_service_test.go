package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nashiko-dev/gomuse/internal/domain/model"
)

func homePayload() model.Value {
	return model.Map(map[string]model.Value{
		"sections": model.Slice([]model.Value{model.String("quick picks")}),
	})
}

func TestCachedMusicService_Home_MissThenHit(t *testing.T) {
	fetches := 0
	api := &mockMusicAPI{
		fetchHomeFn: func(ctx context.Context) (model.Value, error) {
			fetches++
			return homePayload(), nil
		},
	}
	spy := newSpyCache()
	svc := NewCachedMusicService(NewMusicService(api), spy, DefaultCachePolicy())
	ctx := context.Background()

	got, err := svc.Home(ctx)
	if err != nil {
		t.Fatalf("Home failed: %v", err)
	}
	if !got.Equal(homePayload()) {
		t.Errorf("Home = %v, want %v", got, homePayload())
	}

	// Second call must be served from cache.
	if _, err := svc.Home(ctx); err != nil {
		t.Fatalf("Home failed: %v", err)
	}
	if fetches != 1 {
		t.Errorf("fetches = %d, want 1", fetches)
	}

	if len(spy.sets) != 1 {
		t.Fatalf("sets = %d, want 1", len(spy.sets))
	}
	if spy.sets[0].key != "browse:home" {
		t.Errorf("cache key = %q, want %q", spy.sets[0].key, "browse:home")
	}
	if spy.sets[0].ttl != 5*time.Minute {
		t.Errorf("ttl = %v, want %v", spy.sets[0].ttl, 5*time.Minute)
	}
}

func TestCachedMusicService_KeyAndTTLPerCategory(t *testing.T) {
	videoID := model.VideoID("dQw4w9WgXcQ")
	policy := DefaultCachePolicy()

	tests := []struct {
		name    string
		call    func(ctx context.Context, svc MusicService) error
		wantKey string
		wantTTL time.Duration
	}{
		{
			name: "playlist",
			call: func(ctx context.Context, svc MusicService) error {
				_, err := svc.Playlist(ctx, "PL123")
				return err
			},
			wantKey: "playlist:PL123",
			wantTTL: policy.Playlist,
		},
		{
			name: "artist",
			call: func(ctx context.Context, svc MusicService) error {
				_, err := svc.Artist(ctx, "UC456")
				return err
			},
			wantKey: "artist:UC456",
			wantTTL: policy.Artist,
		},
		{
			name: "search",
			call: func(ctx context.Context, svc MusicService) error {
				_, err := svc.Search(ctx, "parquet courts")
				return err
			},
			wantKey: "search:parquet courts",
			wantTTL: policy.Search,
		},
		{
			name: "library",
			call: func(ctx context.Context, svc MusicService) error {
				_, err := svc.Library(ctx)
				return err
			},
			wantKey: "library:all",
			wantTTL: policy.Library,
		},
		{
			name: "lyrics",
			call: func(ctx context.Context, svc MusicService) error {
				_, err := svc.Lyrics(ctx, videoID)
				return err
			},
			wantKey: "lyrics:dQw4w9WgXcQ",
			wantTTL: policy.Lyrics,
		},
		{
			name: "song metadata",
			call: func(ctx context.Context, svc MusicService) error {
				_, err := svc.SongMetadata(ctx, videoID)
				return err
			},
			wantKey: "next:dQw4w9WgXcQ",
			wantTTL: policy.SongMetadata,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spy := newSpyCache()
			svc := NewCachedMusicService(NewMusicService(&mockMusicAPI{}), spy, policy)

			if err := tt.call(context.Background(), svc); err != nil {
				t.Fatalf("call failed: %v", err)
			}

			if len(spy.sets) != 1 {
				t.Fatalf("sets = %d, want 1", len(spy.sets))
			}
			if spy.sets[0].key != tt.wantKey {
				t.Errorf("key = %q, want %q", spy.sets[0].key, tt.wantKey)
			}
			if spy.sets[0].ttl != tt.wantTTL {
				t.Errorf("ttl = %v, want %v", spy.sets[0].ttl, tt.wantTTL)
			}
		})
	}
}

func TestCachedMusicService_FetchErrorNotCached(t *testing.T) {
	wantErr := errors.New("network down")
	api := &mockMusicAPI{
		fetchHomeFn: func(ctx context.Context) (model.Value, error) {
			return model.Value{}, wantErr
		},
	}
	spy := newSpyCache()
	svc := NewCachedMusicService(NewMusicService(api), spy, DefaultCachePolicy())

	if _, err := svc.Home(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("Home error = %v, want %v", err, wantErr)
	}
	if len(spy.sets) != 0 {
		t.Errorf("failed fetch must not be cached, got %d sets", len(spy.sets))
	}
}

func TestCachedMusicService_CacheErrorFallsBackToNetwork(t *testing.T) {
	api := &mockMusicAPI{
		fetchHomeFn: func(ctx context.Context) (model.Value, error) {
			return homePayload(), nil
		},
	}
	spy := newSpyCache()
	spy.getErr = errors.New("backend gone")
	svc := NewCachedMusicService(NewMusicService(api), spy, DefaultCachePolicy())

	got, err := svc.Home(context.Background())
	if err != nil {
		t.Fatalf("Home should degrade to the network on cache errors: %v", err)
	}
	if !got.Equal(homePayload()) {
		t.Errorf("Home = %v, want %v", got, homePayload())
	}
}

func TestCachedMusicService_RateSong_InvalidatesMetadataNotLyrics(t *testing.T) {
	videoID := model.VideoID("dQw4w9WgXcQ")
	api := &mockMusicAPI{}
	spy := newSpyCache()
	svc := NewCachedMusicService(NewMusicService(api), spy, DefaultCachePolicy())
	ctx := context.Background()

	// Warm the namespaces a rating could touch.
	if _, err := svc.SongMetadata(ctx, videoID); err != nil {
		t.Fatalf("SongMetadata failed: %v", err)
	}
	if _, err := svc.Lyrics(ctx, videoID); err != nil {
		t.Fatalf("Lyrics failed: %v", err)
	}

	if err := svc.RateSong(ctx, videoID, model.RatingLike); err != nil {
		t.Fatalf("RateSong failed: %v", err)
	}

	wantPrefixes := map[string]bool{
		"next:dQw4w9WgXcQ": true,
		"library:":         true,
	}
	if len(spy.invalidated) != len(wantPrefixes) {
		t.Fatalf("invalidated prefixes = %v, want %v", spy.invalidated, wantPrefixes)
	}
	for _, p := range spy.invalidated {
		if !wantPrefixes[p] {
			t.Errorf("unexpected invalidated prefix %q", p)
		}
	}

	if _, ok := spy.entries["lyrics:dQw4w9WgXcQ"]; !ok {
		t.Error("lyrics must never be invalidated by a rating")
	}
	if _, ok := spy.entries["next:dQw4w9WgXcQ"]; ok {
		t.Error("song metadata should have been invalidated by the rating")
	}
}

func TestCachedMusicService_RateSong_InvalidRating(t *testing.T) {
	spy := newSpyCache()
	svc := NewCachedMusicService(NewMusicService(&mockMusicAPI{}), spy, DefaultCachePolicy())

	err := svc.RateSong(context.Background(), "dQw4w9WgXcQ", model.Rating("MEH"))
	if !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("RateSong error = %v, want %v", err, ErrInvalidRating)
	}
	if len(spy.invalidated) != 0 {
		t.Error("rejected rating must not invalidate anything")
	}
}

func TestCachedMusicService_Reset_ClearsEverything(t *testing.T) {
	api := &mockMusicAPI{}
	spy := newSpyCache()
	svc := NewCachedMusicService(NewMusicService(api), spy, DefaultCachePolicy())
	ctx := context.Background()

	if _, err := svc.Home(ctx); err != nil {
		t.Fatalf("Home failed: %v", err)
	}

	if err := svc.Reset(ctx); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	if spy.clearedAll != 1 {
		t.Errorf("InvalidateAll calls = %d, want 1", spy.clearedAll)
	}
	if len(spy.entries) != 0 {
		t.Errorf("entries after Reset = %d, want 0", len(spy.entries))
	}
}

func TestCachedMusicService_EmptyInputsRejected(t *testing.T) {
	svc := NewCachedMusicService(NewMusicService(&mockMusicAPI{}), newSpyCache(), DefaultCachePolicy())
	ctx := context.Background()

	if _, err := svc.Playlist(ctx, ""); !errors.Is(err, ErrEmptyBrowseID) {
		t.Errorf("Playlist(\"\") error = %v, want %v", err, ErrEmptyBrowseID)
	}
	if _, err := svc.Artist(ctx, ""); !errors.Is(err, ErrEmptyBrowseID) {
		t.Errorf("Artist(\"\") error = %v, want %v", err, ErrEmptyBrowseID)
	}
	if _, err := svc.Search(ctx, ""); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("Search(\"\") error = %v, want %v", err, ErrEmptyQuery)
	}
}
