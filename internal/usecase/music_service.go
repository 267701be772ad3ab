package usecase

import (
	"context"
	"errors"

	"github.com/nashiko-dev/gomuse/internal/domain/model"
	"github.com/nashiko-dev/gomuse/internal/domain/repository"
)

var (
	// ErrEmptyBrowseID is returned when a playlist or artist ID is empty.
	ErrEmptyBrowseID = errors.New("browse ID cannot be empty")

	// ErrEmptyQuery is returned when a search query is empty.
	ErrEmptyQuery = errors.New("search query cannot be empty")

	// ErrInvalidRating is returned when a rating value is not recognized.
	ErrInvalidRating = errors.New("invalid rating value")
)

// MusicService defines the interface for music data operations.
type MusicService interface {
	// Home retrieves the home feed.
	Home(ctx context.Context) (model.Value, error)

	// Playlist retrieves a playlist by browse ID.
	Playlist(ctx context.Context, playlistID string) (model.Value, error)

	// Artist retrieves an artist page by browse ID.
	Artist(ctx context.Context, artistID string) (model.Value, error)

	// Search runs a search query.
	Search(ctx context.Context, query string) (model.Value, error)

	// Library retrieves the user's library.
	Library(ctx context.Context) (model.Value, error)

	// Lyrics retrieves lyrics for a song.
	Lyrics(ctx context.Context, videoID model.VideoID) (model.Value, error)

	// SongMetadata retrieves playback metadata for a song.
	SongMetadata(ctx context.Context, videoID model.VideoID) (model.Value, error)

	// RateSong records a like/dislike for a song.
	RateSong(ctx context.Context, videoID model.VideoID, rating model.Rating) error

	// Reset clears any per-user state held by the service. Called on logout.
	Reset(ctx context.Context) error
}

type musicService struct {
	api repository.MusicAPI
}

// NewMusicService creates a MusicService backed directly by the streaming
// service API, with no caching.
func NewMusicService(api repository.MusicAPI) MusicService {
	return &musicService{api: api}
}

func (s *musicService) Home(ctx context.Context) (model.Value, error) {
	return s.api.FetchHome(ctx)
}

func (s *musicService) Playlist(ctx context.Context, playlistID string) (model.Value, error) {
	if playlistID == "" {
		return model.Value{}, ErrEmptyBrowseID
	}
	return s.api.FetchPlaylist(ctx, playlistID)
}

func (s *musicService) Artist(ctx context.Context, artistID string) (model.Value, error) {
	if artistID == "" {
		return model.Value{}, ErrEmptyBrowseID
	}
	return s.api.FetchArtist(ctx, artistID)
}

func (s *musicService) Search(ctx context.Context, query string) (model.Value, error) {
	if query == "" {
		return model.Value{}, ErrEmptyQuery
	}
	return s.api.FetchSearch(ctx, query)
}

func (s *musicService) Library(ctx context.Context) (model.Value, error) {
	return s.api.FetchLibrary(ctx)
}

func (s *musicService) Lyrics(ctx context.Context, videoID model.VideoID) (model.Value, error) {
	return s.api.FetchLyrics(ctx, videoID)
}

func (s *musicService) SongMetadata(ctx context.Context, videoID model.VideoID) (model.Value, error) {
	return s.api.FetchSongMetadata(ctx, videoID)
}

func (s *musicService) RateSong(ctx context.Context, videoID model.VideoID, rating model.Rating) error {
	if !rating.IsValid() {
		return ErrInvalidRating
	}
	return s.api.SubmitRating(ctx, videoID, rating)
}

// Reset is a no-op for the uncached service; there is nothing to clear.
func (s *musicService) Reset(ctx context.Context) error {
	return nil
}
