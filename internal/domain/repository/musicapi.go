package repository

import (
	"context"

	"github.com/nashiko-dev/gomuse/internal/domain/model"
)

// MusicAPI defines the interface for fetching data from the streaming
// service. Implementations perform the actual network calls; callers layer
// caching on top and never hit this interface on a cache hit.
type MusicAPI interface {
	// FetchHome retrieves the home feed.
	FetchHome(ctx context.Context) (model.Value, error)

	// FetchPlaylist retrieves a playlist by its browse ID.
	FetchPlaylist(ctx context.Context, playlistID string) (model.Value, error)

	// FetchArtist retrieves an artist page by its browse ID.
	FetchArtist(ctx context.Context, artistID string) (model.Value, error)

	// FetchSearch runs a search query.
	FetchSearch(ctx context.Context, query string) (model.Value, error)

	// FetchLibrary retrieves the user's library.
	FetchLibrary(ctx context.Context) (model.Value, error)

	// FetchLyrics retrieves lyrics for a song.
	FetchLyrics(ctx context.Context, videoID model.VideoID) (model.Value, error)

	// FetchSongMetadata retrieves playback metadata for a song (the service's
	// "next" payload).
	FetchSongMetadata(ctx context.Context, videoID model.VideoID) (model.Value, error)

	// SubmitRating records a like/dislike for a song.
	SubmitRating(ctx context.Context, videoID model.VideoID, rating model.Rating) error
}
