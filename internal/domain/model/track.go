package model

import (
	"errors"
	"time"
)

// VideoID identifies a playable item on the streaming service.
type VideoID string

var (
	ErrEmptyVideoID   = errors.New("video ID cannot be empty")
	ErrInvalidVideoID = errors.New("video ID contains characters not valid in a watch URL")
)

const maxVideoIDLength = 64

// NewVideoID validates an identifier for use in a watch URL.
// Identifiers are restricted to the URL-safe alphabet the service uses, so a
// malformed one is rejected here instead of producing a broken navigation.
func NewVideoID(raw string) (VideoID, error) {
	if raw == "" {
		return "", ErrEmptyVideoID
	}
	if len(raw) > maxVideoIDLength {
		return "", ErrInvalidVideoID
	}
	for _, r := range raw {
		if !isVideoIDChar(r) {
			return "", ErrInvalidVideoID
		}
	}
	return VideoID(raw), nil
}

func isVideoIDChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_':
		return true
	default:
		return false
	}
}

func (id VideoID) String() string { return string(id) }

// Track is the concrete shape the library filter decodes from raw payloads.
// Everything else in the payload stays schema-agnostic.
type Track struct {
	VideoID VideoID
	Title   string
	Artist  string
}

// TracksFromValue decodes the `tracks` array of a library payload.
// Entries missing a video ID or title are skipped rather than failing the
// whole payload; the service occasionally returns placeholder rows.
func TracksFromValue(v Value) []Track {
	items, ok := v.Get("tracks")
	if !ok {
		return nil
	}
	arr, ok := items.AsSlice()
	if !ok {
		return nil
	}

	tracks := make([]Track, 0, len(arr))
	for _, item := range arr {
		idVal, _ := item.Get("videoId")
		rawID, _ := idVal.AsString()
		id, err := NewVideoID(rawID)
		if err != nil {
			continue
		}

		titleVal, _ := item.Get("title")
		title, ok := titleVal.AsString()
		if !ok || title == "" {
			continue
		}

		artistVal, _ := item.Get("artist")
		artist, _ := artistVal.AsString()

		tracks = append(tracks, Track{VideoID: id, Title: title, Artist: artist})
	}
	return tracks
}

// Rating is a user reaction to a song.
type Rating string

const (
	RatingLike    Rating = "LIKE"
	RatingDislike Rating = "DISLIKE"
	RatingNone    Rating = "INDIFFERENT"
)

func (r Rating) IsValid() bool {
	switch r {
	case RatingLike, RatingDislike, RatingNone:
		return true
	default:
		return false
	}
}

func (r Rating) String() string { return string(r) }

// CacheEntry is a stored API response with its expiration bookkeeping.
type CacheEntry struct {
	Payload   Value
	CreatedAt time.Time
	TTL       time.Duration
}

// IsExpiredAt reports whether the entry is stale at the given instant.
// The boundary is strict: an entry read at exactly CreatedAt+TTL still hits.
func (e CacheEntry) IsExpiredAt(now time.Time) bool {
	return now.Sub(e.CreatedAt) > e.TTL
}
