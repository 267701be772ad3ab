package usecase

import (
	"github.com/sahilm/fuzzy"

	"github.com/nashiko-dev/gomuse/internal/domain/model"
)

// trackSource implements fuzzy.Source over decoded tracks, matching against
// title and artist together.
type trackSource []model.Track

func (s trackSource) String(i int) string { return s[i].Title + " " + s[i].Artist }
func (s trackSource) Len() int            { return len(s) }

// FilterLibrary decodes the tracks of a library payload and fuzzy-filters
// them by query. An empty query returns every decodable track in payload
// order; otherwise results come back in match-quality order.
func FilterLibrary(payload model.Value, query string) []model.Track {
	tracks := model.TracksFromValue(payload)
	if query == "" {
		return tracks
	}

	matches := fuzzy.FindFrom(query, trackSource(tracks))
	filtered := make([]model.Track, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, tracks[m.Index])
	}
	return filtered
}
