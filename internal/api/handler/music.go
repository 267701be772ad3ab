package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nashiko-dev/gomuse/internal/domain/model"
	"github.com/nashiko-dev/gomuse/internal/domain/repository"
	"github.com/nashiko-dev/gomuse/internal/usecase"
)

// Request/Response types

type RateSongRequest struct {
	Rating string `json:"rating"`
}

type TrackResponse struct {
	VideoID string `json:"video_id"`
	Title   string `json:"title"`
	Artist  string `json:"artist,omitempty"`
}

type LibraryResponse struct {
	Tracks []TrackResponse `json:"tracks"`
}

// MusicHandler handles music data HTTP requests.
type MusicHandler struct {
	svc usecase.MusicService
}

// NewMusicHandler creates a new MusicHandler.
func NewMusicHandler(svc usecase.MusicService) *MusicHandler {
	return &MusicHandler{svc: svc}
}

// Home handles GET /v1/browse/home
func (h *MusicHandler) Home(w http.ResponseWriter, r *http.Request) {
	payload, err := h.svc.Home(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, payload)
}

// Playlist handles GET /v1/playlists/{id}
func (h *MusicHandler) Playlist(w http.ResponseWriter, r *http.Request) {
	payload, err := h.svc.Playlist(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, payload)
}

// Artist handles GET /v1/artists/{id}
func (h *MusicHandler) Artist(w http.ResponseWriter, r *http.Request) {
	payload, err := h.svc.Artist(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, payload)
}

// Search handles GET /v1/search?q=
func (h *MusicHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		Error(w, http.StatusBadRequest, "empty_query", "Query parameter q is required")
		return
	}

	payload, err := h.svc.Search(r.Context(), query)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, payload)
}

// Library handles GET /v1/library. With ?filter= the raw payload is decoded
// and fuzzy-filtered to a track list; without it the payload passes through
// untouched.
func (h *MusicHandler) Library(w http.ResponseWriter, r *http.Request) {
	payload, err := h.svc.Library(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	if !r.URL.Query().Has("filter") {
		JSON(w, http.StatusOK, payload)
		return
	}

	tracks := usecase.FilterLibrary(payload, r.URL.Query().Get("filter"))
	resp := LibraryResponse{Tracks: make([]TrackResponse, 0, len(tracks))}
	for _, track := range tracks {
		resp.Tracks = append(resp.Tracks, TrackResponse{
			VideoID: track.VideoID.String(),
			Title:   track.Title,
			Artist:  track.Artist,
		})
	}
	JSON(w, http.StatusOK, resp)
}

// Lyrics handles GET /v1/songs/{id}/lyrics
func (h *MusicHandler) Lyrics(w http.ResponseWriter, r *http.Request) {
	videoID, err := model.NewVideoID(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_video_id", "Video ID is not valid")
		return
	}

	payload, err := h.svc.Lyrics(r.Context(), videoID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, payload)
}

// SongMetadata handles GET /v1/songs/{id}/metadata
func (h *MusicHandler) SongMetadata(w http.ResponseWriter, r *http.Request) {
	videoID, err := model.NewVideoID(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_video_id", "Video ID is not valid")
		return
	}

	payload, err := h.svc.SongMetadata(r.Context(), videoID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	JSON(w, http.StatusOK, payload)
}

// Rate handles POST /v1/songs/{id}/rate
func (h *MusicHandler) Rate(w http.ResponseWriter, r *http.Request) {
	videoID, err := model.NewVideoID(chi.URLParam(r, "id"))
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid_video_id", "Video ID is not valid")
		return
	}

	var req RateSongRequest
	if err := decodeJSON(r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	if err := h.svc.RateSong(r.Context(), videoID, model.Rating(req.Rating)); err != nil {
		h.handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reset handles POST /v1/session/reset
func (h *MusicHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Reset(r.Context()); err != nil {
		h.handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MusicHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrEmptyBrowseID):
		Error(w, http.StatusBadRequest, "empty_browse_id", "Browse ID is required")
	case errors.Is(err, usecase.ErrEmptyQuery):
		Error(w, http.StatusBadRequest, "empty_query", "Search query is required")
	case errors.Is(err, usecase.ErrInvalidRating):
		Error(w, http.StatusBadRequest, "invalid_rating", "Rating must be LIKE, DISLIKE or INDIFFERENT")
	case errors.Is(err, repository.ErrNotFound):
		Error(w, http.StatusNotFound, "not_found", "Resource not found")
	case errors.Is(err, repository.ErrUpstreamUnavailable):
		Error(w, http.StatusBadGateway, "upstream_unavailable", "Streaming service is unavailable")
	default:
		Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
