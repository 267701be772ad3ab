package handler

import (
	"net/http"

	"github.com/nashiko-dev/gomuse/internal/infrastructure/cache"
)

type InvalidateRequest struct {
	// Prefix selects the keys to remove; empty means everything.
	Prefix string `json:"prefix"`
}

// CacheHandler exposes cache maintenance to remote callers.
type CacheHandler struct {
	cache cache.ResponseCache
}

// NewCacheHandler creates a new CacheHandler.
func NewCacheHandler(responseCache cache.ResponseCache) *CacheHandler {
	return &CacheHandler{cache: responseCache}
}

// Invalidate handles POST /v1/cache/invalidate
func (h *CacheHandler) Invalidate(w http.ResponseWriter, r *http.Request) {
	var req InvalidateRequest
	if err := decodeJSON(r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	var err error
	if req.Prefix == "" {
		err = h.cache.InvalidateAll(r.Context())
	} else {
		err = h.cache.Invalidate(r.Context(), req.Prefix)
	}
	if err != nil {
		Error(w, http.StatusInternalServerError, "cache_error", "Failed to invalidate cache")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
