package handler

import (
	"net/http"

	"github.com/nashiko-dev/gomuse/internal/domain/model"
	"github.com/nashiko-dev/gomuse/internal/usecase"
)

type LoadRequest struct {
	VideoID string `json:"video_id"`
}

type PlayerStateResponse struct {
	Phase   string `json:"phase"`
	VideoID string `json:"video_id,omitempty"`
	Host    string `json:"host,omitempty"`
}

// PlayerHandler drives the playback surface on behalf of remote callers.
// The daemon acts as the surface's host container, so every load request goes
// through the same acquire-then-load path a mounting UI container would use.
type PlayerHandler struct {
	player usecase.PlayerService
	handle model.ContainerHandle
}

// NewPlayerHandler creates a PlayerHandler hosting the surface in the given
// container.
func NewPlayerHandler(player usecase.PlayerService, handle model.ContainerHandle) *PlayerHandler {
	return &PlayerHandler{player: player, handle: handle}
}

// Load handles POST /v1/player/load
func (h *PlayerHandler) Load(w http.ResponseWriter, r *http.Request) {
	var req LoadRequest
	if err := decodeJSON(r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	if _, err := model.NewVideoID(req.VideoID); err != nil {
		Error(w, http.StatusBadRequest, "invalid_video_id", "Video ID is not valid")
		return
	}

	if err := h.player.Refresh(r.Context(), h.handle, req.VideoID); err != nil {
		Error(w, http.StatusInternalServerError, "player_error", "Failed to drive the playback surface")
		return
	}

	JSON(w, http.StatusOK, toPlayerStateResponse(h.player.State()))
}

// State handles GET /v1/player/state
func (h *PlayerHandler) State(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, toPlayerStateResponse(h.player.State()))
}

func toPlayerStateResponse(state usecase.PlayerState) PlayerStateResponse {
	resp := PlayerStateResponse{
		Phase:   string(state.Phase),
		VideoID: state.VideoID.String(),
	}
	if state.Phase == usecase.PhaseActive {
		resp.Host = state.Host.String()
	}
	return resp
}
