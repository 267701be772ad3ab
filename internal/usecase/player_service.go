package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/nashiko-dev/gomuse/internal/domain/model"
	"github.com/nashiko-dev/gomuse/internal/domain/repository"
	"github.com/nashiko-dev/gomuse/internal/infrastructure/metrics"
)

// PlayerPhase is the observable lifecycle state of the playback surface.
type PlayerPhase string

const (
	// PhaseEmpty means no browser instance has been created yet.
	PhaseEmpty PlayerPhase = "EMPTY"
	// PhaseActive means the browser instance exists. VideoID may still be
	// empty if nothing has been loaded.
	PhaseActive PlayerPhase = "ACTIVE"
)

// PlayerState is a snapshot of the playback surface.
type PlayerState struct {
	Phase   PlayerPhase
	VideoID model.VideoID
	Host    uuid.UUID
}

// PlayerService owns the process's single playback surface: one embedded
// browser instance that containers borrow and hand back as the surrounding UI
// is rebuilt. Creating a browser instance means engine startup plus a page
// load, so the instance is created once and re-parented instead of rebuilt;
// tearing it down mid-playback would interrupt audio.
type PlayerService interface {
	// Acquire ensures the surface exists and is attached to the container.
	// Safe to call on every render pass: attaching to the current host only
	// resizes. A different container takes the surface away from the previous
	// one (last caller wins).
	Acquire(ctx context.Context, handle model.ContainerHandle) error

	// LoadIfNeeded navigates to the given video if it differs from the one
	// currently loaded. Repeated calls with the same ID issue no navigation.
	LoadIfNeeded(videoID string) error

	// Refresh is the per-update-pass entry point: Acquire then LoadIfNeeded.
	// An invalid video ID is logged and skipped, never surfaced; a broken ID
	// for one song must not take down an otherwise working player.
	Refresh(ctx context.Context, handle model.ContainerHandle, videoID string) error

	// State returns a snapshot of the surface lifecycle.
	State() PlayerState
}

// ErrSurfaceNotCreated is returned when a navigation is requested before any
// container has acquired the surface.
var ErrSurfaceNotCreated = errors.New("playback surface has not been created yet")

// PlayerServiceConfig holds configuration for PlayerService.
type PlayerServiceConfig struct {
	// WatchURLTemplate is the navigation target template; the video ID is
	// substituted for %s.
	WatchURLTemplate string
}

// DefaultPlayerServiceConfig returns the default configuration.
func DefaultPlayerServiceConfig() PlayerServiceConfig {
	return PlayerServiceConfig{
		WatchURLTemplate: "https://music.youtube.com/watch?v=%s",
	}
}

type playerService struct {
	engine repository.BrowserEngine

	mu           sync.Mutex
	surface      repository.BrowserSurface
	currentVideo model.VideoID
	host         uuid.UUID

	watchURLTemplate string
}

// NewPlayerService creates a PlayerService. The browser instance itself is
// not created until the first Acquire.
func NewPlayerService(engine repository.BrowserEngine, cfg PlayerServiceConfig) PlayerService {
	return &playerService{
		engine:           engine,
		watchURLTemplate: cfg.WatchURLTemplate,
	}
}

func (s *playerService) Acquire(ctx context.Context, handle model.ContainerHandle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.surface == nil {
		surface, err := s.engine.CreateSurface(ctx)
		if err != nil {
			return fmt.Errorf("create browser surface: %w", err)
		}
		s.surface = surface
	}

	if s.host != handle.ID {
		if s.host != uuid.Nil {
			if err := s.surface.Detach(); err != nil {
				slog.Warn("failed to detach surface from previous host",
					"host", s.host,
					"error", err,
				)
			}
		}
		if err := s.surface.Reparent(handle.ID); err != nil {
			// The surface is already detached at this point. Forget the old
			// host so the next Acquire attempts a fresh attachment instead of
			// treating the caller as still attached and only resizing.
			s.host = uuid.Nil
			return fmt.Errorf("reparent surface: %w", err)
		}
		s.host = handle.ID
		metrics.PlayerReparentsTotal.Inc()
	}

	// Bounds can change on every layout pass even when the host does not.
	if err := s.surface.Resize(handle.Bounds); err != nil {
		return fmt.Errorf("resize surface: %w", err)
	}

	return nil
}

func (s *playerService) LoadIfNeeded(rawVideoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.surface == nil {
		return ErrSurfaceNotCreated
	}

	videoID, err := model.NewVideoID(rawVideoID)
	if err != nil {
		metrics.PlayerNavigationsTotal.WithLabelValues(metrics.NavigationInvalid).Inc()
		return err
	}

	if videoID == s.currentVideo {
		metrics.PlayerNavigationsTotal.WithLabelValues(metrics.NavigationSkipped).Inc()
		return nil
	}

	url := fmt.Sprintf(s.watchURLTemplate, videoID)
	if err := s.surface.Load(url); err != nil {
		return fmt.Errorf("load %s: %w", url, err)
	}
	s.currentVideo = videoID
	metrics.PlayerNavigationsTotal.WithLabelValues(metrics.NavigationIssued).Inc()

	return nil
}

func (s *playerService) Refresh(ctx context.Context, handle model.ContainerHandle, videoID string) error {
	if err := s.Acquire(ctx, handle); err != nil {
		return err
	}

	// A container with nothing to play still gets the surface attached.
	if videoID == "" {
		return nil
	}

	if err := s.LoadIfNeeded(videoID); err != nil {
		if errors.Is(err, model.ErrInvalidVideoID) {
			slog.Warn("skipping navigation for invalid video ID",
				"video_id", videoID,
				"error", err,
			)
			return nil
		}
		return err
	}

	return nil
}

func (s *playerService) State() PlayerState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.surface == nil {
		return PlayerState{Phase: PhaseEmpty}
	}
	return PlayerState{
		Phase:   PhaseActive,
		VideoID: s.currentVideo,
		Host:    s.host,
	}
}
