package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/nashiko-dev/gomuse/internal/domain/model"
)

// BrowserEngine defines the interface for the embedded web engine.
// Implementations are provided by the hosting shell (a native webview) or by
// the infrastructure layer (e.g., the logging engine used in headless runs).
type BrowserEngine interface {
	// CreateSurface constructs a new browser instance. Engine startup is
	// expensive; callers are expected to create at most one surface per
	// process and keep it alive.
	CreateSurface(ctx context.Context) (BrowserSurface, error)
}

// BrowserSurface is one embedded-browser instance: a page that can be
// navigated, scripted, and moved between host containers without losing its
// in-page playback state.
type BrowserSurface interface {
	// Load navigates the surface to url. The navigation is fire-and-forget;
	// an error here means the navigation could not be issued, not that the
	// page failed to load.
	Load(url string) error

	// Evaluate runs a script inside the loaded page.
	Evaluate(script string) error

	// Reparent attaches the surface to the container identified by host,
	// detaching it from any previous host first.
	Reparent(host uuid.UUID) error

	// Resize fits the surface to the host container's bounds.
	Resize(bounds model.Bounds) error

	// Detach removes the surface from its current host without destroying it.
	Detach() error
}
