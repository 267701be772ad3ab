// Package browser provides BrowserEngine implementations. A native shell
// supplies the real webview engine; the logging engine here keeps headless
// runs honest by recording what the webview would have been told to do.
package browser

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/nashiko-dev/gomuse/internal/domain/model"
	"github.com/nashiko-dev/gomuse/internal/domain/repository"
)

// LoggingEngine creates surfaces that log navigations and attachment changes
// instead of rendering anything.
type LoggingEngine struct {
	logger *slog.Logger
}

// NewLoggingEngine creates a LoggingEngine.
func NewLoggingEngine(logger *slog.Logger) *LoggingEngine {
	return &LoggingEngine{logger: logger}
}

func (e *LoggingEngine) CreateSurface(_ context.Context) (repository.BrowserSurface, error) {
	e.logger.Info("creating browser surface")
	return &loggingSurface{logger: e.logger}, nil
}

type loggingSurface struct {
	logger *slog.Logger

	mu   sync.Mutex
	host uuid.UUID
	url  string
}

func (s *loggingSurface) Load(url string) error {
	s.mu.Lock()
	s.url = url
	s.mu.Unlock()

	s.logger.Info("surface load", slog.String("url", url))
	return nil
}

func (s *loggingSurface) Evaluate(script string) error {
	s.logger.Debug("surface evaluate", slog.Int("script_len", len(script)))
	return nil
}

func (s *loggingSurface) Reparent(host uuid.UUID) error {
	s.mu.Lock()
	s.host = host
	s.mu.Unlock()

	s.logger.Info("surface reparent", slog.String("host", host.String()))
	return nil
}

func (s *loggingSurface) Resize(bounds model.Bounds) error {
	s.logger.Debug("surface resize",
		slog.Float64("width", bounds.Width),
		slog.Float64("height", bounds.Height),
	)
	return nil
}

func (s *loggingSurface) Detach() error {
	s.mu.Lock()
	s.host = uuid.Nil
	s.mu.Unlock()

	s.logger.Info("surface detach")
	return nil
}
