package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/nashiko-dev/gomuse/internal/api/handler"
	"github.com/nashiko-dev/gomuse/internal/api/middleware"
	"github.com/nashiko-dev/gomuse/internal/app"
	"github.com/nashiko-dev/gomuse/internal/config"
	"github.com/nashiko-dev/gomuse/internal/infrastructure/browser"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the gomuse daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	reg, err := app.New(cfg, logger, browser.NewLoggingEngine(logger))
	if err != nil {
		return fmt.Errorf("failed to build registry: %w", err)
	}

	r := setupRouter(logger, reg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func setupRouter(logger *slog.Logger, reg *app.Registry) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	r.Get("/health", handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	musicHandler := handler.NewMusicHandler(reg.Music)
	playerHandler := handler.NewPlayerHandler(reg.Player, reg.Handle)
	cacheHandler := handler.NewCacheHandler(reg.Cache)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/browse/home", musicHandler.Home)
		r.Get("/playlists/{id}", musicHandler.Playlist)
		r.Get("/artists/{id}", musicHandler.Artist)
		r.Get("/search", musicHandler.Search)
		r.Get("/library", musicHandler.Library)
		r.Get("/songs/{id}/lyrics", musicHandler.Lyrics)
		r.Get("/songs/{id}/metadata", musicHandler.SongMetadata)
		r.Post("/songs/{id}/rate", musicHandler.Rate)
		r.Post("/session/reset", musicHandler.Reset)

		r.Post("/player/load", playerHandler.Load)
		r.Get("/player/state", playerHandler.State)

		r.Post("/cache/invalidate", cacheHandler.Invalidate)
	})

	return r
}
