// Package server serves the latest evaluation over HTTP and keeps it fresh.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/autopeer-io/edfsizer/internal/sizer/snapshot"
	"github.com/autopeer-io/edfsizer/internal/sizer/watch"
	"github.com/autopeer-io/edfsizer/pkg/log"
)

// Server runs the API server and, when configured, the catalog watcher.
type Server struct {
	httpserver      *http.Server
	store           *snapshot.Store
	watcher         *watch.Watcher
	shutdownTimeout time.Duration
}

func New(httpserver *http.Server, store *snapshot.Store, watcher *watch.Watcher, shutdownTimeout time.Duration) *Server {
	return &Server{
		httpserver:      httpserver,
		store:           store,
		watcher:         watcher,
		shutdownTimeout: shutdownTimeout,
	}
}

// Run evaluates once, then serves until ctx is cancelled. A failed first
// evaluation is logged and the API answers 503 until a reload succeeds.
func (s *Server) Run(ctx context.Context) error {
	if err := s.store.Refresh(ctx); err != nil {
		log.Error(err, "Initial evaluation failed, serving without a snapshot")
	}

	g, ctx := errgroup.WithContext(ctx)

	// 1. Start HTTP Server (API/Health/Metrics)
	g.Go(func() error {
		log.Info("edfsizer HTTP listening", "address", s.httpserver.Addr)
		if err := s.httpserver.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// 2. Watch catalog files (optional)
	if s.watcher != nil {
		g.Go(func() error {
			return s.watcher.Run(ctx)
		})
	}

	// 3. Graceful shutdown
	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutdown signal received, waiting for servers to stop...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.httpserver.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP server shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("edfsizer server stopped gracefully.")
	return nil
}
