// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes discovery, verification, pattern and link
// operations over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pdiddy/lead-engine/internal/lock"
	"github.com/pdiddy/lead-engine/internal/verify"
	"github.com/pdiddy/lead-engine/pkg/types"
)

// Discoverer runs a full contact discovery.
type Discoverer interface {
	Discover(ctx context.Context, req types.DiscoveryRequest) (types.DiscoveryResult, error)
}

// Deps are the collaborators the handlers call.
type Deps struct {
	Discoverer Discoverer
	Verifier   verify.Verifier
	Locker     lock.Locker
}

// NewRouter builds the gin engine with middleware and routes.
func NewRouter(d Deps) *gin.Engine {
	if d.Locker == nil {
		d.Locker = lock.NewMemoryLocker()
	}
	h := &handler{deps: d}

	r := gin.New()
	r.Use(RequestID())
	r.Use(Recovery())
	r.Use(RequestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	v1 := r.Group("/v1")
	{
		v1.POST("/discover", Exclusive(d.Locker, "discover"), h.discover)
		v1.POST("/verify", h.verify)
		v1.POST("/patterns/extract", h.extractPatterns)
		v1.POST("/patterns/generate", h.generatePatterns)
		v1.POST("/links/classify", h.classifyLinks)
	}
	return r
}

// Run serves handler on addr until ctx is cancelled, then shuts down
// gracefully.
func Run(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return eris.Wrap(err, "server: listen")
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return eris.Wrap(err, "server: shutdown")
	}
	zap.L().Info("server exited")
	return nil
}
