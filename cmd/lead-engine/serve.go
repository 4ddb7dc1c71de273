// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/pdiddy/lead-engine/internal/lock"
	"github.com/pdiddy/lead-engine/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve discovery, verification, pattern and link operations over HTTP",
	Long: `Serve starts the HTTP API:

  POST /v1/discover           run a discovery (one at a time per X-User-ID)
  POST /v1/verify             verify one email
  POST /v1/patterns/extract   extract patterns from snippets
  POST /v1/patterns/generate  generate graded candidates
  POST /v1/links/classify     classify company links
  GET  /healthz               liveness

It shuts down gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = a.cfg.Server.Addr
	}

	gin.SetMode(gin.ReleaseMode)
	router := server.NewRouter(server.Deps{
		Discoverer: a.orchestrator,
		Verifier:   a.verifier,
		Locker:     lock.NewMemoryLocker(),
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.Run(ctx, addr, router)
}
