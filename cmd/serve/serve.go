// Package serve runs the HTTP API server.
package serve

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"expenserule/cmd/common"
	"expenserule/cmd/root"
	"expenserule/internal/container"
	"expenserule/internal/logging"
	"expenserule/internal/server"
)

var addr string

// Cmd represents the serve command.
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long:  `Serve the JSON API for categorization, corrections, expenses and receipt uploads.`,
	RunE:  serveFunc,
}

func init() {
	Cmd.Flags().StringVar(&addr, "addr", "", "Listen address (host:port), overrides the configured value")
}

func serveFunc(cmd *cobra.Command, args []string) error {
	return common.WithContainer(cmd.Context(), root.Cfg, root.Log, func(c *container.Container) error {
		listenAddr := root.Cfg.Server.Addr
		if addr != "" {
			listenAddr = addr
		}

		// GetGemini returns a typed nil without an API key; only a live
		// client may reach the server as a non-nil interface.
		var extractor server.ReceiptExtractor
		if g := c.GetGemini(); g != nil {
			extractor = g
		}

		srv := server.NewServer(listenAddr, c.GetEngine(), c.GetRepository(), c.GetRegistry(),
			c.GetUploads(), extractor, root.Cfg.Data.Directory, c.GetLogger())

		srv.ReadTimeout = 10 * time.Second
		// Receipt extraction calls the model inside the request.
		srv.WriteTimeout = 120 * time.Second
		srv.IdleTimeout = 60 * time.Second
		srv.MaxHeaderBytes = 1 << 16

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			c.GetLogger().WithField(logging.FieldAddr, listenAddr).Info("Server listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
				return
			}
			errCh <- nil
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		c.GetLogger().Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	})
}
