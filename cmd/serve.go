package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeet-integrated/elvproposal/internal/consultant"
	"github.com/jeet-integrated/elvproposal/internal/dashboard"
	"github.com/jeet-integrated/elvproposal/internal/proposal"
	"github.com/jeet-integrated/elvproposal/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the proposal dashboard and consultant HTTP server",
	Long: `Serves the proposal dashboard, the REST API and the consultant websocket.
Each browser tab gets its own consultant session.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := setup(consoleWriter())
	if err != nil {
		return err
	}
	defer a.shutdown()

	opts, err := a.registryOptions()
	if err != nil {
		return err
	}
	sessions := consultant.NewRegistry(opts)

	port := a.cfg.Server.Port
	if servePort > 0 {
		port = servePort
	}
	srv := server.New(server.Config{
		Port:           port,
		AllowAll:       a.cfg.Server.AllowAllOrigins,
		RequestTimeout: time.Duration(a.cfg.Server.RequestTimeoutSeconds) * time.Second,
	}, a.logger)

	dash, err := dashboard.New(a.doc, sessions, a.logger)
	if err != nil {
		return fmt.Errorf("building dashboard: %w", err)
	}
	r := srv.Router()
	dash.RegisterRoutes(r)
	proposal.RegisterRoutes(r, a.doc)
	consultant.RegisterRoutes(r, sessions)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "Proposal desk running at http://localhost:%d\n", port)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		a.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("shutdown failed", zap.Error(err))
			return err
		}
		return nil
	}
}
