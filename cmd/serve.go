package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/stemerlini/fusion-plots/config"
	"github.com/stemerlini/fusion-plots/handlers"
	"github.com/stemerlini/fusion-plots/health"
	"github.com/stemerlini/fusion-plots/logging"
	"github.com/stemerlini/fusion-plots/server"
	"github.com/stemerlini/fusion-plots/validation"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		address string
		port    string
	)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve starts the HTTP API.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if cmd.Flags().Changed("address") {
				cfg.Address = address
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if err := config.Validate(cfg); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}

			handler := handlers.NewHTTPHandler(opts.parser, validation.NewDataValidator(), health.NewHealthChecker(), opts.source())
			srv := server.NewServer(cfg, handler)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errChan := make(chan error, 1)
			go func() {
				errChan <- srv.Start()
			}()

			select {
			case err := <-errChan:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			logging.Info("Server exited gracefully")
			return <-errChan
		},
	}

	flags := serveCmd.Flags()
	flags.StringVar(&address, "address", "", "listen address, overrides ADDRESS")
	flags.StringVar(&port, "port", "", "listen port, overrides PORT")
	return serveCmd
}
