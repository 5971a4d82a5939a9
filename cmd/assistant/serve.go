package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-v2/assistant/internal/middleware"
	"github.com/pageza/alchemorsel-v2/assistant/internal/server"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the assistant over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), viper.GetViper())
		if err != nil {
			return err
		}
		defer a.Close()

		var opts []server.Option
		if a.redis != nil && a.cfg.RateLimit > 0 {
			opts = append(opts, server.WithRateLimiter(middleware.NewAssistantRateLimiter(
				a.redis, a.cfg.RateLimit, a.cfg.RateLimitWindow, a.logger.Named("rate_limit"))))
		}
		srv := server.New(a.cfg, a.toolbox, a.logger, opts...)

		// Channel to listen for errors coming from the server
		errChan := make(chan error, 1)
		go func() {
			errChan <- srv.Start()
		}()

		// Channel to listen for an interrupt or terminate signal from the OS
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case err := <-errChan:
			return err
		case sig := <-quit:
			a.logger.Info("received signal", zap.String("signal", sig.String()))
		}

		a.logger.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return err
		}
		a.logger.Info("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("port", "", "listen port (overrides SERVER_PORT)")
	_ = viper.BindPFlag("server_port", serveCmd.Flags().Lookup("port"))

	rootCmd.AddCommand(serveCmd)
}
