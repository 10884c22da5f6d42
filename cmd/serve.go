package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"polyglot/internal/api"
	"polyglot/internal/api/handler"
	"polyglot/internal/config"
	"polyglot/pkg/clock"
	"polyglot/pkg/logger"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func apiDeps(cfg *config.Config, startedAt time.Time) api.Deps {
	return api.Deps{Deps: handler.Deps{
		Clock:       clock.System{},
		StartedAt:   startedAt,
		Environment: cfg.Environment,
	}}
}

func setupServer(ctx context.Context, cfg *config.Config, startedAt time.Time) func(ctx context.Context) {
	server, err := api.NewServer(ctx, apiDeps(cfg, startedAt), api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", server.Addr), zap.String("environment", cfg.Environment))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config, startedAt time.Time) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the API server",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			stopWebserver := setupServer(ctx, cfg, startedAt)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
		},
	}

	return cmd
}
