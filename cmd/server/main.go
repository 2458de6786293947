package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"lol-overlay/internal/config"
	"lol-overlay/internal/constants"
	fxmodules "lol-overlay/internal/fx"
	"lol-overlay/internal/server"
	"lol-overlay/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runScheduler),
		fx.Invoke(runServer),
	).Run()
}

func runScheduler(
	lc fx.Lifecycle,
	scheduler *service.Scheduler,
	logger zerolog.Logger,
) {
	ctx, cancel := context.WithCancel(context.Background())

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := scheduler.Run(ctx); err != nil && ctx.Err() == nil {
					logger.Error().Err(err).Msg("scheduler stopped unexpectedly")
				}
			}()
			go func() {
				for range hup {
					scheduler.ForceRefresh()
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			signal.Stop(hup)
			close(hup)
			cancel()
			return nil
		},
	})
}

func runServer(
	lc fx.Lifecycle,
	overlay *server.OverlayServer,
	cfg *config.Config,
	db *sql.DB,
	logger zerolog.Logger,
) {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: overlay.Handler(),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info().Str("addr", srv.Addr).Str("overlay_dir", cfg.OverlayDir).Msg("overlay server starting")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("overlay server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down overlay server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database connection")
			}

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("overlay server shutdown failed")
				return err
			}
			logger.Info().Msg("overlay server stopped gracefully")
			return nil
		},
	})
}
