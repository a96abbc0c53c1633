package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/xlrbot/pkg/cli/config"
	controller "github.com/m-mizutani/xlrbot/pkg/controller/http"
	"github.com/m-mizutani/xlrbot/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		botCfg    config.Bot
		xlrCfg    config.XLR
		slackCfg  config.Slack
		sentryCfg config.Sentry
	)

	var flags []cli.Flag
	flags = append(flags, serverCfg.Flags()...)
	flags = append(flags, botCfg.Flags()...)
	flags = append(flags, xlrCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server receiving host events",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting xlrbot server",
				slog.String("addr", serverCfg.Addr),
				slog.Any("server", serverCfg),
				slog.Any("xlr", xlrCfg),
				slog.Any("slack", slackCfg),
			)

			flush, err := sentryCfg.Configure()
			if err != nil {
				return err
			}
			defer flush()

			// Create gateways
			releaseAPI, err := xlrCfg.NewClient()
			if err != nil {
				return err
			}
			botClient := botCfg.NewClient(ctx)

			var opts []usecase.ActivityOption
			if mirror := slackCfg.Mirror(); mirror != nil {
				opts = append(opts, usecase.WithMirror(mirror))
			}

			// Create use cases
			activityUC := usecase.NewActivity(usecase.NewCorrelate(releaseAPI), botClient, opts...)

			// Create HTTP server with options
			server, err := controller.NewServer(
				ctx,
				activityUC,
				controller.WithAddr(serverCfg.Addr),
				controller.WithHookSecret(serverCfg.HookSecret),
				controller.WithAsyncProcess(serverCfg.AsyncProcess),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting",
					slog.String("addr", serverCfg.Addr),
					slog.String("bot_endpoint", botClient.Endpoint()),
				)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
