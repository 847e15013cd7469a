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
	"github.com/urfave/cli/v3"

	"github.com/cutover-io/cutover/pkg/cli/config"
	controller "github.com/cutover-io/cutover/pkg/controller/http"
	"github.com/cutover-io/cutover/pkg/usecase"
)

func cmdServe() *cli.Command {
	var (
		serverCfg   config.Server
		githubCfg   config.GitHub
		registryCfg config.Registry
		slackCfg    config.Slack
		sentryCfg   config.Sentry
	)

	flags := serverCfg.Flags()
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, registryCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			flush, err := sentryCfg.Init()
			if err != nil {
				return err
			}
			defer flush()

			routerMode, err := serverCfg.Mode()
			if err != nil {
				return err
			}

			registry, err := registryCfg.Load()
			if err != nil {
				return err
			}

			hosting, err := githubCfg.Build()
			if err != nil {
				return err
			}

			notifier, err := slackCfg.Build()
			if err != nil {
				return err
			}

			opts := []usecase.Option{}
			if notifier != nil {
				opts = append(opts, usecase.WithNotifier(notifier))
			}
			workflowUC := usecase.New(hosting, opts...)

			logger.Info("Starting cutover server",
				slog.String("addr", serverCfg.Addr),
				slog.String("router_mode", string(routerMode)),
				slog.Int("projects", len(registry.Projects)),
			)

			server, err := controller.NewServer(
				ctx,
				workflowUC,
				hosting,
				registry,
				controller.WithAddr(serverCfg.Addr),
				controller.WithRouterMode(routerMode),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
