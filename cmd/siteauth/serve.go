package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpadapter "siteauth/internal/auth/adapters/http"
	"siteauth/internal/catalog"
	"siteauth/pkg/logger"
	"siteauth/pkg/shutdown"
)

const (
	LogStartingServer = "starting HTTP server"
	LogServerStopped  = "HTTP server stopped"
	LogServerFailed   = "HTTP server failed"

	ErrBootstrapAdmin = "failed to bootstrap admin account"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.Log(ctx)

	d, err := buildDeps(ctx, cfg)
	if err != nil {
		return err
	}

	if err := d.accounts.EnsureAdminBootstrap(ctx); err != nil {
		return errors.Join(fmt.Errorf("%s: %w", ErrBootstrapAdmin, err), d.close(ctx))
	}

	fiberApp := fiber.New(fiber.Config{
		AppName:      "siteauth",
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		BodyLimit:    cfg.HTTP.BodyLimit,
	})

	httpadapter.SetupRouter(fiberApp,
		httpadapter.NewAccountHandler(d.accounts),
		httpadapter.NewPublicHandler(d.repo, catalog.Default(), time.Now()))

	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	addr := cfg.HTTP.GetAddress()
	log.Info(ctx, LogStartingServer, zap.String("address", addr))
	listenErr := make(chan error, 1)
	go func() {
		if err := fiberApp.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
			log.Error(ctx, LogServerFailed, zap.Error(err))
			listenErr <- err
			cancel()
		}
	}()

	// Сервер останавливается раньше хранилищ.
	shutdown.Wait(serveCtx, cfg.Shutdown.Timeout, func(hookCtx context.Context) error {
		err := fiberApp.ShutdownWithContext(hookCtx)
		log.Info(hookCtx, LogServerStopped)
		return errors.Join(err, d.close(hookCtx))
	})

	select {
	case err := <-listenErr:
		return fmt.Errorf("%s: %w", LogServerFailed, err)
	default:
		return nil
	}
}
