package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"siteauth/pkg/logger"
)

const LogBootstrapDone = "admin bootstrap finished"

func newBootstrapAdminCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap-admin",
		Short: "Create the account schema and the admin account, then exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}

			d, err := buildDeps(ctx, cfg)
			if err != nil {
				return err
			}

			if err := d.accounts.EnsureAdminBootstrap(ctx); err != nil {
				return errors.Join(fmt.Errorf("%s: %w", ErrBootstrapAdmin, err), d.close(ctx))
			}
			logger.Log(ctx).Info(ctx, LogBootstrapDone)

			return d.close(ctx)
		},
	}
}
