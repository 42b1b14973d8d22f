// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taibuivan/sitenav/internal/platform/config"
	"github.com/taibuivan/sitenav/internal/platform/migration"
)

func newMigrateCommand(logger func() *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema (DATABASE_URL, MIGRATION_PATH)",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger())
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return migration.RunDown(cfg.DatabaseURL, cfg.MigrationPath, steps, logger())
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back")

	status := &cobra.Command{
		Use:   "status",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			current, err := migration.CurrentStatus(cfg.DatabaseURL, cfg.MigrationPath, logger())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), describeStatus(current))
			return nil
		},
	}

	cmd.AddCommand(up, down, status)
	return cmd
}

func describeStatus(status migration.Status) string {
	switch {
	case status.Empty:
		return "no migrations applied"
	case status.Dirty:
		return fmt.Sprintf("version %d (dirty, fix manually)", status.Version)
	default:
		return fmt.Sprintf("version %d", status.Version)
	}
}
