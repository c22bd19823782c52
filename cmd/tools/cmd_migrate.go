package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentx/slack-summarizer/internal/database"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the audit database schema",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			if err := requireDatabase(cfg); err != nil {
				return err
			}
			if err := database.RunMigrations(cfg.Database); err != nil {
				return err
			}
			logger.Info("Migrations applied")
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			if err := requireDatabase(cfg); err != nil {
				return err
			}
			if err := database.RollbackMigration(cfg.Database); err != nil {
				return fmt.Errorf("rollback: %w", err)
			}
			logger.Info("Rolled back one migration")
			return nil
		},
	})
	return cmd
}
