package main

import (
	"fmt"

	"pharma-prep-core/internal/app"
	"pharma-prep-core/internal/app/config"
	"pharma-prep-core/internal/infrastructure/database/migrations"

	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrations du schéma PostgreSQL",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Applique les migrations en attente",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := newRunner()
			if err != nil {
				return err
			}
			if err := runner.Up(); err != nil {
				return err
			}
			return printVersion(cmd, runner)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Annule la dernière migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := newRunner()
			if err != nil {
				return err
			}
			if err := runner.Down(); err != nil {
				return err
			}
			return printVersion(cmd, runner)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Affiche la version du schéma",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := newRunner()
			if err != nil {
				return err
			}
			return printVersion(cmd, runner)
		},
	})

	return cmd
}

func newRunner() (*migrations.Runner, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}
	return app.NewMigrationRunner(cfg, app.NewLogger(cfg)), nil
}

func printVersion(cmd *cobra.Command, runner *migrations.Runner) error {
	status, err := runner.Version()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", status.Version, status.Dirty)
	return nil
}
