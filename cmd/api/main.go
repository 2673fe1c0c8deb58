package main

import (
	"fmt"
	"os"

	"pharma-prep-core/internal/app"
	"pharma-prep-core/internal/infrastructure/logger"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "pharma-prep",
		Short:         "API de suivi des préparations magistrales hospitalières",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Sans sous-commande, le serveur est lancé
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}

	root.AddCommand(newServeCommand())
	root.AddCommand(newMigrateCommand())
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Démarre le serveur HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func serve() error {
	fxApp := fx.New(
		app.AppModule,
		fx.WithLogger(logger.FxLogger),
	)
	if err := fxApp.Err(); err != nil {
		return err
	}

	fxApp.Run()
	return nil
}
