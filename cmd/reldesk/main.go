package main

import (
	"os"

	"github.com/spf13/cobra"

	"reldesk/internal/interfaces/cli/migrate"
	"reldesk/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "reldesk",
		Short: "Reldesk - release tracking service",
		Long:  `Reldesk tracks service releases and the externally-sourced tickets they deliver, with built-in server and migration tools.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
