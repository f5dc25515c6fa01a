package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/prodotask/server/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "prodotask",
		Short: "ProdoTask API Server",
		Long:  `ProdoTask is a personal productivity server combining tasks, habits, notes and a calendar behind one API.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewUserCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
