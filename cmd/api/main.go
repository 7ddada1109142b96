package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskflow/core/cmd/api/commands"
)

// @title TaskFlow API
// @version 1.0
// @description Personal kanban task tracking with token authentication

// @host localhost:3000
// @BasePath /

// @securityDefinitions.apikey TokenAuth
// @in header
// @name token
// @description Raw JWT returned by /login. An Authorization bearer token is also accepted.

func main() {
	rootCmd := &cobra.Command{
		Use:   "taskflow",
		Short: "TaskFlow API Server",
		Long:  `TaskFlow is a personal kanban board backend: accounts, token sessions and owner-scoped tasks.`,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to a config file (yaml, json or toml)")

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewUserCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
