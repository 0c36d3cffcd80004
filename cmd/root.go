package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/veitlor/libram/config"
	"go.uber.org/zap"
)

// ConfigFileLocation is of the config to load
var ConfigFileLocation string

// TopLevelLogger is the logger all loggers come from
var TopLevelLogger *zap.Logger

// LoadedConfig is the currently loaded configuration after initial bootstrapping
var LoadedConfig *config.Configuration

// FileSystemsConfig consists of the filesystems to use (either local or embed)
var FileSystemsConfig *config.FileSystems

var rootCommand = cobra.Command{
	Use:   "libram",
	Short: "libram, the library management auth service",
	Long: `libram is the authentication and session service of the
	library management system, it owns logins, emailed login codes,
	account verification and password recovery`,
	Run: func(cmd *cobra.Command, args []string) {
		serveCommand.Run(cmd, args)
	},
}

func Execute() {
	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {

	rootCommand.PersistentFlags().
		StringVar(&ConfigFileLocation, "config", "", "config file to be used")

	mailCommand.AddCommand(&sendTestMailCommand)

	userCommand.AddCommand(&userCreateCommand)
	userCommand.AddCommand(&confirmUserCommand)
	userCommand.AddCommand(&unlockUserCommand)
	userCommand.AddCommand(&listUsersCommand)

	libraryCommand.AddCommand(&libraryCreateCommand)
	libraryCommand.AddCommand(&listLibrariesCommand)

	rootCommand.AddCommand(&userCommand)
	rootCommand.AddCommand(&libraryCommand)
	rootCommand.AddCommand(&mailCommand)
	rootCommand.AddCommand(&serveCommand)
}

var userCommand = cobra.Command{
	Use:   "user",
	Short: "user related operator commands",
}

var libraryCommand = cobra.Command{
	Use:   "library",
	Short: "library tenant related operator commands",
}

var mailCommand = cobra.Command{
	Use:   "mail",
	Short: "email setup commands",
}
