// Package cmd provides the command-line interface for the pong server.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pong",
	Short: "Multiplayer pong server with trajectory-predicting bots.",
	Long: `Multiplayer pong server with trajectory-predicting bots. ` +
		`"serve" hosts rooms over websockets, empty seats are taken by bots; ` +
		`"sim" plays headless bot matches to compare tunings.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
