// Package root holds the staybook CLI root command that every command group attaches to.
package root

import (
	"github.com/spf13/cobra"

	"github.com/crucial707/staybook/cmd/cli/config"
)

var apiURL string

// RootCmd is the top-level "staybook" command.
var RootCmd = &cobra.Command{
	Use:          "staybook",
	Short:        "Browse listings and manage bookings on a staybook API",
	Long:         "Command line client for the staybook rental API. The session token saved by\n`staybook login` is sent as the token cookie on every request.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if apiURL != "" {
			config.SetAPIURL(apiURL)
		}
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "API base URL (overrides STAYBOOK_API_URL)")
}

// GetRoot returns RootCmd for command groups to register on.
func GetRoot() *cobra.Command {
	return RootCmd
}
