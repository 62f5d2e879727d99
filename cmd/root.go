package cmd

import (
	"github.com/spf13/cobra"

	"github.com/SPACEX-2022/superapp-cli/internal/api"
	"github.com/SPACEX-2022/superapp-cli/internal/session"
)

// metadata is populated by the release build via ldflags.
var metadata = struct {
	Version string
}{
	Version: "dev",
}

var rootCmd = &cobra.Command{
	Use:           "superapp",
	Short:         "Manage the superapp game library from the terminal",
	Long:          "superapp drives the game management service: log in, list and create games, upload assets, and pair with the console listing page to add games straight from its table.",
	Version:       metadata.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Root returns the root command for execution by main.
func Root() *cobra.Command {
	return rootCmd
}

func getStore() (*session.Store, error) {
	return session.NewStore()
}

func getClient(store *session.Store) *api.Client {
	return api.New(store)
}
