package cmd

import (
	"os"
	"strings"

	"github.com/pkg/browser"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// defaultConsoleURL is the game-listing page "superapp watch" pairs with.
const defaultConsoleURL = "https://superapp.tcmppapi.com/superapp/miniGame/list"

// ConsoleURLEnv overrides the console listing page URL.
const ConsoleURLEnv = "SUPERAPP_CONSOLE_URL"

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Open the console game-listing page in the browser",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		url := consoleURL()
		pterm.Info.Printf("Opening %s\n", url)
		return browser.OpenURL(url)
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}

func consoleURL() string {
	if u := strings.TrimSpace(os.Getenv(ConsoleURLEnv)); u != "" {
		return u
	}
	return defaultConsoleURL
}
