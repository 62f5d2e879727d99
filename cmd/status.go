package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/SPACEX-2022/superapp-cli/pkg/util"
)

type sessionStatus struct {
	LoggedIn  bool   `json:"loggedIn"`
	ServerURL string `json:"serverUrl"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session state",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringP("output", "o", "", "Output format (json)")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")

	store, err := getStore()
	if err != nil {
		return err
	}
	status := sessionStatus{
		LoggedIn:  store.IsLoggedIn(),
		ServerURL: store.ServerURL(),
	}

	if output == "json" {
		return util.PrintPrettyJSON(status)
	}

	rows := pterm.TableData{{"Property", "Value"}}
	if status.LoggedIn {
		rows = append(rows, []string{"Session", pterm.Green("logged in")})
	} else {
		rows = append(rows, []string{"Session", pterm.Red("logged out")})
	}
	rows = append(rows, []string{"Server", status.ServerURL})
	PrintTableNoPad(rows, true)
	return nil
}
