package cmd

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/SPACEX-2022/superapp-cli/pkg/util"
)

var hostappsCmd = &cobra.Command{
	Use:   "hostapps",
	Short: "Manage host applications",
}

var hostappsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List host applications games can attach to",
	Args:  cobra.NoArgs,
	RunE:  runHostAppsList,
}

func init() {
	hostappsListCmd.Flags().StringP("output", "o", "", "Output format (json)")
	hostappsCmd.AddCommand(hostappsListCmd)
	rootCmd.AddCommand(hostappsCmd)
}

func runHostAppsList(cmd *cobra.Command, args []string) error {
	store, err := getStore()
	if err != nil {
		return err
	}
	output, _ := cmd.Flags().GetString("output")
	return HostAppsCmd{svc: getClient(store)}.List(cmd.Context(), output)
}

// HostAppsCmd handles host app operations independent of cobra.
type HostAppsCmd struct {
	svc GameService
}

// List prints every host application.
func (h HostAppsCmd) List(ctx context.Context, output string) error {
	apps, err := h.svc.ListHostApps(ctx)
	if err != nil {
		return err
	}

	if output == "json" {
		return util.PrintPrettyJSONSlice(apps)
	}

	rows := pterm.TableData{{"Code", "Name"}}
	for _, app := range apps {
		rows = append(rows, []string{app.AppCode, util.OrDash(app.AppName)})
	}
	PrintTableNoPad(rows, true)
	return nil
}
