package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := getStore()
		if err != nil {
			return err
		}
		if !store.IsLoggedIn() {
			pterm.Info.Println("Not logged in")
			return nil
		}
		if err := store.Clear(); err != nil {
			return err
		}
		pterm.Success.Println("Logged out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
