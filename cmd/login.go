package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/SPACEX-2022/superapp-cli/internal/session"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the management service",
	Long: `Log in to the management service and store the session token.

The server address defaults to the stored one (or the built-in default);
the password is always prompted and transmitted as a sha256 digest.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().String("server", "", "Management server address")
	loginCmd.Flags().StringP("username", "u", "", "Account username")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	store, err := getStore()
	if err != nil {
		return err
	}
	server, _ := cmd.Flags().GetString("server")
	username, _ := cmd.Flags().GetString("username")

	login := LoginCmd{auth: getClient(store), store: store, prompts: ptermPrompter{}}
	return login.Run(cmd.Context(), server, username)
}

// LoginCmd handles the login flow independent of cobra.
type LoginCmd struct {
	auth    AuthService
	store   *session.Store
	prompts Prompter
}

// Run prompts for any missing credential, authenticates, and persists the
// session on success.
func (l LoginCmd) Run(ctx context.Context, serverURL, username string) error {
	var err error
	if serverURL == "" {
		serverURL, err = l.prompts.Input("Server address", l.store.ServerURL())
		if err != nil {
			return err
		}
	}
	serverURL = strings.TrimRight(strings.TrimSpace(serverURL), "/")
	if serverURL == "" {
		return fmt.Errorf("server address is required")
	}

	if username == "" {
		username, err = l.prompts.Input("Username", "")
		if err != nil {
			return err
		}
	}
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("username is required")
	}

	password, err := l.prompts.Password("Password")
	if err != nil {
		return err
	}

	token, err := l.auth.Login(ctx, serverURL, username, password)
	if err != nil {
		pterm.Error.Printf("Login failed: %v\n", err)
		return err
	}

	if err := l.store.SaveServerURL(serverURL); err != nil {
		return err
	}
	if err := l.store.SaveToken(token); err != nil {
		return err
	}

	pterm.Success.Printf("Logged in to %s as %s\n", serverURL, username)
	return nil
}
