package cmd

import (
	"context"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/SPACEX-2022/superapp-cli/internal/bridge"
	"github.com/SPACEX-2022/superapp-cli/internal/observe"
	"github.com/SPACEX-2022/superapp-cli/internal/relay"
	"github.com/SPACEX-2022/superapp-cli/internal/session"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Pair with the console listing page and add games from its table",
	Long: `Start the local bridge and watch the console game-listing table.

The page companion script connects to the bridge, every table row gets an
"添加到游戏库" action, and clicking one opens the creation form here,
pre-filled from the row. Success and failure are shown as toasts on the
page.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().String("addr", "", "Bridge listen address (default "+bridge.DefaultAddr+")")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	store, err := getStore()
	if err != nil {
		return err
	}
	if !store.IsLoggedIn() {
		pterm.Warning.Println("Not logged in; the form will refuse to submit. Run 'superapp login' first.")
	}

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = os.Getenv(bridge.AddrEnv)
	}

	w := WatchCmd{store: store, addr: addr}
	return w.Run(cmd.Context())
}

// WatchCmd wires bridge, observer, relay coordinator and form surface
// together for one watch session.
type WatchCmd struct {
	store *session.Store
	addr  string
}

// Run blocks until ctx is cancelled.
func (w WatchCmd) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	server := bridge.NewServer(w.addr, "app-tcmpp-table__box")

	opener := &terminalFormOpener{ctx: ctx, store: w.store}
	coordinator := relay.NewCoordinator(w.store, opener)
	opener.send = coordinator.Send

	// Page toasts: the connected page is the active notification surface.
	detach := coordinator.AttachSurface(server)
	defer detach()

	observer := observe.New(server, coordinator, observe.Config{})

	go coordinator.Run(ctx)
	go func() {
		if err := observer.Run(ctx); err != nil && ctx.Err() == nil {
			pterm.Error.Printf("observer stopped: %v\n", err)
			cancel()
		}
	}()

	pterm.Info.Printf("Bridge listening; waiting for the console page to connect\n")
	return server.ListenAndServe(ctx)
}

// terminalFormOpener runs the interactive form in this terminal when the
// relay asks for a form surface. Two rapid clicks open two forms; the
// relay does not dedup.
type terminalFormOpener struct {
	ctx   context.Context
	store *session.Store
	send  func(relay.Message)
}

func (o *terminalFormOpener) OpenForm() {
	go func() {
		store, send := o.store, o.send
		form := FormCmd{
			games:   getClient(store),
			store:   store,
			prompts: ptermPrompter{},
			notify: func(level relay.Level, content string) {
				send(relay.ShowMessage(level, content))
			},
		}
		if err := form.Run(o.ctx, nil); err != nil {
			pterm.Error.Printf("form failed: %v\n", err)
		}
	}()
}
