package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/SPACEX-2022/superapp-cli/internal/game"
	"github.com/SPACEX-2022/superapp-cli/internal/relay"
	"github.com/SPACEX-2022/superapp-cli/internal/session"
)

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Open the game creation form",
	Long: `Open the interactive game creation form.

When a row was handed over from the console listing page (via "superapp
watch"), its scraped fields pre-fill the form.`,
	Args: cobra.NoArgs,
	RunE: runForm,
}

func init() {
	rootCmd.AddCommand(formCmd)
}

func runForm(cmd *cobra.Command, args []string) error {
	store, err := getStore()
	if err != nil {
		return err
	}
	form := FormCmd{games: getClient(store), store: store, prompts: ptermPrompter{}}
	return form.Run(cmd.Context(), nil)
}

// Notifier delivers one user-visible notification.
type Notifier func(level relay.Level, content string)

// FormCmd collects a game record interactively and submits it. It is the
// popup-form analogue: the same surface serves the standalone "form" and
// "games create" commands and the watch flow.
type FormCmd struct {
	games   GameService
	store   *session.Store
	prompts Prompter
	notify  Notifier // nil means print to the terminal
}

// Run collects and submits one record. A nil initial row consumes the
// pending payload left by the relay coordinator; an explicit row (possibly
// empty) skips it.
func (f FormCmd) Run(ctx context.Context, initial game.Row) error {
	if !f.store.IsLoggedIn() {
		return fmt.Errorf("not logged in; run 'superapp login' first")
	}

	if initial == nil {
		pending, err := f.store.TakePendingForm()
		if err != nil {
			return err
		}
		initial = pending
	}

	rec, _ := game.FromRow(initial)
	if err := f.fill(ctx, &rec); err != nil {
		return err
	}

	if missing := game.MissingFields(rec); len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}

	ok, err := f.prompts.Confirm("Submit " + rec.AppID)
	if err != nil {
		return err
	}
	if !ok {
		pterm.Info.Println("Cancelled")
		return nil
	}

	if err := f.games.CreateGame(ctx, rec); err != nil {
		f.send(relay.LevelError, fmt.Sprintf("添加失败: %v", err))
		return err
	}
	f.send(relay.LevelSuccess, "游戏添加成功")
	return nil
}

func (f FormCmd) fill(ctx context.Context, rec *game.Record) error {
	var err error
	if rec.AppID, err = f.prompts.Input("App ID", rec.AppID); err != nil {
		return err
	}
	if rec.AppSecret, err = f.prompts.Input("App secret", rec.AppSecret); err != nil {
		return err
	}
	if rec.ClientVersion, err = f.prompts.Input("Client version", rec.ClientVersion); err != nil {
		return err
	}
	if rec.CnName, err = f.prompts.Input("CN name", rec.CnName); err != nil {
		return err
	}
	if rec.ContentProvider, err = f.prompts.Input("Content provider", rec.ContentProvider); err != nil {
		return err
	}

	weight, err := f.prompts.Input("Display weight", "0")
	if err != nil {
		return err
	}
	if rec.DisplayWeight, err = game.ParseWeight(weight); err != nil {
		return fmt.Errorf("invalid display weight %q", weight)
	}

	genreLabel, err := f.prompts.Select("Genre", lo.Map(game.Genres(), func(g game.Genre, _ int) string {
		return g.Label()
	}))
	if err != nil {
		return err
	}
	if rec.Genre, err = game.ParseGenreLabel(genreLabel); err != nil {
		return err
	}

	if err := f.fillHostApp(ctx, rec); err != nil {
		return err
	}

	if rec.IconURL, err = f.prompts.Input("Icon URL", rec.IconURL); err != nil {
		return err
	}
	if rec.LocalizedName, err = f.prompts.Input("Localized name", rec.LocalizedName); err != nil {
		return err
	}

	tags, err := f.prompts.Input("Tags (comma separated)", strings.Join(rec.Tags, ","))
	if err != nil {
		return err
	}
	rec.Tags = lo.Filter(
		lo.Map(strings.Split(tags, ","), func(t string, _ int) string { return strings.TrimSpace(t) }),
		func(t string, _ int) bool { return t != "" },
	)
	return nil
}

// fillHostApp offers a pick list when the server can enumerate host apps,
// falling back to free-form input.
func (f FormCmd) fillHostApp(ctx context.Context, rec *game.Record) error {
	apps, err := f.games.ListHostApps(ctx)
	if err != nil || len(apps) == 0 {
		code, err := f.prompts.Input("Host app code", rec.HostAppCode)
		if err != nil {
			return err
		}
		rec.HostAppCode = code
		return nil
	}

	options := lo.Map(apps, func(app game.HostApp, _ int) string {
		if app.AppName == "" {
			return app.AppCode
		}
		return fmt.Sprintf("%s (%s)", app.AppCode, app.AppName)
	})
	picked, err := f.prompts.Select("Host app", options)
	if err != nil {
		return err
	}
	rec.HostAppCode = strings.SplitN(picked, " ", 2)[0]
	return nil
}

func (f FormCmd) send(level relay.Level, content string) {
	if f.notify != nil {
		f.notify(level, content)
		return
	}
	switch level {
	case relay.LevelSuccess:
		pterm.Success.Println(content)
	case relay.LevelError:
		pterm.Error.Println(content)
	default:
		pterm.Info.Println(content)
	}
}
