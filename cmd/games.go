package cmd

import (
	"context"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/SPACEX-2022/superapp-cli/internal/game"
	"github.com/SPACEX-2022/superapp-cli/pkg/util"
)

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "Manage games in the superapp library",
}

var gamesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered games",
	Args:  cobra.NoArgs,
	RunE:  runGamesList,
}

var gamesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a game interactively",
	Long: `Create a game through the interactive form.

Examples:
  # Create a game from scratch
  superapp games create

  # Pre-fill the form from the console listing page instead
  superapp watch`,
	Args: cobra.NoArgs,
	RunE: runGamesCreate,
}

var gamesStatsCmd = &cobra.Command{
	Use:   "stats [app-id]",
	Short: "List games with operating statistics",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGamesStats,
}

func init() {
	gamesStatsCmd.Flags().Int("page", 1, "Page number")
	gamesStatsCmd.Flags().Int("page-size", 20, "Page size")
	gamesListCmd.Flags().StringP("output", "o", "", "Output format (json)")
	gamesStatsCmd.Flags().StringP("output", "o", "", "Output format (json)")

	gamesCmd.AddCommand(gamesListCmd)
	gamesCmd.AddCommand(gamesCreateCmd)
	gamesCmd.AddCommand(gamesStatsCmd)
	rootCmd.AddCommand(gamesCmd)
}

func runGamesList(cmd *cobra.Command, args []string) error {
	store, err := getStore()
	if err != nil {
		return err
	}
	output, _ := cmd.Flags().GetString("output")
	games := GamesCmd{svc: getClient(store)}
	return games.List(cmd.Context(), output)
}

func runGamesCreate(cmd *cobra.Command, args []string) error {
	store, err := getStore()
	if err != nil {
		return err
	}
	form := FormCmd{games: getClient(store), store: store, prompts: ptermPrompter{}}
	// An explicit empty row: create never replays a pending watch payload.
	return form.Run(cmd.Context(), game.Row{})
}

func runGamesStats(cmd *cobra.Command, args []string) error {
	store, err := getStore()
	if err != nil {
		return err
	}
	appID := ""
	if len(args) == 1 {
		appID = args[0]
	}
	page, _ := cmd.Flags().GetInt("page")
	pageSize, _ := cmd.Flags().GetInt("page-size")
	output, _ := cmd.Flags().GetString("output")

	games := GamesCmd{svc: getClient(store)}
	return games.Stats(cmd.Context(), appID, page, pageSize, output)
}

// GamesCmd handles game listing operations independent of cobra.
type GamesCmd struct {
	svc GameService
}

// List prints every registered game.
func (g GamesCmd) List(ctx context.Context, output string) error {
	games, err := g.svc.ListGames(ctx)
	if err != nil {
		return err
	}

	if output == "json" {
		return util.PrintPrettyJSONSlice(games)
	}

	rows := pterm.TableData{{"App ID", "Name", "CN Name", "Genre", "Weight", "Tags"}}
	for _, rec := range games {
		rows = append(rows, []string{
			rec.AppID,
			util.OrDash(rec.LocalizedName),
			util.OrDash(rec.CnName),
			rec.Genre.Label(),
			strconv.Itoa(rec.DisplayWeight),
			util.JoinOrDash(rec.Tags...),
		})
	}
	PrintTableNoPad(rows, true)
	pterm.Printf("\n%d game(s)\n", len(games))
	return nil
}

// Stats prints one page of the game-with-stats listing.
func (g GamesCmd) Stats(ctx context.Context, appID string, page, pageSize int, output string) error {
	stats, err := g.svc.ListGameStats(ctx, appID, page, pageSize)
	if err != nil {
		return err
	}

	if output == "json" {
		return util.PrintPrettyJSON(stats)
	}

	rows := pterm.TableData{{"App ID", "Name", "Active Users", "Opens"}}
	for _, detail := range stats.List {
		rows = append(rows, []string{
			detail.AppID,
			util.OrDash(lo.CoalesceOrEmpty(detail.LocalizedName, detail.CnName)),
			strconv.FormatInt(detail.ActiveUsers, 10),
			strconv.FormatInt(detail.OpenCount, 10),
		})
	}
	PrintTableNoPad(rows, true)
	pterm.Printf("\nPage %d/%d, %d game(s) total\n", stats.CurrentPage, stats.PageCount, stats.TotalCount)
	return nil
}
