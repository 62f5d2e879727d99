package cmd

import (
	"context"

	"github.com/pterm/pterm"

	"github.com/SPACEX-2022/superapp-cli/internal/game"
)

// AuthService defines the subset of the API client that login uses.
type AuthService interface {
	Login(ctx context.Context, serverURL, username, password string) (string, error)
}

// GameService defines the subset of the API client that game commands use.
type GameService interface {
	CreateGame(ctx context.Context, rec game.Record) error
	ListGames(ctx context.Context) ([]game.Record, error)
	ListHostApps(ctx context.Context) ([]game.HostApp, error)
	ListGameStats(ctx context.Context, appID string, pageNum, pageSize int) (*game.StatsPage, error)
}

// UploadService defines the subset of the API client that upload uses.
type UploadService interface {
	UploadFile(ctx context.Context, filename string, data []byte) (string, error)
}

// PrintTableNoPad renders rows without outer padding.
func PrintTableNoPad(data pterm.TableData, hasHeader bool) {
	table := pterm.DefaultTable.WithData(data)
	if hasHeader {
		table = table.WithHasHeader()
	}
	_ = table.Render()
}
