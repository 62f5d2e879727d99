package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/SPACEX-2022/superapp-cli/internal/game"
	"github.com/SPACEX-2022/superapp-cli/internal/session"
)

func newTestStore(t *testing.T) *session.Store {
	t.Helper()
	keyring.MockInit()
	return session.NewStoreAt(t.TempDir())
}

// captureStdout runs fn with os.Stdout redirected and returns what it wrote.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()
	require.NoError(t, w.Close())
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

// fakePrompter answers prompts from canned values, falling back to the
// initial value (Input) or the first option (Select).
type fakePrompter struct {
	inputs    map[string]string
	passwords map[string]string
	selects   map[string]string
	decline   bool
	err       error
}

func (f fakePrompter) Input(label, initial string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if v, ok := f.inputs[label]; ok {
		return v, nil
	}
	return initial, nil
}

func (f fakePrompter) Password(label string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.passwords[label], nil
}

func (f fakePrompter) Select(label string, options []string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if v, ok := f.selects[label]; ok {
		return v, nil
	}
	if len(options) == 0 {
		return "", errors.New("no options")
	}
	return options[0], nil
}

func (f fakePrompter) Confirm(label string) (bool, error) {
	return !f.decline, f.err
}

// FakeGameService is a GameService with overridable behavior per method.
type FakeGameService struct {
	CreateGameFunc    func(ctx context.Context, rec game.Record) error
	ListGamesFunc     func(ctx context.Context) ([]game.Record, error)
	ListHostAppsFunc  func(ctx context.Context) ([]game.HostApp, error)
	ListGameStatsFunc func(ctx context.Context, appID string, pageNum, pageSize int) (*game.StatsPage, error)
}

func (f *FakeGameService) CreateGame(ctx context.Context, rec game.Record) error {
	if f.CreateGameFunc != nil {
		return f.CreateGameFunc(ctx, rec)
	}
	return nil
}

func (f *FakeGameService) ListGames(ctx context.Context) ([]game.Record, error) {
	if f.ListGamesFunc != nil {
		return f.ListGamesFunc(ctx)
	}
	return nil, nil
}

func (f *FakeGameService) ListHostApps(ctx context.Context) ([]game.HostApp, error) {
	if f.ListHostAppsFunc != nil {
		return f.ListHostAppsFunc(ctx)
	}
	return nil, nil
}

func (f *FakeGameService) ListGameStats(ctx context.Context, appID string, pageNum, pageSize int) (*game.StatsPage, error) {
	if f.ListGameStatsFunc != nil {
		return f.ListGameStatsFunc(ctx, appID, pageNum, pageSize)
	}
	return &game.StatsPage{}, nil
}

// FakeAuthService is an AuthService with overridable behavior.
type FakeAuthService struct {
	LoginFunc func(ctx context.Context, serverURL, username, password string) (string, error)
}

func (f *FakeAuthService) Login(ctx context.Context, serverURL, username, password string) (string, error) {
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, serverURL, username, password)
	}
	return "tok-1", nil
}
