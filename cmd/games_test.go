package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SPACEX-2022/superapp-cli/internal/game"
)

func TestGamesListJSON(t *testing.T) {
	svc := &FakeGameService{
		ListGamesFunc: func(ctx context.Context) ([]game.Record, error) {
			return []game.Record{{
				AppID:         "app1",
				LocalizedName: "Foo",
				CnName:        "Foo",
				Genre:         game.GenreCasual,
				Tags:          []string{"休闲"},
			}}, nil
		},
	}

	out := captureStdout(t, func() {
		require.NoError(t, GamesCmd{svc: svc}.List(context.Background(), "json"))
	})

	assert.Contains(t, out, `"appId": "app1"`)
	assert.Contains(t, out, `"localizedName": "Foo"`)
	assert.Contains(t, out, `"genre": 105`)
}

func TestGamesListJSONEmpty(t *testing.T) {
	svc := &FakeGameService{}

	out := captureStdout(t, func() {
		require.NoError(t, GamesCmd{svc: svc}.List(context.Background(), "json"))
	})

	assert.Equal(t, "[]\n", out)
}

func TestGamesStatsPassesPaging(t *testing.T) {
	var gotAppID string
	var gotPage, gotSize int
	svc := &FakeGameService{
		ListGameStatsFunc: func(ctx context.Context, appID string, pageNum, pageSize int) (*game.StatsPage, error) {
			gotAppID, gotPage, gotSize = appID, pageNum, pageSize
			return &game.StatsPage{
				List: []game.Detail{{
					Record:      game.Record{AppID: "app1", CnName: "Foo"},
					ActiveUsers: 42,
					OpenCount:   1000,
				}},
				TotalCount:  1,
				PageCount:   1,
				CurrentPage: 2,
			}, nil
		},
	}

	out := captureStdout(t, func() {
		require.NoError(t, GamesCmd{svc: svc}.Stats(context.Background(), "app1", 2, 50, "json"))
	})

	assert.Equal(t, "app1", gotAppID)
	assert.Equal(t, 2, gotPage)
	assert.Equal(t, 50, gotSize)
	assert.Contains(t, out, `"activeUsers": 42`)
	assert.Contains(t, out, `"currentPage": 2`)
}

func TestHostAppsListJSON(t *testing.T) {
	svc := &FakeGameService{
		ListHostAppsFunc: func(ctx context.Context) ([]game.HostApp, error) {
			return []game.HostApp{{AppCode: "host1", AppName: "微信"}}, nil
		},
	}

	out := captureStdout(t, func() {
		require.NoError(t, HostAppsCmd{svc: svc}.List(context.Background(), "json"))
	})

	assert.Contains(t, out, `"appCode": "host1"`)
	assert.Contains(t, out, `"appName": "微信"`)
}
