package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/SPACEX-2022/superapp-cli/internal/game"
	"github.com/SPACEX-2022/superapp-cli/internal/session"
	"github.com/SPACEX-2022/superapp-cli/pkg/util"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Store) {
	t.Helper()
	keyring.MockInit()
	store := session.NewStoreAt(t.TempDir())
	if handler != nil {
		server := httptest.NewServer(handler)
		t.Cleanup(server.Close)
		t.Setenv(session.ServerURLEnv, server.URL)
	}
	return New(store), store
}

func envelopeJSON(code, message string, result any) string {
	raw, _ := json.Marshal(result)
	env := map[string]any{
		"code":      code,
		"message":   message,
		"requestId": "req-1",
		"result":    json.RawMessage(raw),
		"version":   "1.0",
	}
	out, _ := json.Marshal(env)
	return string(out)
}

func TestLoginTransmitsHashedPassword(t *testing.T) {
	var gotBody struct {
		Param struct {
			Username string `json:"username"`
			Password string `json:"password"`
		} `json:"param"`
	}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mgr_api/login", r.URL.Path)
		assert.Empty(t, r.Header.Get(TokenHeader))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, envelopeJSON(SuccessCode, "", map[string]string{"token": "tok-1"}))
	})
	client, _ := newTestClient(t, nil)

	server := httptest.NewServer(handler)
	defer server.Close()

	token, err := client.Login(context.Background(), server.URL, "bob", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	assert.Equal(t, "bob", gotBody.Param.Username)
	assert.Equal(t, util.SHA256Hex("pw"), gotBody.Param.Password)
	assert.NotEqual(t, "pw", gotBody.Param.Password)
}

func TestAuthenticatedCallsFailLocallyWithoutToken(t *testing.T) {
	requests := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))

	ctx := context.Background()
	_, err := client.ListGames(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	err = client.CreateGame(ctx, game.Record{AppID: "app1"})
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = client.ListHostApps(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = client.ListGameStats(ctx, "app1", 1, 20)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = client.UploadFile(ctx, "icon.png", []byte{1})
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	assert.Zero(t, requests, "no network call may be attempted without a token")
}

func TestTokenExpiryClearsSession(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, envelopeJSON(TokenExpiredCode, "登录已过期", nil))
	}))
	require.NoError(t, store.SaveToken("tok-stale"))

	expired := false
	store.OnExpire(func() { expired = true })

	_, err := client.ListGames(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.False(t, store.IsLoggedIn())
	assert.True(t, expired)
}

func TestTransportErrorOnNon2xx(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	require.NoError(t, store.SaveToken("tok-1"))

	_, err := client.ListGames(context.Background())
	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Contains(t, terr.Status, "502")
}

func TestApplicationErrorCarriesEnvelopeMessage(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, envelopeJSON("GAME_4001", "appId already exists", nil))
	}))
	require.NoError(t, store.SaveToken("tok-1"))

	err := client.CreateGame(context.Background(), game.Record{AppID: "app1"})
	var aerr *APIError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "GAME_4001", aerr.Code)
	assert.Equal(t, "appId already exists", err.Error())

	// The session survives an application-level failure.
	assert.True(t, store.IsLoggedIn())
}

func TestListGames(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/mgr_api/game/list", r.URL.Path)
		assert.Equal(t, "tok-1", r.Header.Get(TokenHeader))
		fmt.Fprint(w, envelopeJSON(SuccessCode, "", []game.Record{
			{AppID: "app1", LocalizedName: "Foo", Genre: game.GenreCasual},
		}))
	}))
	require.NoError(t, store.SaveToken("tok-1"))

	games, err := client.ListGames(context.Background())
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "app1", games[0].AppID)
	assert.Equal(t, game.GenreCasual, games[0].Genre)
}

func TestListGameStats(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mgr_api/game_mgr/list_game_with_stats", r.URL.Path)
		var body struct {
			Param struct {
				AppID    string `json:"appId"`
				PageNum  int    `json:"pageNum"`
				PageSize int    `json:"pageSize"`
			} `json:"param"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "app1", body.Param.AppID)
		assert.Equal(t, 2, body.Param.PageNum)
		fmt.Fprint(w, envelopeJSON(SuccessCode, "", game.StatsPage{
			List:        []game.Detail{{Record: game.Record{AppID: "app1"}, OpenCount: 7}},
			TotalCount:  21,
			PageCount:   2,
			CurrentPage: 2,
		}))
	}))
	require.NoError(t, store.SaveToken("tok-1"))

	page, err := client.ListGameStats(context.Background(), "app1", 2, 20)
	require.NoError(t, err)
	assert.Equal(t, 21, page.TotalCount)
	require.Len(t, page.List, 1)
	assert.EqualValues(t, 7, page.List[0].OpenCount)
}

func TestUploadFile(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mgr_api/upload_public_access_file", r.URL.Path)
		assert.Equal(t, "tok-1", r.Header.Get(TokenHeader))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "icon.png", header.Filename)
		fmt.Fprint(w, envelopeJSON(SuccessCode, "", map[string]string{
			"accessUrl": "https://cdn.example.com/icon.png",
		}))
	}))
	require.NoError(t, store.SaveToken("tok-1"))

	url, err := client.UploadFile(context.Background(), "icon.png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/icon.png", url)
}

func TestSessionExpiredIsNotRetried(t *testing.T) {
	requests := 0
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, envelopeJSON(TokenExpiredCode, "登录已过期", nil))
	}))
	require.NoError(t, store.SaveToken("tok-1"))

	_, err := client.ListHostApps(context.Background())
	require.True(t, errors.Is(err, ErrSessionExpired))
	assert.Equal(t, 1, requests)
}
