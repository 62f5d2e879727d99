// Package api is the client for the superapp management service. Every
// response arrives in an Envelope; a distinguished code invalidates the
// session before the caller sees the error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/SPACEX-2022/superapp-cli/internal/game"
	"github.com/SPACEX-2022/superapp-cli/internal/session"
	"github.com/SPACEX-2022/superapp-cli/pkg/util"
)

// TokenHeader carries the management token on authenticated calls.
const TokenHeader = "x-mgr-token"

const (
	loginPath         = "/mgr_api/login"
	createGamePath    = "/mgr_api/game_mgr/create_game"
	listGamesPath     = "/mgr_api/game/list"
	listHostAppsPath  = "/mgr_api/host_app_mgr/list_all_app"
	listGameStatsPath = "/mgr_api/game_mgr/list_game_with_stats"
	uploadFilePath    = "/mgr_api/upload_public_access_file"
)

// Client talks to the management service. The session store is an explicit
// dependency: it supplies the server address and token, and absorbs the
// expiry side effect.
type Client struct {
	store *session.Store
	httpc *http.Client
}

// New builds a client around the given session store.
func New(store *session.Store) *Client {
	return &Client{
		store: store,
		httpc: &http.Client{Timeout: 30 * time.Second},
	}
}

type loginResult struct {
	Token string `json:"token"`
}

// Login authenticates against serverURL and returns the session token. The
// password goes over the wire as a sha256 hex digest, never in clear text.
// No token is required or attached. The caller persists the token.
func (c *Client) Login(ctx context.Context, serverURL, username, password string) (string, error) {
	body := map[string]any{
		"param": map[string]string{
			"username": username,
			"password": util.SHA256Hex(password),
		},
	}
	env, err := c.roundTrip(ctx, http.MethodPost, serverURL+loginPath, body, false)
	if err != nil {
		return "", err
	}
	var res loginResult
	if err := decodeResult(env, &res); err != nil {
		return "", err
	}
	return res.Token, nil
}

// CreateGame submits a new game record.
func (c *Client) CreateGame(ctx context.Context, rec game.Record) error {
	env, err := c.post(ctx, createGamePath, map[string]any{"param": rec})
	if err != nil {
		return err
	}
	return decodeResult(env, nil)
}

// ListGames fetches every game registered on the server.
func (c *Client) ListGames(ctx context.Context) ([]game.Record, error) {
	env, err := c.get(ctx, listGamesPath)
	if err != nil {
		return nil, err
	}
	var games []game.Record
	if err := decodeResult(env, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// ListHostApps fetches the host applications games can be attached to.
func (c *Client) ListHostApps(ctx context.Context) ([]game.HostApp, error) {
	env, err := c.post(ctx, listHostAppsPath, map[string]any{})
	if err != nil {
		return nil, err
	}
	var apps []game.HostApp
	if err := decodeResult(env, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// ListGameStats fetches one page of the game-with-stats listing, filtered
// by appID when non-empty.
func (c *Client) ListGameStats(ctx context.Context, appID string, pageNum, pageSize int) (*game.StatsPage, error) {
	body := map[string]any{
		"param": map[string]any{
			"appId":    appID,
			"pageNum":  pageNum,
			"pageSize": pageSize,
		},
	}
	env, err := c.post(ctx, listGameStatsPath, body)
	if err != nil {
		return nil, err
	}
	var page game.StatsPage
	if err := decodeResult(env, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

type uploadResult struct {
	AccessURL string `json:"accessUrl"`
}

// UploadFile uploads a publicly accessible file and returns its access URL.
func (c *Client) UploadFile(ctx context.Context, filename string, data []byte) (string, error) {
	token := c.store.Token()
	if token == "" {
		return "", ErrNotAuthenticated
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("build multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("build multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.store.ServerURL()+uploadFilePath, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set(TokenHeader, token)

	env, err := c.send(req)
	if err != nil {
		return "", err
	}
	var res uploadResult
	if err := decodeResult(env, &res); err != nil {
		return "", err
	}
	return res.AccessURL, nil
}

func (c *Client) get(ctx context.Context, endpoint string) (*Envelope, error) {
	return c.roundTrip(ctx, http.MethodGet, c.store.ServerURL()+endpoint, nil, true)
}

func (c *Client) post(ctx context.Context, endpoint string, body any) (*Envelope, error) {
	return c.roundTrip(ctx, http.MethodPost, c.store.ServerURL()+endpoint, body, true)
}

func (c *Client) roundTrip(ctx context.Context, method, url string, body any, requireAuth bool) (*Envelope, error) {
	var token string
	if requireAuth {
		token = c.store.Token()
		if token == "" {
			return nil, ErrNotAuthenticated
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}
	return c.send(req)
}

// send executes the request and interprets the envelope. A token-expired
// code clears the session and notifies expiry subscribers before returning.
func (c *Client) send(req *http.Request) (*Envelope, error) {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{Status: resp.Status}
	}

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("invalid response: %w", err)
	}
	if env.Code == TokenExpiredCode {
		c.store.Expire()
		return &env, ErrSessionExpired
	}
	return &env, nil
}

// decodeResult rejects non-success envelopes and unmarshals the result into
// out when out is non-nil.
func decodeResult(env *Envelope, out any) error {
	if !env.OK() {
		return &APIError{Code: env.Code, Message: env.Message}
	}
	if out == nil || len(env.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	return nil
}
