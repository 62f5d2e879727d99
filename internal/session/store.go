// Package session owns the persisted login state: the management token,
// the target server address, and the pending form payload handed from the
// row-action relay to the form surface.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/zalando/go-keyring"

	"github.com/SPACEX-2022/superapp-cli/internal/game"
)

const (
	// DefaultServerURL is used until a login stores an explicit address.
	DefaultServerURL = "https://minigame.jravity.com/game_operate"

	// ServerURLEnv overrides the stored server address when set.
	ServerURLEnv = "SUPERAPP_SERVER_URL"

	keyringService = "superapp-cli"
	keyringUser    = "mgr-token"

	stateFileName = "state.json"
)

// state is the JSON document persisted next to the keyring entry.
type state struct {
	ServerURL   string   `json:"serverUrl,omitempty"`
	PendingForm game.Row `json:"pendingForm,omitempty"`
}

// Store persists the session and notifies subscribers when it expires.
// The token lives in the OS keychain; everything else in a state file
// under the user config dir.
type Store struct {
	mu        sync.Mutex
	statePath string
	onExpire  []func()
}

// NewStore opens the store, creating the config directory if needed.
func NewStore() (*Store, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	dir := filepath.Join(configDir, "superapp")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	return &Store{statePath: filepath.Join(dir, stateFileName)}, nil
}

// NewStoreAt opens a store rooted at an explicit directory. Tests use this
// to avoid touching the real config dir.
func NewStoreAt(dir string) *Store {
	return &Store{statePath: filepath.Join(dir, stateFileName)}
}

// Token returns the stored management token, or "" when logged out.
func (s *Store) Token() string {
	token, err := keyring.Get(keyringService, keyringUser)
	if err != nil {
		return ""
	}
	return token
}

// IsLoggedIn reports whether a token is stored.
func (s *Store) IsLoggedIn() bool {
	return s.Token() != ""
}

// SaveToken stores the management token in the OS keychain.
func (s *Store) SaveToken(token string) error {
	if err := keyring.Set(keyringService, keyringUser, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// ServerURL returns the effective server address: the env override if set,
// then the stored address, then the default.
func (s *Store) ServerURL() string {
	if u := strings.TrimSpace(os.Getenv(ServerURLEnv)); u != "" {
		return strings.TrimRight(u, "/")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.readState()
	if err == nil && st.ServerURL != "" {
		return strings.TrimRight(st.ServerURL, "/")
	}
	return DefaultServerURL
}

// SaveServerURL persists the server address.
func (s *Store) SaveServerURL(url string) error {
	return s.updateState(func(st *state) {
		st.ServerURL = strings.TrimRight(url, "/")
	})
}

// SetPendingForm stores the scraped row payload for the next form surface.
func (s *Store) SetPendingForm(row game.Row) error {
	return s.updateState(func(st *state) {
		st.PendingForm = row
	})
}

// TakePendingForm returns the pending payload and removes it, so a second
// form surface starts blank rather than replaying stale data.
func (s *Store) TakePendingForm() (game.Row, error) {
	var row game.Row
	err := s.updateState(func(st *state) {
		row = st.PendingForm
		st.PendingForm = nil
	})
	return row, err
}

// Clear removes the stored token. The server address survives a logout.
func (s *Store) Clear() error {
	err := keyring.Delete(keyringService, keyringUser)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// OnExpire registers a callback invoked when the session is invalidated by
// the server. Callbacks run on the goroutine that observed the expiry.
func (s *Store) OnExpire(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExpire = append(s.onExpire, fn)
}

// Expire clears the token and notifies every subscriber. Called by the API
// client when a response carries the token-expired code.
func (s *Store) Expire() {
	_ = s.Clear()
	s.mu.Lock()
	subs := make([]func(), len(s.onExpire))
	copy(subs, s.onExpire)
	s.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

func (s *Store) readState() (state, error) {
	var st state
	data, err := os.ReadFile(s.statePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return st, nil
		}
		return st, err
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return state{}, fmt.Errorf("parse %s: %w", s.statePath, err)
	}
	return st, nil
}

func (s *Store) updateState(mutate func(*state)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.readState()
	if err != nil {
		return err
	}
	mutate(&st)
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.statePath, data, 0o600)
}
