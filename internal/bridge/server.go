// Package bridge pairs the CLI with a page companion script over a local
// WebSocket. The page streams table snapshots and click events in; inject
// and notify commands go out. A connected bridge satisfies observe.Page,
// giving the observer a live binding without knowing any browser API.
package bridge

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/SPACEX-2022/superapp-cli/internal/dom"
	"github.com/SPACEX-2022/superapp-cli/internal/relay"
)

// DefaultAddr is where the page companion expects the bridge.
const DefaultAddr = "127.0.0.1:8930"

// AddrEnv overrides the listen address when set.
const AddrEnv = "SUPERAPP_BRIDGE_ADDR"

var errNoPage = errors.New("no page connected")

// Server accepts one page connection at a time; a new connection replaces
// the previous one. It mirrors the page's table into a dom tree and routes
// clicks back to registered actions.
type Server struct {
	addr           string
	containerClass string
	upgrader       websocket.Upgrader

	mu      sync.Mutex
	conn    *websocket.Conn
	writeMu sync.Mutex
	root    *dom.Element
	actions map[string]func()

	hub dom.Hub
}

// NewServer builds a bridge for the given listen address and table
// container class.
func NewServer(addr, containerClass string) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	return &Server{
		addr:           addr,
		containerClass: containerClass,
		actions:        map[string]func(){},
	}
}

// Router returns the bridge's HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/bridge/ws", s.handleWS).Methods(http.MethodGet)
	r.HandleFunc("/bridge/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodGet)
	return r
}

// ListenAndServe runs the bridge until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.Router()}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.attach(conn)
	go s.readLoop(conn)
}

// attach makes conn the active page, closing any previous one. Last one
// wins.
func (s *Server) attach(conn *websocket.Conn) {
	s.mu.Lock()
	prev := s.conn
	s.conn = conn
	s.root = nil
	s.actions = map[string]func(){}
	s.mu.Unlock()
	if prev != nil {
		_ = prev.Close()
	}
}

func (s *Server) readLoop(conn *websocket.Conn) {
	defer conn.Close()
	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			s.mu.Lock()
			if s.conn == conn {
				s.conn = nil
				s.root = nil
			}
			s.mu.Unlock()
			return
		}
		switch f.Type {
		case frameSnapshot:
			s.applySnapshot(conn, f.DOM)
		case frameClick:
			s.mu.Lock()
			fn := s.actions[f.ActionID]
			s.mu.Unlock()
			if fn != nil {
				fn()
			}
		}
	}
}

// applySnapshot replaces the mirrored tree and reports a child-list
// mutation against the table body so the observer reacts.
func (s *Server) applySnapshot(conn *websocket.Conn, root *dom.Element) {
	if root == nil {
		return
	}
	s.mu.Lock()
	if s.conn != conn {
		s.mu.Unlock()
		return
	}
	s.root = root
	target := root.FindTag("tbody")
	if target == nil {
		target = root
	}
	s.mu.Unlock()
	s.hub.Notify(target)
}

// QueryTable implements observe.Page.
func (s *Server) QueryTable() (*dom.Table, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.root == nil {
		return nil, false
	}
	container := s.root
	if !container.HasClass(s.containerClass) {
		container = s.root.FindClass(s.containerClass)
	}
	if container == nil {
		return nil, false
	}
	return dom.NewTable(container), true
}

// Observe implements observe.Page.
func (s *Server) Observe(fn func(dom.Mutation)) (cancel func()) {
	return s.hub.Subscribe(fn)
}

// AddRowAction implements observe.Page: it registers the click callback
// and asks the page to render the button.
func (s *Server) AddRowAction(row, button *dom.Element, onClick func()) error {
	s.mu.Lock()
	conn := s.conn
	rowIndex := s.rowIndexLocked(row)
	if conn != nil {
		s.actions[button.Attr("data-action-id")] = onClick
	}
	s.mu.Unlock()
	if conn == nil {
		return errNoPage
	}
	return s.writeFrame(conn, frame{
		Type:     frameInject,
		ActionID: button.Attr("data-action-id"),
		RowIndex: rowIndex,
		Label:    button.Text,
		Classes:  button.Classes,
	})
}

// Notify implements relay.Surface: the page shows the message as an
// on-page toast.
func (s *Server) Notify(n relay.Notification) {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return
	}
	_ = s.writeFrame(conn, frame{
		Type:    frameNotify,
		Level:   string(n.Level),
		Content: n.Content,
	})
}

func (s *Server) rowIndexLocked(row *dom.Element) int {
	if s.root == nil {
		return -1
	}
	tbody := s.root.FindTag("tbody")
	if tbody == nil {
		return -1
	}
	for i, got := range tbody.ChildrenByTag("tr") {
		if got == row {
			return i
		}
	}
	return -1
}

func (s *Server) writeFrame(conn *websocket.Conn, f frame) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return conn.WriteJSON(f)
}
