// Package observe watches the game-listing table for structural changes
// and injects one row action per row. The logic is host-agnostic: a Page
// supplies the table and mutation feed, and the bridge (or a test fake)
// binds it to a real page.
package observe

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/SPACEX-2022/superapp-cli/internal/dom"
	"github.com/SPACEX-2022/superapp-cli/internal/relay"
)

// Page is the surface the observer works against.
type Page interface {
	// QueryTable returns the listing table, or false while the container
	// has not rendered yet.
	QueryTable() (*dom.Table, bool)

	// Observe subscribes to child-list mutations. The subscription is
	// scoped to the table container, not the whole document.
	Observe(fn func(dom.Mutation)) (cancel func())

	// AddRowAction mirrors an injected button onto the real page and
	// registers its click callback.
	AddRowAction(row, button *dom.Element, onClick func()) error
}

// Sender queues relay messages. Satisfied by *relay.Coordinator.
type Sender interface {
	Send(relay.Message)
}

// State tracks the observer lifecycle. Observing is terminal until the
// context is cancelled; there is no teardown beyond that.
type State int32

const (
	StateUninitialized State = iota
	StateWaitingForContainer
	StateObserving
)

// Config carries the page-specific selectors and timing.
type Config struct {
	ContainerClass string
	MarkerClass    string
	ButtonLabel    string
	ButtonClasses  []string
	PollInterval   time.Duration
	DebounceWindow time.Duration
}

func (c *Config) applyDefaults() {
	if c.ContainerClass == "" {
		c.ContainerClass = "app-tcmpp-table__box"
	}
	if c.MarkerClass == "" {
		c.MarkerClass = "game-superapp-btn"
	}
	if c.ButtonLabel == "" {
		c.ButtonLabel = "添加到游戏库"
	}
	if len(c.ButtonClasses) == 0 {
		c.ButtonClasses = []string{"tea", "app-tcmpp-btn", "app-tcmpp-btn--link"}
	}
	if c.PollInterval <= 0 {
		c.PollInterval = 500 * time.Millisecond
	}
	if c.DebounceWindow <= 0 {
		c.DebounceWindow = 300 * time.Millisecond
	}
}

// Observer injects the row action into the listing table and forwards
// clicked rows onto the relay.
type Observer struct {
	page Page
	send Sender
	cfg  Config

	state atomic.Int32
	mu    sync.Mutex // serializes injection passes
	deb   *debouncer
}

// New builds an observer. Zero Config fields get the reference defaults.
func New(page Page, sender Sender, cfg Config) *Observer {
	cfg.applyDefaults()
	o := &Observer{page: page, send: sender, cfg: cfg}
	o.deb = newDebouncer(cfg.DebounceWindow, o.TryInject)
	return o
}

// State returns the current lifecycle state.
func (o *Observer) State() State {
	return State(o.state.Load())
}

// Run waits for the table container with fixed-delay polling, then observes
// it until ctx is cancelled. Mutations touching the table body or container
// schedule a debounced injection pass so bursts coalesce.
func (o *Observer) Run(ctx context.Context) error {
	o.state.Store(int32(StateWaitingForContainer))

	if err := o.waitForContainer(ctx); err != nil {
		return err
	}
	o.state.Store(int32(StateObserving))

	cancel := o.page.Observe(func(m dom.Mutation) {
		if o.shouldInject(m) {
			o.deb.Trigger()
		}
	})
	defer cancel()
	defer o.deb.Stop()

	o.TryInject()

	<-ctx.Done()
	return ctx.Err()
}

// waitForContainer polls until the table container exists. The delay bounds
// the poll rate; there is no attempt cap.
func (o *Observer) waitForContainer(ctx context.Context) error {
	ticker := time.NewTicker(o.cfg.PollInterval)
	defer ticker.Stop()
	for {
		if _, ok := o.page.QueryTable(); ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// shouldInject filters mutations to those affecting the table body or the
// container itself.
func (o *Observer) shouldInject(m dom.Mutation) bool {
	if m.Target == nil {
		return false
	}
	return m.Target.Tag == "tbody" || m.Target.HasClass(o.cfg.ContainerClass)
}

// TryInject scans the current rows and injects the action button into every
// row that does not carry the marker yet. Idempotent: re-running on an
// unchanged table adds nothing. Rows without an action cell are skipped
// silently.
func (o *Observer) TryInject() {
	o.mu.Lock()
	defer o.mu.Unlock()

	table, ok := o.page.QueryTable()
	if !ok {
		return
	}

	for _, row := range table.Rows() {
		if row.FindClass(o.cfg.MarkerClass) != nil {
			continue
		}
		cells := table.Cells(row)
		if len(cells) == 0 {
			continue
		}
		actionHost := cells[len(cells)-1].FindTag("div")
		if actionHost == nil {
			continue
		}

		extracted := ExtractRow(table, row)

		button := dom.New("button", append(append([]string{}, o.cfg.ButtonClasses...), o.cfg.MarkerClass)...)
		button.Text = o.cfg.ButtonLabel
		button.SetAttr("data-action-id", uuid.NewString())
		onClick := func() {
			o.send.Send(relay.OpenGameForm(extracted))
		}
		if err := o.page.AddRowAction(row, button, onClick); err != nil {
			continue
		}
		actionHost.Prepend(button)
	}
}
