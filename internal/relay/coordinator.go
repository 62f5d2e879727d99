package relay

import (
	"context"
	"sync"

	"github.com/SPACEX-2022/superapp-cli/internal/game"
)

// PendingStore persists the payload handed to the next form surface.
type PendingStore interface {
	SetPendingForm(game.Row) error
}

// FormOpener opens a new form surface. Implementations decide what a
// "surface" is: a browser popup analogue, an interactive terminal form,
// or a fake in tests.
type FormOpener interface {
	OpenForm()
}

// Surface receives notifications. The most recently attached surface is
// the active one, mirroring the active browser tab.
type Surface interface {
	Notify(Notification)
}

// Coordinator is the background half of the relay: it persists open-form
// payloads and opens a surface, and rebroadcasts notifications to the
// active surface. Notifications with no active surface are dropped, not
// queued.
//
// There is deliberately no dedup: two rapid clicks send two open-form
// messages and open two surfaces.
type Coordinator struct {
	store  PendingStore
	opener FormOpener

	mu       sync.Mutex
	surfaces []Surface

	ch chan Message
}

// NewCoordinator builds a coordinator. Run must be called before messages
// are dispatched.
func NewCoordinator(store PendingStore, opener FormOpener) *Coordinator {
	return &Coordinator{
		store:  store,
		opener: opener,
		ch:     make(chan Message, 16),
	}
}

// Send queues a message without blocking. When the queue is full the
// message is dropped; there is no back-pressure and no acknowledgment.
func (c *Coordinator) Send(msg Message) {
	select {
	case c.ch <- msg:
	default:
	}
}

// AttachSurface registers a surface and makes it active. The returned
// detach restores the previously active surface.
func (c *Coordinator) AttachSurface(s Surface) (detach func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.surfaces = append(c.surfaces, s)
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, got := range c.surfaces {
			if got == s {
				c.surfaces = append(c.surfaces[:i], c.surfaces[i+1:]...)
				break
			}
		}
	}
}

// Run dispatches queued messages until ctx is cancelled.
func (c *Coordinator) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-c.ch:
			c.dispatch(msg)
		}
	}
}

func (c *Coordinator) dispatch(msg Message) {
	switch msg.Kind {
	case KindOpenGameForm:
		if err := c.store.SetPendingForm(msg.Row); err != nil {
			return
		}
		c.opener.OpenForm()
	case KindShowMessage:
		if s := c.activeSurface(); s != nil {
			s.Notify(msg.Note)
		}
	}
}

func (c *Coordinator) activeSurface() Surface {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.surfaces) == 0 {
		return nil
	}
	return c.surfaces[len(c.surfaces)-1]
}
