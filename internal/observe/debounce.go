package observe

import (
	"sync"
	"time"
)

// debouncer coalesces a burst of triggers into one call to fn after a
// quiescence window. Each trigger restarts the window.
type debouncer struct {
	window time.Duration
	fn     func()

	mu    sync.Mutex
	timer *time.Timer
}

func newDebouncer(window time.Duration, fn func()) *debouncer {
	return &debouncer{window: window, fn: fn}
}

func (d *debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fn)
}

func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
