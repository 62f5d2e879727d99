package dom

import "sync"

// Mutation is a child-list change rooted at Target. Attribute and text
// changes are not reported; the observer only reacts to structure.
type Mutation struct {
	Target *Element
}

// Hub fans child-list mutations out to subscribers. The bridge notifies it
// when a fresh snapshot lands; tests notify it directly.
type Hub struct {
	mu   sync.Mutex
	subs map[int]func(Mutation)
	next int
}

// Subscribe registers fn and returns a cancel func. Callbacks run on the
// notifying goroutine.
func (h *Hub) Subscribe(fn func(Mutation)) (cancel func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs == nil {
		h.subs = map[int]func(Mutation){}
	}
	id := h.next
	h.next++
	h.subs[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs, id)
	}
}

// Notify delivers a child-list mutation for target to every subscriber.
func (h *Hub) Notify(target *Element) {
	h.mu.Lock()
	subs := make([]func(Mutation), 0, len(h.subs))
	for _, fn := range h.subs {
		subs = append(subs, fn)
	}
	h.mu.Unlock()
	for _, fn := range subs {
		fn(Mutation{Target: target})
	}
}
