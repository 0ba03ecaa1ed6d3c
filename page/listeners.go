package page

import "sync"

// Handle identifies one registered listener. Removing it detaches exactly
// the callback that was registered, however many times Remove is called.
type Handle struct {
	id  uint64
	reg remover
}

type remover interface {
	remove(id uint64)
}

// Remove unregisters the listener. The zero Handle is a no-op.
func (h Handle) Remove() {
	if h.reg == nil {
		return
	}
	h.reg.remove(h.id)
}

type entry[F any] struct {
	id uint64
	fn F
}

// listeners is an ordered, concurrency-safe callback list.
type listeners[F any] struct {
	mu      sync.Mutex
	nextID  uint64
	entries []entry[F]
}

func (l *listeners[F]) add(fn F) Handle {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	l.entries = append(l.entries, entry[F]{id: l.nextID, fn: fn})
	return Handle{id: l.nextID, reg: l}
}

func (l *listeners[F]) remove(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, e := range l.entries {
		if e.id == id {
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			return
		}
	}
}

// snapshot returns the callbacks so they can run without holding the lock.
func (l *listeners[F]) snapshot() []F {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]F, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.fn
	}
	return out
}

func (l *listeners[F]) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
