package service

import (
	"sync"
	"time"
)

const dedupeSweepThreshold = 10000

// EventDeduper remembers webhook event ids for a TTL so retried
// deliveries do not re-run side effects. In-memory: a restart forgets
// history, which at worst re-runs one side effect per in-flight event.
type EventDeduper struct {
	mu   sync.Mutex
	ttl  time.Duration
	seen map[string]time.Time
	now  func() time.Time
}

func NewEventDeduper(ttl time.Duration) *EventDeduper {
	return &EventDeduper{
		ttl:  ttl,
		seen: make(map[string]time.Time),
		now:  time.Now,
	}
}

// MarkProcessed records id and reports whether it was new. Callers mark
// before running the side effect, so repeats are at-most-once.
func (d *EventDeduper) MarkProcessed(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()

	if expiry, ok := d.seen[id]; ok && now.Before(expiry) {
		return false
	}

	if len(d.seen) >= dedupeSweepThreshold {
		for k, expiry := range d.seen {
			if !now.Before(expiry) {
				delete(d.seen, k)
			}
		}
	}

	d.seen[id] = now.Add(d.ttl)
	return true
}
