package limiter

import (
	"sync"
	"time"
)

// Limiter decides whether a client identified by key may make another
// request right now.
type Limiter interface {
	Consume(key string) bool
}

type bucket struct {
	count int
	reset time.Time
}

// Memory is a fixed-window counter table guarded by a mutex. State is
// process-local and lost on restart; the limiter is advisory anti-abuse,
// not a correctness guarantee.
type Memory struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	buckets map[string]*bucket
	now     func() time.Time
}

func NewMemory(max int, window time.Duration) *Memory {
	return &Memory{
		max:     max,
		window:  window,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

func (m *Memory) Consume(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()

	b, ok := m.buckets[key]
	if !ok || !now.Before(b.reset) {
		if len(m.buckets) >= pruneThreshold {
			m.prune(now)
		}
		b = &bucket{reset: now.Add(m.window)}
		m.buckets[key] = b
	}

	b.count++
	return b.count <= m.max
}

const pruneThreshold = 10000

// prune drops expired buckets. Called with the mutex held, only when the
// table has grown past the threshold.
func (m *Memory) prune(now time.Time) {
	for key, b := range m.buckets {
		if !now.Before(b.reset) {
			delete(m.buckets, key)
		}
	}
}
