package ratelimit

import (
	"sync"
	"time"
)

// Verdict is the admission decision for one request.
type Verdict struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter decides whether a client may issue another analysis request.
// The in-memory implementation below is per-process; a multi-instance
// deployment needs a shared-store implementation of this same interface.
type Limiter interface {
	Admit(key string, now time.Time) Verdict
	Count(key string, now time.Time) int
}

// Memory tracks acceptance timestamps per client inside a sliding window.
type Memory struct {
	mu        sync.Mutex
	ceiling   int
	window    time.Duration
	hits      map[string][]time.Time
	lastSweep time.Time
}

const sweepEvery = time.Hour

func NewMemory(ceiling int, window time.Duration) *Memory {
	if ceiling <= 0 {
		ceiling = 15
	}
	if window <= 0 {
		window = 24 * time.Hour
	}
	return &Memory{
		ceiling: ceiling,
		window:  window,
		hits:    make(map[string][]time.Time),
	}
}

// Admit prunes the client's window, then either rejects (with the time until
// the oldest hit leaves the window) or records the request.
func (m *Memory) Admit(key string, now time.Time) Verdict {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.maybeSweep(now)
	kept := m.pruneLocked(key, now)

	if len(kept) >= m.ceiling {
		return Verdict{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: kept[0].Add(m.window).Sub(now),
		}
	}

	m.hits[key] = append(kept, now)
	return Verdict{Allowed: true, Remaining: m.ceiling - len(kept) - 1}
}

// Count returns the number of requests inside the current window without
// consuming a slot.
func (m *Memory) Count(key string, now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pruneLocked(key, now))
}

// Ceiling returns the configured daily request ceiling.
func (m *Memory) Ceiling() int { return m.ceiling }

func (m *Memory) pruneLocked(key string, now time.Time) []time.Time {
	cutoff := now.Add(-m.window)
	all := m.hits[key]
	i := 0
	for i < len(all) && !all[i].After(cutoff) {
		i++
	}
	kept := all[i:]
	if len(kept) == 0 {
		delete(m.hits, key)
		return nil
	}
	if i > 0 {
		m.hits[key] = kept
	}
	return kept
}

// maybeSweep drops fully stale clients. Piggybacks on Admit calls instead of
// a background ticker so memory stays bounded without goroutine lifecycle.
func (m *Memory) maybeSweep(now time.Time) {
	if now.Sub(m.lastSweep) < sweepEvery {
		return
	}
	m.lastSweep = now
	cutoff := now.Add(-m.window)
	for key, all := range m.hits {
		if len(all) == 0 || !all[len(all)-1].After(cutoff) {
			delete(m.hits, key)
		}
	}
}
