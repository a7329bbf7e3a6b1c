package gateway

import (
	"context"
	"sync"
	"time"

	"heart-of-colors/internal/theme"
)

// SessionStore holds one theme cursor per browser session.
type SessionStore interface {
	// Load returns the session's cursor, starting a new session at 0 when
	// the id is unknown or expired.
	Load(id string) theme.Cursor
	// Update replaces the session's cursor with fn(current) atomically and
	// returns the stored value.
	Update(id string, fn func(theme.Cursor) theme.Cursor) theme.Cursor
	Len() int
}

type sessionRow struct {
	cursor   theme.Cursor
	lastSeen time.Time
}

// MemoryStore is a process-local SessionStore that forgets sessions idle for
// longer than its idle limit.
type MemoryStore struct {
	idle time.Duration
	now  func() time.Time

	mu   sync.Mutex
	rows map[string]sessionRow
}

func NewMemoryStore(idle time.Duration) *MemoryStore {
	return &MemoryStore{idle: idle, now: time.Now, rows: map[string]sessionRow{}}
}

func (s *MemoryStore) Load(id string) theme.Cursor {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := s.touchLocked(id)
	return row.cursor
}

func (s *MemoryStore) Update(id string, fn func(theme.Cursor) theme.Cursor) theme.Cursor {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := s.touchLocked(id)
	row.cursor = fn(row.cursor)
	s.rows[id] = row
	return row.cursor
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

// Sweep drops expired sessions and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, row := range s.rows {
		if s.expired(row, now) {
			delete(s.rows, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *MemoryStore) Run(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := s.Sweep()
			if onSweep != nil {
				onSweep(removed)
			}
		}
	}
}

func (s *MemoryStore) touchLocked(id string) sessionRow {
	now := s.now()
	row, ok := s.rows[id]
	if !ok || s.expired(row, now) {
		row = sessionRow{}
	}
	row.lastSeen = now
	s.rows[id] = row
	return row
}

func (s *MemoryStore) expired(row sessionRow, now time.Time) bool {
	return s.idle > 0 && now.Sub(row.lastSeen) > s.idle
}
