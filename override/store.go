// Package override keeps the locally managed, time-bounded mute list.
package override

import (
	"svc-mute/domain"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Store is an in-memory override list keyed by subject.
// It starts empty; loading persisted entries is the caller's job (see Replace).
type Store struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]time.Time
}

func NewStore() *Store {
	return &Store{entries: make(map[uuid.UUID]time.Time)}
}

// Add inserts or replaces the override of subject.
func (s *Store) Add(subject domain.Subject, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[subject.ID] = expiresAt
}

// Remove deletes the override of subject, if any.
func (s *Store) Remove(subject domain.Subject) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, subject.ID)
}

// IsActive reports whether subject has an override expiring strictly after now.
func (s *Store) IsActive(subject domain.Subject, now time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	expiresAt, ok := s.entries[subject.ID]
	if !ok {
		return false
	}
	return domain.OverrideEntry{Subject: subject, ExpiresAt: expiresAt}.ActiveAt(now)
}

// Entries returns a snapshot of every entry, expired ones included.
func (s *Store) Entries() []domain.OverrideEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.MapToSlice(s.entries, func(id uuid.UUID, expiresAt time.Time) domain.OverrideEntry {
		return domain.OverrideEntry{Subject: domain.NewSubject(id), ExpiresAt: expiresAt}
	})
}

// Replace swaps the whole content for entries. Later duplicates win.
func (s *Store) Replace(entries []domain.OverrideEntry) {
	fresh := make(map[uuid.UUID]time.Time, len(entries))
	for _, e := range entries {
		fresh[e.Subject.ID] = e.ExpiresAt
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = fresh
}

// Purge physically drops entries no longer active at now and returns them.
func (s *Store) Purge(now time.Time) []domain.OverrideEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var purged []domain.OverrideEntry
	for id, expiresAt := range s.entries {
		entry := domain.OverrideEntry{Subject: domain.NewSubject(id), ExpiresAt: expiresAt}
		if entry.ActiveAt(now) {
			continue
		}
		delete(s.entries, id)
		purged = append(purged, entry)
	}
	return purged
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
