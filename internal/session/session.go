// Package session keeps per-session conversational memory: the last
// resolved target, the last listing shown, pending intents awaiting a
// follow-up turn, and notes injected into the model context.
package session

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// PendingIntent marks a question the agent asked and is waiting on.
type PendingIntent string

const (
	PendingNone      PendingIntent = ""
	PendingSetTarget PendingIntent = "set_target"
	PendingSummary   PendingIntent = "summary"
)

// Memory is the conversational state of one session. Access it only
// while holding its mutex; Store.Get returns the same pointer across
// turns of the same session.
type Memory struct {
	mu sync.Mutex

	LastTarget      string
	LastAction      string
	LastCommand     string
	LastListing     []string
	LastSuggestions []string
	PendingIntent   PendingIntent
	Notes           []string

	lastUsed time.Time
}

// Lock serializes turns of the same session.
func (m *Memory) Lock() { m.mu.Lock() }

// Unlock releases the turn lock.
func (m *Memory) Unlock() { m.mu.Unlock() }

// SetTarget records a resolved target and resets the note context, the
// suggestion list, and any pending question.
func (m *Memory) SetTarget(target string) {
	m.LastTarget = target
	m.LastSuggestions = nil
	m.Notes = []string{"Ultimo objetivo: " + target}
	m.PendingIntent = PendingNone
}

const (
	maxListing = 80
	// evictAbove/keepOnEvict bound the store: when it grows past
	// evictAbove live sessions, only the keepOnEvict most recently used
	// survive.
	evictAbove  = 200
	keepOnEvict = 120
)

// SetListing records the entries shown to the user, clamped to
// maxListing, and refreshes the notes with a short preview.
func (m *Memory) SetListing(target string, entries []string) {
	if len(entries) > maxListing {
		entries = entries[:maxListing]
	}
	m.LastTarget = target
	m.LastSuggestions = nil
	m.LastListing = entries

	preview := entries
	if len(preview) > 12 {
		preview = preview[:12]
	}
	m.Notes = []string{
		"Ultimo objetivo: " + target,
		listingNote(len(entries), preview),
	}
}

// Store holds session memories keyed by session id.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Memory
	now      func() time.Time
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Memory),
		now:      time.Now,
	}
}

// Get returns the memory for the session, creating it on first use. An
// empty id gets a throwaway memory that is never stored, so anonymous
// requests cannot grow the map.
func (s *Store) Get(sessionID string) *Memory {
	if sessionID == "" {
		return newMemory()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.sessions[sessionID]
	if !ok {
		m = newMemory()
		s.sessions[sessionID] = m
	}
	m.lastUsed = s.now()
	return m
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Cleanup evicts the least recently used sessions once the store grows
// past evictAbove, keeping keepOnEvict. Called from a periodic sweep.
func (s *Store) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sessions) <= evictAbove {
		return
	}

	type aged struct {
		id       string
		lastUsed time.Time
	}
	all := make([]aged, 0, len(s.sessions))
	for id, m := range s.sessions {
		all = append(all, aged{id: id, lastUsed: m.lastUsed})
	}
	// Oldest first; evict until keepOnEvict remain.
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			if all[j].lastUsed.Before(all[i].lastUsed) {
				all[i], all[j] = all[j], all[i]
			}
		}
	}
	for _, a := range all[:len(all)-keepOnEvict] {
		delete(s.sessions, a.id)
	}
}

// Sweep runs Cleanup every interval until the stop channel closes.
func (s *Store) Sweep(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.Cleanup()
		case <-stop:
			return
		}
	}
}

func listingNote(total int, preview []string) string {
	return fmt.Sprintf("Ultimo listado (%d elementos): %s", total, strings.Join(preview, ", "))
}

func newMemory() *Memory {
	return &Memory{LastTarget: "."}
}
