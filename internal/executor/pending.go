package executor

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// pendingTTL is how long a proposed command stays approvable.
const pendingTTL = 5 * time.Minute

// PendingStore holds proposed commands awaiting approval, keyed by a
// one-time token. A token is consumed exactly once: approve and reject
// both remove it.
type PendingStore struct {
	mu       sync.Mutex
	commands map[string]pendingCommand
	now      func() time.Time
}

type pendingCommand struct {
	command   string
	createdAt time.Time
}

// NewPendingStore returns an empty store.
func NewPendingStore() *PendingStore {
	return &PendingStore{
		commands: make(map[string]pendingCommand),
		now:      time.Now,
	}
}

// Add registers a proposed command and returns its approval token.
func (s *PendingStore) Add(command string) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.commands[token] = pendingCommand{command: command, createdAt: s.now()}
	s.mu.Unlock()
	return token
}

// Take consumes the token and returns its command. The second return is
// false for unknown, already-consumed, or expired tokens.
func (s *PendingStore) Take(token string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.commands[token]
	if !ok {
		return "", false
	}
	delete(s.commands, token)
	if s.now().Sub(p.createdAt) > pendingTTL {
		return "", false
	}
	return p.command, true
}

// Reject discards the token, if present.
func (s *PendingStore) Reject(token string) {
	s.mu.Lock()
	delete(s.commands, token)
	s.mu.Unlock()
}

// Len reports the number of live proposals.
func (s *PendingStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.commands)
}

// Cleanup drops expired proposals. Called from a periodic sweep.
func (s *PendingStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for token, p := range s.commands {
		if now.Sub(p.createdAt) > pendingTTL {
			delete(s.commands, token)
		}
	}
}

// Sweep runs Cleanup every interval until the stop channel closes.
func (s *PendingStore) Sweep(interval time.Duration, stop <-chan struct{}) {
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
