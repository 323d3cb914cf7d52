package runtime

import (
	"net/netip"
	"svc-mute/domain"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionRegistry tracks connected subjects and the address they connected from.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]domain.Session
	clock    func() time.Time
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[uuid.UUID]domain.Session),
		clock:    time.Now,
	}
}

// Connect registers (or refreshes) the session of a subject.
func (r *SessionRegistry) Connect(subject domain.Subject, address netip.Addr) domain.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	session := domain.Session{Subject: subject, Address: address, ConnectedAt: r.clock().UTC()}
	r.sessions[subject.ID] = session
	return session
}

// Disconnect forgets the session of a subject, if any.
func (r *SessionRegistry) Disconnect(subject domain.Subject) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, subject.ID)
}

// Lookup reports whether subject is online, with its session.
func (r *SessionRegistry) Lookup(subject domain.Subject) (domain.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[subject.ID]
	return session, ok
}

func (r *SessionRegistry) Online() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
