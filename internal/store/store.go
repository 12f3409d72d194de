// Package store holds editing sessions in memory. A session is created
// when an upload passes the gate and holds exactly one document, league
// or team kind, until the operator exports or discards it or the
// sweeper reaps it. The store is the system's only synchronization
// point: the mutex makes concurrent edits to one session last-write-wins,
// which matches the editor's single-threaded model.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/fankit/teamstudio/internal/document"
)

var (
	// ErrNotFound is returned for unknown or expired session IDs.
	ErrNotFound = errors.New("session not found")
	// ErrKindMismatch is returned when an operation addresses a session
	// holding the other document family.
	ErrKindMismatch = errors.New("session holds a different document kind")
)

// Session is one in-memory editing session.
type Session struct {
	ID       string
	Kind     document.Kind
	Leagues  document.LeagueDocument
	Team     document.Team
	lastUsed time.Time
}

// Store is an in-memory session map guarded by a RWMutex. TTL is
// refreshed on every access; Sweep discards sessions idle longer than
// the TTL. The clock is injected so expiry is testable.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	clock    clockwork.Clock
}

// New creates a store with the given idle TTL. A nil clock uses real
// time.
func New(ttl time.Duration, clock clockwork.Clock) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		clock:    clock,
	}
}

// PutLeagues admits a league document and returns the new session ID.
func (s *Store) PutLeagues(doc document.LeagueDocument) string {
	return s.put(&Session{Kind: document.KindLeague, Leagues: doc})
}

// PutTeam admits a team document and returns the new session ID.
func (s *Store) PutTeam(team document.Team) string {
	return s.put(&Session{Kind: document.KindTeam, Team: team})
}

func (s *Store) put(session *Session) string {
	session.ID = uuid.New().String()
	session.lastUsed = s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return session.ID
}

// Leagues returns the league document held by a session, refreshing its
// TTL.
func (s *Store) Leagues(id string) (document.LeagueDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.liveLocked(id)
	if err != nil {
		return document.LeagueDocument{}, err
	}
	if session.Kind != document.KindLeague {
		return document.LeagueDocument{}, ErrKindMismatch
	}
	return session.Leagues, nil
}

// Team returns the team document held by a session, refreshing its TTL.
func (s *Store) Team(id string) (document.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.liveLocked(id)
	if err != nil {
		return document.Team{}, err
	}
	if session.Kind != document.KindTeam {
		return document.Team{}, ErrKindMismatch
	}
	return session.Team, nil
}

// Kind reports the document family a session holds.
func (s *Store) Kind(id string) (document.Kind, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.liveLocked(id)
	if err != nil {
		return "", err
	}
	return session.Kind, nil
}

// UpdateLeagues replaces the league document in a session.
func (s *Store) UpdateLeagues(id string, doc document.LeagueDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.liveLocked(id)
	if err != nil {
		return err
	}
	if session.Kind != document.KindLeague {
		return ErrKindMismatch
	}
	session.Leagues = doc
	return nil
}

// UpdateTeam replaces the team document in a session.
func (s *Store) UpdateTeam(id string, team document.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.liveLocked(id)
	if err != nil {
		return err
	}
	if session.Kind != document.KindTeam {
		return ErrKindMismatch
	}
	session.Team = team
	return nil
}

// Delete discards a session. Deleting an unknown session is not an
// error; discard is idempotent.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Sweep removes sessions idle past the TTL and reports how many were
// discarded.
func (s *Store) Sweep() int {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, session := range s.sessions {
		if now.Sub(session.lastUsed) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) liveLocked(id string) (*Session, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := s.clock.Now()
	if now.Sub(session.lastUsed) > s.ttl {
		delete(s.sessions, id)
		return nil, ErrNotFound
	}
	session.lastUsed = now
	return session, nil
}
