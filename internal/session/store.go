// Package session holds the chat history model: the active conversation,
// archived sessions and per-message reactions, all in memory.
package session

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrUnknownSession = errors.New("session: unknown session")

// Store is the in-memory session registry. Exactly one session is active at
// a time; archived sessions are kept most-recently-archived first.
type Store struct {
	mu        sync.RWMutex
	active    *Session
	history   []*Session
	reactions map[string][]ReactionToken
}

func NewStore() *Store {
	s := &Store{
		reactions: make(map[string][]ReactionToken),
	}
	s.active = newSession()
	return s
}

func newSession() *Session {
	return &Session{
		ID:             uuid.NewString(),
		LastActivityAt: time.Now(),
	}
}

// CreateSession replaces the active session with a fresh empty one and
// returns a snapshot of it. The previous active session is not archived;
// callers archive first if they want to keep it.
func (s *Store) CreateSession() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = newSession()
	return *s.active
}

// Active returns a snapshot of the active session.
func (s *Store) Active() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.active)
}

// AppendMessage appends to the session with the given id, which must be the
// active session or an archived one. Append to an archived session mutates
// the archive entry in place.
func (s *Store) AppendMessage(sessionID string, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := s.lookup(sessionID)
	if target == nil {
		return ErrUnknownSession
	}

	target.Messages = append(target.Messages, msg)
	target.LastActivityAt = msg.CreatedAt
	if target.Title == "" {
		target.Title = DeriveTitle(target.Messages[0].Text)
	}
	return nil
}

// ArchiveActive snapshots the active session into history. Sessions with no
// messages are never archived. Re-archiving an id that is already in history
// replaces the old entry; newest entries come first.
func (s *Store) ArchiveActive() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.active.Messages) == 0 {
		return
	}

	snap := snapshot(s.active)
	filtered := s.history[:0]
	for _, entry := range s.history {
		if entry.ID != snap.ID {
			filtered = append(filtered, entry)
		}
	}
	s.history = append([]*Session{&snap}, filtered...)
}

// LoadSession activates an archived session, working on a copy so the
// archived snapshot stays intact until the session is re-archived.
func (s *Store) LoadSession(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, entry := range s.history {
		if entry.ID == id {
			working := snapshot(entry)
			s.active = &working
			return snapshot(s.active), nil
		}
	}
	return Session{}, ErrUnknownSession
}

// DeleteSession removes a session from history. Deleting the active session
// replaces it with a fresh empty one.
func (s *Store) DeleteSession(id string) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := s.history[:0]
	for _, entry := range s.history {
		if entry.ID != id {
			filtered = append(filtered, entry)
		}
	}
	s.history = filtered

	if s.active.ID == id {
		s.active = newSession()
	}
	return snapshot(s.active)
}

// History returns snapshots of the archived sessions, newest first.
func (s *Store) History() []Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Session, 0, len(s.history))
	for _, entry := range s.history {
		out = append(out, snapshot(entry))
	}
	return out
}

// RestoreHistory seeds the archive from persisted snapshots, given newest
// first. Replaces whatever history is present; the active session is kept.
func (s *Store) RestoreHistory(sessions []Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = s.history[:0]
	for i := range sessions {
		snap := snapshot(&sessions[i])
		s.history = append(s.history, &snap)
	}
}

// Search returns archived sessions whose title or any message text contains
// the query, case-insensitively, preserving history order. An empty query
// matches everything.
func (s *Store) Search(query string) []Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)
	var out []Session
	for _, entry := range s.history {
		if matches(entry, q) {
			out = append(out, snapshot(entry))
		}
	}
	return out
}

func matches(sess *Session, loweredQuery string) bool {
	if strings.Contains(strings.ToLower(sess.Title), loweredQuery) {
		return true
	}
	for _, msg := range sess.Messages {
		if strings.Contains(strings.ToLower(msg.Text), loweredQuery) {
			return true
		}
	}
	return false
}

// AddReaction appends an emoji token to a message's reaction list. The list
// is append-only and kept apart from the message itself.
func (s *Store) AddReaction(messageID string, token ReactionToken) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reactions[messageID] = append(s.reactions[messageID], token)
}

// Reactions returns the reaction tokens for a message, in append order.
func (s *Store) Reactions(messageID string) []ReactionToken {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tokens := s.reactions[messageID]
	out := make([]ReactionToken, len(tokens))
	copy(out, tokens)
	return out
}

func (s *Store) lookup(id string) *Session {
	if s.active.ID == id {
		return s.active
	}
	for _, entry := range s.history {
		if entry.ID == id {
			return entry
		}
	}
	return nil
}

func snapshot(sess *Session) Session {
	out := *sess
	out.Messages = make([]Message, len(sess.Messages))
	copy(out.Messages, sess.Messages)
	return out
}
