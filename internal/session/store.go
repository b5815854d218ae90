// Package session owns the collection of chat sessions and its persistence.
//
// Every operation takes the store's single mutex, so mutations coming from the
// composer, the streaming reconciler and the CLI are applied one at a time and
// never interleave. Values handed out are deep copies.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/iksnae/chat-composer/internal"
)

// Store is the process-wide session collection
type Store struct {
	mu        sync.Mutex
	durable   internal.Durable
	sessions  map[string]*internal.Session
	order     []string // creation order
	currentID string

	now   func() time.Time
	newID func() string
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides session id allocation
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// NewStore loads the collection from durable storage. Unreadable or malformed
// data is discarded with a warning and the store starts empty. A nil durable
// keeps everything in memory.
func NewStore(durable internal.Durable, opts ...Option) *Store {
	if durable == nil {
		durable = internal.NewMemoryDurable(nil)
	}
	s := &Store{
		durable:  durable,
		sessions: make(map[string]*internal.Session),
		now:      time.Now,
		newID:    internal.NewSessionID,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load()
	return s
}

func (s *Store) load() {
	data, ok, err := s.durable.Load()
	if err != nil {
		internal.LogWarn("Failed to load chat sessions: %v", err)
		return
	}
	if !ok {
		return
	}

	sessions, err := Decode(data)
	if err != nil {
		internal.LogWarn("Discarding unreadable chat session history: %v", err)
		return
	}

	for i := range sessions {
		sess := sessions[i]
		if sess.Messages == nil {
			sess.Messages = []internal.Message{}
		}
		s.sessions[sess.ID] = &sess
		s.order = append(s.order, sess.ID)
	}
	if len(s.order) > 0 {
		s.currentID = s.order[len(s.order)-1]
	}
	internal.LogDebugKV("loaded chat sessions", "count", len(s.order))
}

// CreateSession allocates an empty session, makes it current and returns its id
func (s *Store) CreateSession() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	for s.sessions[id] != nil {
		id = s.newID()
	}

	now := s.now()
	s.sessions[id] = &internal.Session{
		ID:        id,
		Title:     internal.DefaultTitle,
		Messages:  []internal.Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.order = append(s.order, id)
	s.currentID = id
	s.persistLocked()

	internal.LogDebugKV("created session", "session", id)
	return id
}

// AddMessage appends msg to the session. The first user message of a session
// sets its title. Unknown session ids are ignored.
func (s *Store) AddMessage(sessionID string, msg internal.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		internal.LogDebugKV("ignoring message for unknown session", "session", sessionID)
		return
	}

	if msg.ID == "" {
		msg.ID = internal.NewMessageID(msg.Role)
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = s.now()
	}

	if msg.Role == internal.RoleUser && !sess.HasUserMessage() {
		sess.Title = DeriveTitle(msg.Content)
	}
	sess.Messages = append(sess.Messages, msg)
	s.touchLocked(sess)
	s.persistLocked()
}

// UpdateSessionMessages replaces the session's message list. Unknown session ids are ignored.
func (s *Store) UpdateSessionMessages(sessionID string, messages []internal.Message) {
	s.ReconcileMessages(sessionID, func([]internal.Message) ([]internal.Message, bool) {
		return messages, true
	})
}

// ReconcileMessages runs fn against the live message list and installs the
// list it returns when apply is true. fn runs under the store lock, so the
// read and the write form one atomic step. It reports whether a list was installed.
func (s *Store) ReconcileMessages(sessionID string, fn func(live []internal.Message) (next []internal.Message, apply bool)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return false
	}

	next, apply := fn(internal.CloneMessages(sess.Messages))
	if !apply {
		return false
	}
	if next == nil {
		next = []internal.Message{}
	}

	sess.Messages = internal.CloneMessages(next)
	s.touchLocked(sess)
	s.persistLocked()
	return true
}

// DeleteSession removes a session. When it was current, the most recently
// created remaining session becomes current.
func (s *Store) DeleteSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return
	}
	delete(s.sessions, sessionID)
	for i, id := range s.order {
		if id == sessionID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	if s.currentID == sessionID {
		s.currentID = ""
		if n := len(s.order); n > 0 {
			s.currentID = s.order[n-1]
		}
	}

	if len(s.order) == 0 {
		if err := s.durable.Erase(); err != nil {
			internal.LogWarn("Failed to erase chat sessions: %v", err)
		}
		return
	}
	s.persistLocked()
}

// ClearAll empties the collection and erases the durable copy
func (s *Store) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = make(map[string]*internal.Session)
	s.order = nil
	s.currentID = ""

	if err := s.durable.Erase(); err != nil {
		return fmt.Errorf("failed to erase chat sessions: %w", err)
	}
	return nil
}

// Select makes an existing session current
func (s *Store) Select(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return fmt.Errorf("select %q: %w", sessionID, internal.ErrSessionNotFound)
	}
	s.currentID = sessionID
	return nil
}

// CurrentSessionID returns the current session id, or "" when there is none
func (s *Store) CurrentSessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentID
}

// CurrentSession returns a copy of the current session
func (s *Store) CurrentSession() (internal.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[s.currentID]
	if !ok {
		return internal.Session{}, false
	}
	return sess.Clone(), true
}

// Session returns a copy of the named session
func (s *Store) Session(sessionID string) (internal.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return internal.Session{}, false
	}
	return sess.Clone(), true
}

// Sessions returns copies of all sessions in creation order
func (s *Store) Sessions() []internal.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listLocked()
}

// Len returns the number of sessions
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

func (s *Store) listLocked() []internal.Session {
	out := make([]internal.Session, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.sessions[id].Clone())
	}
	return out
}

// touchLocked advances UpdatedAt, strictly, even if the clock did not move
func (s *Store) touchLocked(sess *internal.Session) {
	now := s.now()
	if !now.After(sess.UpdatedAt) {
		now = sess.UpdatedAt.Add(time.Nanosecond)
	}
	sess.UpdatedAt = now
}

func (s *Store) persistLocked() {
	if len(s.order) == 0 {
		return
	}
	data, err := Encode(s.listLocked())
	if err != nil {
		internal.LogError("Failed to encode chat sessions: %v", err)
		return
	}
	if err := s.durable.Save(data); err != nil {
		internal.LogWarn("Failed to save chat sessions: %v", err)
	}
}
