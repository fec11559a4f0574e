// README: Session manager; one preference state per session id, serialized per session.
package preference

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Session struct {
	ID        string    `json:"id"`
	State     State     `json:"state"`
	History   []Turn    `json:"history"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SessionStore persists sessions between messages.
type SessionStore interface {
	// Load returns ErrSessionNotFound for unknown or expired ids.
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	// DeleteIdleBefore removes sessions last updated before cutoff and reports how many.
	DeleteIdleBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// Reply is the outcome of one message.
type Reply struct {
	SessionID string
	Response  string
	State     State
}

func (r Reply) Complete() bool { return r.State.Complete() }

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// Sessions routes each message to its own session state. Messages for the same session are
// handled one at a time; different sessions run concurrently.
type Sessions struct {
	collector *Collector
	store     SessionStore
	ttl       time.Duration
	now       func() time.Time

	mu    sync.Mutex
	locks map[string]*sessionLock
}

func NewSessions(collector *Collector, store SessionStore, ttl time.Duration) *Sessions {
	return &Sessions{
		collector: collector,
		store:     store,
		ttl:       ttl,
		now:       time.Now,
		locks:     make(map[string]*sessionLock),
	}
}

// lock blocks until the caller owns id and returns the release func.
func (s *Sessions) lock(id string) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sessionLock{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.mu.Unlock()
	}
}

// Interact processes message within session id. An empty id starts a new session.
func (s *Sessions) Interact(ctx context.Context, id, message string) (Reply, error) {
	if id == "" {
		id = uuid.NewString()
	}
	unlock := s.lock(id)
	defer unlock()

	sess, err := s.loadOrNew(ctx, id)
	if err != nil {
		return Reply{}, err
	}

	response, state, procErr := s.collector.Process(ctx, message, sess.State)
	sess.State = state
	sess.History = append(sess.History, Turn{Role: RoleUser, Content: message})
	if procErr == nil {
		sess.History = append(sess.History, Turn{Role: RoleAssistant, Content: response})
	}
	sess.UpdatedAt = s.now()

	if err := s.store.Save(ctx, sess); err != nil {
		return Reply{}, fmt.Errorf("save session %s: %w", id, err)
	}
	if procErr != nil {
		return Reply{}, procErr
	}
	return Reply{SessionID: id, Response: response, State: state}, nil
}

// Get returns the session without modifying it.
func (s *Sessions) Get(ctx context.Context, id string) (*Session, error) {
	unlock := s.lock(id)
	defer unlock()
	return s.store.Load(ctx, id)
}

// Reset discards the session's state and history.
func (s *Sessions) Reset(ctx context.Context, id string) error {
	unlock := s.lock(id)
	defer unlock()
	return s.store.Delete(ctx, id)
}

// Sweep evicts sessions idle for longer than the configured TTL.
func (s *Sessions) Sweep(ctx context.Context) (int, error) {
	return s.store.DeleteIdleBefore(ctx, s.now().Add(-s.ttl))
}

func (s *Sessions) loadOrNew(ctx context.Context, id string) (*Session, error) {
	sess, err := s.store.Load(ctx, id)
	if errors.Is(err, ErrSessionNotFound) {
		return &Session{ID: id}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	return sess, nil
}
