package stream

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/iksnae/chat-composer/internal"
	"github.com/iksnae/chat-composer/internal/session"
)

const (
	// DefaultFragmentDelay is the pause before each streamed fragment
	DefaultFragmentDelay = 25 * time.Millisecond
	// DefaultSettleDelay is the pause between creating a session and sending into it
	DefaultSettleDelay = 100 * time.Millisecond
)

// Event reports one fragment reaching the store. Applied is false when the
// fragment was dropped because the session no longer ends in this exchange.
type Event struct {
	SessionID string
	Content   string
	Applied   bool
	Done      bool
}

// Reconciler drives a session through the messages of one streamed reply
type Reconciler struct {
	store         *session.Store
	fragmentDelay time.Duration
	settleDelay   time.Duration
	generate      Generator
	observer      func(Event)
	now           func() time.Time

	active atomic.Int32
}

// ReconcilerOption configures a Reconciler
type ReconcilerOption func(*Reconciler)

// WithFragmentDelay sets the pause before each fragment
func WithFragmentDelay(d time.Duration) ReconcilerOption {
	return func(r *Reconciler) { r.fragmentDelay = d }
}

// WithSettleDelay sets the pause after creating a session in SendToCurrent
func WithSettleDelay(d time.Duration) ReconcilerOption {
	return func(r *Reconciler) { r.settleDelay = d }
}

// WithGenerator replaces the canned reply generator
func WithGenerator(g Generator) ReconcilerOption {
	return func(r *Reconciler) { r.generate = g }
}

// WithObserver registers a callback run after every fragment. It runs on the
// sending goroutine outside the store lock.
func WithObserver(fn func(Event)) ReconcilerOption {
	return func(r *Reconciler) { r.observer = fn }
}

// WithReconcilerClock overrides the message timestamp source
func WithReconcilerClock(now func() time.Time) ReconcilerOption {
	return func(r *Reconciler) { r.now = now }
}

// NewReconciler creates a reconciler writing into store
func NewReconciler(store *session.Store, opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{
		store:         store,
		fragmentDelay: DefaultFragmentDelay,
		settleDelay:   DefaultSettleDelay,
		generate:      Generate,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Streaming reports whether a reply is currently being streamed
func (r *Reconciler) Streaming() bool {
	return r.active.Load() > 0
}

// Send appends a user message with content to the session and streams the
// assistant reply into it. It returns once the final fragment has been
// applied, or ctx.Err() if ctx ends first. Content already applied stays.
func (r *Reconciler) Send(ctx context.Context, sessionID, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return internal.ErrEmptyMessage
	}
	if _, ok := r.store.Session(sessionID); !ok {
		return fmt.Errorf("send to %q: %w", sessionID, internal.ErrSessionNotFound)
	}

	user := internal.NewUserMessage(content, r.now())
	r.store.AddMessage(sessionID, user)
	internal.LogDebugKV("added user message", "session", sessionID, "message", user.ID)

	return r.respond(ctx, sessionID, user)
}

// SendToCurrent sends into the current session, creating one first when
// there is none. It returns the id of the session the message went to.
func (r *Reconciler) SendToCurrent(ctx context.Context, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", internal.ErrEmptyMessage
	}

	id := r.store.CurrentSessionID()
	if id == "" {
		id = r.store.CreateSession()
		if !sleep(ctx, r.settleDelay) {
			return id, ctx.Err()
		}
	}
	return id, r.Send(ctx, id, content)
}

// Regenerate discards the reply that directly follows the session's last
// user message and streams a new one for it.
func (r *Reconciler) Regenerate(ctx context.Context, sessionID string) error {
	if _, ok := r.store.Session(sessionID); !ok {
		return fmt.Errorf("regenerate %q: %w", sessionID, internal.ErrSessionNotFound)
	}

	var (
		user  internal.Message
		found bool
	)
	r.store.ReconcileMessages(sessionID, func(live []internal.Message) ([]internal.Message, bool) {
		idx := -1
		for i := len(live) - 1; i >= 0; i-- {
			if live[i].Role == internal.RoleUser {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, false
		}
		user, found = live[idx], true

		// Only the reply in the slot right after the user message is removed
		if idx+1 < len(live) && live[idx+1].Role == internal.RoleAssistant {
			return append(live[:idx+1], live[idx+2:]...), true
		}
		return nil, false
	})
	if !found {
		return internal.ErrNothingToRegenerate
	}

	internal.LogDebugKV("regenerating reply", "session", sessionID, "message", user.ID)
	return r.respond(ctx, sessionID, user)
}

func (r *Reconciler) respond(ctx context.Context, sessionID string, user internal.Message) error {
	r.active.Add(1)
	defer r.active.Add(-1)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	full := r.generate(user.Content)
	assistantID := internal.NewMessageID(internal.RoleAssistant)

	applied, dropped := 0, 0
	for frag := range Stream(ctx, full, r.fragmentDelay) {
		ok := r.apply(sessionID, user.ID, assistantID, frag.Content)
		if ok {
			applied++
		} else {
			dropped++
		}
		if r.observer != nil {
			r.observer(Event{SessionID: sessionID, Content: frag.Content, Applied: ok, Done: frag.Done})
		}
		if frag.Done {
			internal.LogDebugKV("streamed reply", "session", sessionID, "applied", applied, "dropped", dropped)
			return nil
		}
	}

	internal.LogDebugKV("stream stopped", "session", sessionID, "applied", applied)
	return ctx.Err()
}

// apply reconciles one cumulative fragment against the live tail of the session
func (r *Reconciler) apply(sessionID, userID, assistantID, content string) bool {
	return r.store.ReconcileMessages(sessionID, func(live []internal.Message) ([]internal.Message, bool) {
		if len(live) == 0 {
			return nil, false
		}
		last := live[len(live)-1]
		switch {
		case last.ID == userID:
			return append(live, internal.Message{
				ID:        assistantID,
				Role:      internal.RoleAssistant,
				Content:   content,
				Timestamp: r.now(),
			}), true
		case last.Role == internal.RoleAssistant:
			last.Content = content
			live[len(live)-1] = last
			return live, true
		default:
			return nil, false
		}
	})
}
