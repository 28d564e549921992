package consultant

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jeet-integrated/elvproposal/internal/llm"
	"github.com/jeet-integrated/elvproposal/internal/logging"
	"github.com/jeet-integrated/elvproposal/internal/navigator"
)

// ErrSessionNotFound is returned for an unknown session id.
var ErrSessionNotFound = errors.New("consultant: session not found")

// DefaultIdleTTL is how long an unattached session survives without activity.
const DefaultIdleTTL = 30 * time.Minute

// Session bundles the per-visitor state: a conversation with its consultant,
// a diagram synthesizer and a section navigator.
type Session struct {
	ID           string
	Conversation *Conversation
	Consultant   *Consultant
	Synthesizer  *Synthesizer
	Navigator    *navigator.Navigator
	CreatedAt    time.Time

	// guarded by Registry.mu
	lastActive time.Time
	holders    int
	initialLen int
}

// pristine reports whether nothing happened in the session beyond its greeting.
func (s *Session) pristine() bool {
	return s.Conversation.Len() <= s.initialLen &&
		!s.Consultant.InFlight() &&
		!s.Synthesizer.InFlight() &&
		s.Synthesizer.LastImage() == nil
}

// RegistryOptions configures the sessions a Registry creates.
type RegistryOptions struct {
	Text          llm.TextProvider
	Image         llm.ImageProvider
	Context       ContextSource
	Sections      []string
	ReferenceLine float64
	Greeting      string
	Model         string
	ImageModel    string
	Temperature   *float64
	// IdleTTL bounds how long a session nobody is attached to is kept after
	// its last activity. Zero selects DefaultIdleTTL.
	IdleTTL time.Duration
	Logger  *zap.Logger
}

// Registry holds live sessions in memory.
type Registry struct {
	opts RegistryOptions

	mu       sync.RWMutex
	sessions map[string]*Session
	order    []string
	now      func() time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry(opts RegistryOptions) *Registry {
	opts.Logger = logging.OrNop(opts.Logger)
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = DefaultIdleTTL
	}
	return &Registry{
		opts:     opts,
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Create starts a new session. Idle sessions are swept first.
func (r *Registry) Create() *Session {
	r.Sweep()

	conv := NewConversation(r.opts.Greeting)
	sess := &Session{
		ID:           uuid.New().String(),
		Conversation: conv,
		Consultant: New(r.opts.Text, conv, r.opts.Context, Options{
			Model:       r.opts.Model,
			Temperature: r.opts.Temperature,
			Logger:      r.opts.Logger,
		}),
		Synthesizer: NewSynthesizer(r.opts.Image, r.opts.ImageModel, r.opts.Logger),
		Navigator:   navigator.New(r.opts.Sections, r.opts.ReferenceLine),
		CreatedAt:   r.now().UTC(),
		initialLen:  conv.Len(),
	}
	sess.lastActive = sess.CreatedAt

	r.mu.Lock()
	r.sessions[sess.ID] = sess
	r.order = append(r.order, sess.ID)
	r.mu.Unlock()

	r.opts.Logger.Debug("session created", zap.String("session", sess.ID))
	return sess
}

// Get returns the session with the given id and marks it active.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.lastActive = r.now()
	return sess, nil
}

// Attach binds a long-lived holder, such as a websocket, to the session with
// the given id, or to a new session when id is empty. Attached sessions are
// never swept. The returned release function detaches; when it drops the last
// holder of a session that Attach created and nothing was ever asked or drawn
// in it, the session is deleted at once.
func (r *Registry) Attach(id string) (*Session, func(), error) {
	created := id == ""
	var sess *Session
	if created {
		sess = r.Create()
	} else {
		var err error
		if sess, err = r.Get(id); err != nil {
			return nil, nil, err
		}
	}

	r.mu.Lock()
	sess.holders++
	r.mu.Unlock()

	var once sync.Once
	release := func() {
		once.Do(func() {
			r.mu.Lock()
			sess.holders--
			sess.lastActive = r.now()
			drop := created && sess.holders == 0 && sess.pristine()
			r.mu.Unlock()
			if drop {
				r.Delete(sess.ID)
				r.opts.Logger.Debug("unused session dropped", zap.String("session", sess.ID))
			}
		})
	}
	return sess, release, nil
}

// Holders returns how many holders are attached to the session, or zero for
// an unknown id.
func (r *Registry) Holders(id string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if sess, ok := r.sessions[id]; ok {
		return sess.holders
	}
	return 0
}

// Sweep deletes sessions that have no holder, no call in flight and no
// activity within the idle TTL. It returns the number of sessions removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.opts.IdleTTL)
	var expired []string
	for id, sess := range r.sessions {
		if sess.holders > 0 || sess.Consultant.InFlight() || sess.Synthesizer.InFlight() {
			continue
		}
		if sess.lastActive.Before(cutoff) {
			expired = append(expired, id)
		}
	}
	for _, id := range expired {
		delete(r.sessions, id)
	}
	if len(expired) > 0 {
		r.order = slices.DeleteFunc(r.order, func(s string) bool { return slices.Contains(expired, s) })
		r.opts.Logger.Debug("idle sessions swept", zap.Int("count", len(expired)))
	}
	return len(expired)
}

// Delete removes a session. Deleting an unknown id is a no-op.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return
	}
	delete(r.sessions, id)
	r.order = slices.DeleteFunc(r.order, func(s string) bool { return s == id })
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// IDs returns the live session ids in creation order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}
