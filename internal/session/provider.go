package session

import (
	"log/slog"
	"sync"
	"time"
)

type State int

const (
	StateInitializing State = iota
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	}
	return "unknown"
}

// Session is a read-only snapshot of a provider.
type Session struct {
	User          *UserRecord
	Role          Role
	Authenticated bool
	Loading       bool
}

// Ticket is what an outgoing request carries: the credential (possibly empty)
// and the session generation it was read under.
type Ticket struct {
	Credential string
	Generation uint64
}

// Observer receives session transitions. Implementations must not call back
// into the provider.
type Observer interface {
	SessionEvent(event string)
}

type Option func(*Provider)

func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		p.now = now
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func WithObserver(observer Observer) Option {
	return func(p *Provider) {
		p.observer = observer
	}
}

// Provider owns the session state for one mount. It is the only writer of
// its Store.
type Provider struct {
	mu         sync.Mutex
	store      Store
	now        func() time.Time
	logger     *slog.Logger
	observer   Observer
	state      State
	user       UserRecord
	generation uint64
	err        error
}

func NewProvider(store Store, opts ...Option) *Provider {
	p := &Provider{
		store:  store,
		now:    time.Now,
		logger: slog.Default(),
		state:  StateInitializing,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Init restores the session from the store. Only the first call has an
// effect; the provider never returns to StateInitializing.
func (p *Provider) Init() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateInitializing {
		return p.state
	}

	credential, user, ok := p.store.Load()
	if !ok {
		p.state = StateAnonymous
		return p.state
	}

	claims, decoded := Decode(credential)
	if !decoded || claims.Expired(p.now()) {
		if err := p.store.Clear(); err != nil {
			p.logger.Warn("failed to clear stale session", "error", err)
		}
		p.state = StateAnonymous
		p.logger.Debug("stored session discarded", "username", user.Username, "malformed", !decoded)
		p.notify("expired")
		return p.state
	}

	p.user = user
	p.state = StateAuthenticated
	p.notify("restored")
	return p.state
}

func (p *Provider) Login(credential string, user UserRecord) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.store.Save(credential, user); err != nil {
		return err
	}

	p.user = user
	p.state = StateAuthenticated
	p.err = nil
	p.generation++
	p.logger.Info("user signed in", "username", user.Username, "role", user.Role)
	p.notify("login")
	return nil
}

func (p *Provider) Logout() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.store.Clear()
	if err != nil {
		p.logger.Warn("failed to clear session on logout", "username", p.user.Username, "error", err)
	}
	p.user = UserRecord{}
	p.state = StateAnonymous
	p.err = nil
	p.generation++
	p.notify("logout")
	return err
}

// Invalidate clears an authenticated session if nothing has changed it since
// generation was observed. Exactly one of any number of concurrent callers
// holding the same generation gets true; an anonymous session never does.
func (p *Provider) Invalidate(generation uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if generation != p.generation || p.state != StateAuthenticated {
		return false
	}

	if err := p.store.Clear(); err != nil {
		p.logger.Warn("failed to clear session after authorization failure", "error", err)
	}
	p.logger.Info("session invalidated by backend", "username", p.user.Username)
	p.user = UserRecord{}
	p.state = StateAnonymous
	p.generation++
	p.notify("invalidated")
	return true
}

// Ticket reads the credential from the store together with the current
// generation.
func (p *Provider) Ticket() Ticket {
	p.mu.Lock()
	defer p.mu.Unlock()

	ticket := Ticket{Generation: p.generation}
	if p.state == StateAnonymous {
		return ticket
	}
	if credential, _, ok := p.store.Load(); ok {
		ticket.Credential = credential
	}
	return ticket
}

// Credential returns the stored credential, if any.
func (p *Provider) Credential() (string, bool) {
	t := p.Ticket()
	return t.Credential, t.Credential != ""
}

func (p *Provider) Snapshot() Session {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := Session{Loading: p.state == StateInitializing}
	if p.state == StateAuthenticated {
		user := p.user
		s.User = &user
		s.Role = Role(user.Role)
		s.Authenticated = true
	}
	return s
}

func (p *Provider) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Provider) IsAuthenticated() bool {
	return p.State() == StateAuthenticated
}

// Role is taken from the stored user record, not from the credential.
func (p *Provider) Role() Role {
	return p.Snapshot().Role
}

func (p *Provider) Loading() bool {
	return p.State() == StateInitializing
}

func (p *Provider) User() (UserRecord, bool) {
	s := p.Snapshot()
	if s.User == nil {
		return UserRecord{}, false
	}
	return *s.User, true
}

func (p *Provider) Generation() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.generation
}

// SetError records a user-facing error such as a failed sign-in. It does not
// change the session state.
func (p *Provider) SetError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func (p *Provider) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *Provider) notify(event string) {
	if p.observer != nil {
		p.observer.SessionEvent(event)
	}
}
