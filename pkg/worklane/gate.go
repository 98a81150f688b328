package worklane

import (
	"context"
	"sync"
	"time"

	"github.com/aussiebroadwan/worklane/pkg/credstore"
	"github.com/aussiebroadwan/worklane/pkg/jwtx"
)

// Status is the outcome of the session bootstrap check.
type Status int

const (
	StatusUnauthenticated Status = iota
	StatusAuthenticated
)

func (s Status) String() string {
	if s == StatusAuthenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// State is what the rest of an application consumes to decide whether to
// show protected content. Loading is true until the check has finished.
type State struct {
	Loading bool
	Status  Status
}

// Authenticated reports a finished check that found a usable session.
func (s State) Authenticated() bool {
	return !s.Loading && s.Status == StatusAuthenticated
}

// SessionGate computes the initial session state once per application load.
// Route guards read the cached State instead of re-running the check.
type SessionGate struct {
	client   *Client
	now      func() time.Time
	observer func(State)

	// checkMu serialises runs; done is set once a run reaches a verdict.
	checkMu sync.Mutex
	done    bool

	mu    sync.RWMutex
	state State
}

// GateOption configures a SessionGate.
type GateOption func(*SessionGate)

// WithObserver registers fn to receive every state transition.
func WithObserver(fn func(State)) GateOption {
	return func(g *SessionGate) { g.observer = fn }
}

// WithGateClock overrides the time source used to judge the access token.
func WithGateClock(now func() time.Time) GateOption {
	return func(g *SessionGate) { g.now = now }
}

// NewSessionGate returns a gate in the loading state.
func NewSessionGate(client *Client, opts ...GateOption) *SessionGate {
	g := &SessionGate{
		client: client,
		now:    client.now,
		state:  State{Loading: true},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check runs the bootstrap check on first call and returns the cached result
// afterwards. Concurrent first callers block until the single run completes.
//
// A stored access token that is still valid means authenticated. Otherwise
// a refresh is attempted and its success decides the outcome.
//
// If ctx ends before the refresh answers, nothing is cached: the state stays
// Loading and the next Check runs again, picking up whatever the abandoned
// exchange stored.
func (g *SessionGate) Check(ctx context.Context) State {
	g.checkMu.Lock()
	defer g.checkMu.Unlock()

	if !g.done {
		g.done = g.run(ctx)
	}
	return g.State()
}

// State returns the current snapshot without triggering the check.
func (g *SessionGate) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// run reports whether it reached a verdict. It returns false, leaving the
// gate loading, only when ctx ended while waiting on the refresh.
func (g *SessionGate) run(ctx context.Context) bool {
	g.set(State{Loading: true})

	if access, ok := g.client.Store.Get(ctx, credstore.SlotAccess); ok && jwtx.IsValid(access, g.now()) {
		g.set(State{Status: StatusAuthenticated})
		return true
	}

	fresh, err := g.client.Refresh(ctx)
	switch {
	case err == nil && fresh != "":
		g.set(State{Status: StatusAuthenticated})
	case err != nil && ctx.Err() != nil:
		return false
	default:
		g.set(State{Status: StatusUnauthenticated})
	}
	return true
}

func (g *SessionGate) set(s State) {
	g.mu.Lock()
	g.state = s
	g.mu.Unlock()

	if g.observer != nil {
		g.observer(s)
	}
}
