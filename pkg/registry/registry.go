package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/vizscript/internal/logging"
	"github.com/aretw0/vizscript/pkg/domain"
	"github.com/aretw0/vizscript/pkg/handler"
)

// GeneralGroup is the help group of handlers without requirements.
const GeneralGroup = "general"

// Registry manages the available handlers, keyed by action name.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]handler.Handler
	order    []string

	logger *slog.Logger
	strict bool
}

// Option configures the Registry.
type Option func(*Registry)

// WithLogger configures the logger used to report collisions.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithStrict makes duplicate registrations fail instead of being ignored.
func WithStrict(strict bool) Option {
	return func(r *Registry) {
		r.strict = strict
	}
}

// New creates a new empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		handlers: make(map[string]handler.Handler),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Build creates a registry from an explicit registration table.
// Handlers are registered in slice order, so the first declaration of an action wins.
func Build(handlers []handler.Handler, opts ...Option) (*Registry, error) {
	r := New(opts...)
	for _, h := range handlers {
		if err := r.Register(h); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a handler under its action name.
// If the action is already taken, the first handler stays reachable and the collision is logged.
// An error is only returned in strict mode or for handlers without an action.
func (r *Registry) Register(h handler.Handler) error {
	action := h.Action()
	if action == "" {
		return fmt.Errorf("handler %s declares no action", identity(h))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.handlers[action]; ok {
		r.logger.Error("duplicate action registration, keeping first",
			"action", action,
			"kept", identity(existing),
			"ignored", identity(h),
		)
		if r.strict {
			return fmt.Errorf("%w: '%s' declared by %s and %s", domain.ErrDuplicateAction, action, identity(existing), identity(h))
		}
		return nil
	}

	r.handlers[action] = h
	r.order = append(r.order, action)
	return nil
}

// Get looks up a handler by action name.
func (r *Registry) Get(action string) (handler.Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[action]
	return h, ok
}

// Actions returns the registered action names, sorted.
func (r *Registry) Actions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	actions := make([]string, len(r.order))
	copy(actions, r.order)
	sort.Strings(actions)
	return actions
}

// Handlers returns the registered handlers in registration order.
func (r *Registry) Handlers() []handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]handler.Handler, 0, len(r.order))
	for _, action := range r.order {
		list = append(list, r.handlers[action])
	}
	return list
}

// Len returns the number of registered actions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

func identity(h handler.Handler) string {
	return fmt.Sprintf("%T@%p", h, h)
}
