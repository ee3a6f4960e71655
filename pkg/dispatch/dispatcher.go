package dispatch

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aretw0/vizscript/internal/logging"
	"github.com/aretw0/vizscript/pkg/capability"
	"github.com/aretw0/vizscript/pkg/domain"
	"github.com/aretw0/vizscript/pkg/handler"
)

// DefaultName prefixes the messages produced by the dispatcher itself.
const DefaultName = "dispatcher"

// Lookup resolves an action name to its handler.
type Lookup interface {
	Get(action string) (handler.Handler, bool)
}

// Dispatcher parses one command line, checks the requirements of the handler and invokes it.
// It holds a single binding slot for the execution context and is not reentrant:
// a handler must not call Process on the dispatcher that is running it.
type Dispatcher struct {
	name    string
	lookup  Lookup
	checker *capability.Checker
	logger  *slog.Logger
	strict  bool

	// mu serializes Process. The bound slot has its own lock so handlers
	// and observers can read it while a call is running.
	mu      sync.Mutex
	boundMu sync.RWMutex
	bound   domain.ExecutionContext
}

// Option configures the Dispatcher.
type Option func(*Dispatcher)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithName sets the prefix used in dispatcher messages.
func WithName(name string) Option {
	return func(d *Dispatcher) {
		d.name = name
	}
}

// WithChecker replaces the capability checker.
func WithChecker(c *capability.Checker) Option {
	return func(d *Dispatcher) {
		d.checker = c
	}
}

// WithStrictCapabilities rejects requirements outside the known capability set
// instead of logging them and carrying on.
func WithStrictCapabilities(strict bool) Option {
	return func(d *Dispatcher) {
		d.strict = strict
	}
}

// New creates a Dispatcher over the given handler lookup.
func New(lookup Lookup, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		name:    DefaultName,
		lookup:  lookup,
		checker: capability.New(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Name returns the message prefix of the dispatcher.
func (d *Dispatcher) Name() string {
	return d.name
}

// Bound returns the context of the call in progress, nil between calls.
func (d *Dispatcher) Bound() domain.ExecutionContext {
	d.boundMu.RLock()
	defer d.boundMu.RUnlock()
	return d.bound
}

func (d *Dispatcher) bind(ec domain.ExecutionContext) {
	d.boundMu.Lock()
	d.bound = ec
	d.boundMu.Unlock()
}

// Process dispatches one raw command line against ec.
// It returns nil on success, otherwise the user-facing error of the command.
func (d *Dispatcher) Process(ctx context.Context, ec domain.ExecutionContext, raw string) error {
	d.mu.Lock()
	d.bind(ec)
	defer func() {
		d.bind(nil)
		d.mu.Unlock()
	}()

	action, options, err := Parse(raw)
	if err != nil {
		return domain.NewCommandError(domain.ErrParse, "%s: Failed to parse '%s': %v", d.name, raw, err)
	}

	h, ok := d.lookup.Get(action)
	if !ok {
		return domain.NewCommandError(domain.ErrUnknownAction, "%s: Unknown action '%s'!", d.name, action)
	}

	for _, req := range h.Requirements() {
		verdict, msg := d.checker.Check(ec, req, h)
		switch verdict {
		case capability.Met:
			continue
		case capability.Unmet:
			d.logger.Debug("requirement not met", "action", action, "capability", req)
			return domain.NewCommandError(domain.ErrUnmetRequirement, "%s", msg)
		default:
			if d.strict {
				return domain.NewCommandError(domain.ErrUnsupportedCapability,
					"%s: Unsupported capability '%s' required by '%s'!", d.name, req, action)
			}
			d.logger.Warn("unrecognized capability requirement, treating as met", "action", action, "capability", req)
		}
	}

	h.Bind(ec)
	defer h.Bind(nil)

	d.logger.Debug("processing", "action", action, "options", len(options))
	return d.invoke(ctx, h, options)
}

func (d *Dispatcher) invoke(ctx context.Context, h handler.Handler, options []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("handler panicked", "action", h.Action(), "panic", r)
			err = domain.NewCommandError(domain.ErrHandlerFault, "%s: Action '%s' failed: %v", d.name, h.Action(), r)
		}
	}()
	return h.Process(ctx, options)
}
