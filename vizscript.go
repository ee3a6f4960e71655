package vizscript

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/aretw0/vizscript/internal/logging"
	"github.com/aretw0/vizscript/pkg/builtin"
	"github.com/aretw0/vizscript/pkg/dispatch"
	"github.com/aretw0/vizscript/pkg/domain"
	"github.com/aretw0/vizscript/pkg/handler"
	"github.com/aretw0/vizscript/pkg/queue"
	"github.com/aretw0/vizscript/pkg/registry"
	"github.com/aretw0/vizscript/pkg/script"
)

// Version of the vizscript module.
const Version = "0.1.0"

// Engine is the high-level entry point of the library.
// It wires the handler registry, the dispatcher and the command queue around
// one execution context.
type Engine struct {
	ec         domain.ExecutionContext
	registry   *registry.Registry
	dispatcher *dispatch.Dispatcher
	queue      *queue.Engine

	handlers      []handler.Handler
	builtins      bool
	output        io.Writer
	strictCaps    bool
	strictReg     bool
	listeners     []domain.StatusListener
	queueCtx      context.Context
	logger        *slog.Logger
	dispatcherTag string
	manualStart   bool
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithHandlers registers additional handlers. They take precedence over the
// builtins and, among themselves, the first declaration of an action wins.
func WithHandlers(hs ...handler.Handler) Option {
	return func(e *Engine) {
		e.handlers = append(e.handlers, hs...)
	}
}

// WithoutBuiltins leaves the stock handlers out of the registry.
func WithoutBuiltins() Option {
	return func(e *Engine) {
		e.builtins = false
	}
}

// WithOutput sets where the echo builtin writes (default os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(e *Engine) {
		e.output = w
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStrictCapabilities rejects handlers requiring capabilities outside the known set.
func WithStrictCapabilities(strict bool) Option {
	return func(e *Engine) {
		e.strictCaps = strict
	}
}

// WithStrictRegistry makes New fail on duplicate action names.
func WithStrictRegistry(strict bool) Option {
	return func(e *Engine) {
		e.strictReg = strict
	}
}

// WithStatusListener registers a queue status listener.
func WithStatusListener(l domain.StatusListener) Option {
	return func(e *Engine) {
		e.listeners = append(e.listeners, l)
	}
}

// WithContext sets the context handed to handlers. Cancelling it does not stop the engine.
func WithContext(ctx context.Context) Option {
	return func(e *Engine) {
		e.queueCtx = ctx
	}
}

// WithDispatcherName sets the prefix of dispatcher messages.
func WithDispatcherName(name string) Option {
	return func(e *Engine) {
		e.dispatcherTag = name
	}
}

// WithManualStart leaves the worker stopped until Start is called,
// so commands can be queued up front.
func WithManualStart() Option {
	return func(e *Engine) {
		e.manualStart = true
	}
}

// New builds an Engine operating on ec and starts its worker unless
// WithManualStart is given. Call Close to stop it.
func New(ec domain.ExecutionContext, opts ...Option) (*Engine, error) {
	e := &Engine{
		ec:            ec,
		builtins:      true,
		output:        os.Stdout,
		logger:        logging.NewNop(),
		queueCtx:      context.Background(),
		dispatcherTag: dispatch.DefaultName,
	}
	for _, opt := range opts {
		opt(e)
	}

	table := append([]handler.Handler{}, e.handlers...)
	if e.builtins {
		table = append(table, builtin.Handlers(e.output)...)
	}

	reg, err := registry.Build(table,
		registry.WithLogger(e.logger),
		registry.WithStrict(e.strictReg),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build handler registry: %w", err)
	}
	e.registry = reg

	e.dispatcher = dispatch.New(reg,
		dispatch.WithLogger(e.logger),
		dispatch.WithName(e.dispatcherTag),
		dispatch.WithStrictCapabilities(e.strictCaps),
	)

	qopts := []queue.Option{
		queue.WithLogger(e.logger),
		queue.WithContext(e.queueCtx),
	}
	for _, l := range e.listeners {
		qopts = append(qopts, queue.WithStatusListener(l))
	}
	e.queue = queue.New(e.dispatcher, qopts...)
	if !e.manualStart {
		if err := e.queue.Start(); err != nil {
			return nil, err
		}
	}

	e.logger.Debug("engine ready", "actions", reg.Len())
	return e, nil
}

// Start launches the worker. It is a no-op if it already runs.
func (e *Engine) Start() error {
	return e.queue.Start()
}

// Submit enqueues one command line and returns immediately.
// cb, if not nil, runs on the worker once the command finished.
func (e *Engine) Submit(raw string, cb domain.Callback) error {
	return e.queue.AddLine(e.ec, raw, cb)
}

// Exec enqueues one command line and waits for its outcome.
// Blank and comment lines are accepted and do nothing.
// A command discarded by Stop or Close returns an error wrapping domain.ErrDiscarded.
func (e *Engine) Exec(ctx context.Context, raw string) error {
	if !script.IsCommand(raw) {
		return nil
	}
	result := make(chan error, 1)
	err := e.queue.Add(domain.NewCommand(e.ec, raw, func(_ *domain.Command, err error) {
		result <- err
	}))
	if err != nil {
		return err
	}
	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run enqueues every command of lines and waits until the queue is idle.
// The returned error joins the errors of the commands that failed or were discarded.
func (e *Engine) Run(ctx context.Context, lines []string) error {
	var (
		mu   sync.Mutex
		errs []error
		wg   sync.WaitGroup
	)
	collect := func(_ *domain.Command, err error) {
		defer wg.Done()
		if err == nil {
			return
		}
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}
	for _, line := range script.Filter(lines) {
		wg.Add(1)
		if err := e.queue.Add(domain.NewCommand(e.ec, line, collect)); err != nil {
			wg.Done()
			return err
		}
	}

	// Every enqueued command settles exactly once, by running or by being discarded.
	settled := make(chan struct{})
	go func() {
		wg.Wait()
		close(settled)
	}()
	select {
	case <-settled:
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := e.queue.WaitIdle(ctx); err != nil && !errors.Is(err, domain.ErrEngineClosed) {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	return errors.Join(errs...)
}

// Wait blocks until the queue is idle.
func (e *Engine) Wait(ctx context.Context) error {
	return e.queue.WaitIdle(ctx)
}

// Stop discards the waiting commands; the command in flight completes.
func (e *Engine) Stop() {
	e.queue.Stop()
}

// Close stops the worker and waits for it to exit.
func (e *Engine) Close(ctx context.Context) error {
	return e.queue.Close(ctx)
}

// Describe returns the help text of every registered action.
func (e *Engine) Describe() string {
	return e.registry.Describe()
}

// Actions returns the registered action names, sorted.
func (e *Engine) Actions() []string {
	return e.registry.Actions()
}

// Context returns the execution context commands run against.
func (e *Engine) Context() domain.ExecutionContext {
	return e.ec
}

// Registry exposes the handler registry.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// Queue exposes the command queue, for history, recording and status listeners.
func (e *Engine) Queue() *queue.Engine {
	return e.queue
}

// IsBusy reports whether commands are waiting or running.
func (e *Engine) IsBusy() bool {
	return !e.queue.IsEmpty() || e.queue.IsProcessing()
}
