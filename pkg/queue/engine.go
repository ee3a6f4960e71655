package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/vizscript/internal/logging"
	"github.com/aretw0/vizscript/pkg/domain"
	"github.com/aretw0/vizscript/pkg/script"
)

// Processor executes one raw command line against an execution context.
type Processor interface {
	Process(ctx context.Context, ec domain.ExecutionContext, raw string) error
}

// Engine is a thread-safe FIFO of commands drained by a single worker goroutine.
type Engine struct {
	processor Processor
	logger    *slog.Logger
	ctx       context.Context

	mu         sync.Mutex
	pending    []*domain.Command
	current    *domain.Command
	processing bool
	started    bool
	closed     bool
	lastErr    error

	wake   chan struct{}
	done   chan struct{}
	exited chan struct{}

	listenersMu sync.RWMutex
	listeners   map[int]domain.StatusListener
	nextID      int

	recorder *recorder
}

// New creates an Engine. The worker is not running until Start is called.
func New(p Processor, opts ...Option) *Engine {
	e := &Engine{
		processor: p,
		logger:    logging.NewNop(),
		ctx:       context.Background(),
		wake:      make(chan struct{}, 1),
		done:      make(chan struct{}),
		exited:    make(chan struct{}),
		listeners: make(map[int]domain.StatusListener),
		recorder:  newRecorder(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Add appends the command to the queue. It never blocks.
func (e *Engine) Add(cmd *domain.Command) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return domain.ErrEngineClosed
	}
	if cmd.EnqueuedAt.IsZero() {
		cmd.EnqueuedAt = time.Now()
	}
	e.pending = append(e.pending, cmd)
	e.mu.Unlock()

	e.signal()
	e.logger.Debug("command added", "cmd_id", cmd.ID, "command", cmd.Raw)
	return nil
}

// AddLine enqueues a single command line. Blank and comment lines are ignored.
func (e *Engine) AddLine(ec domain.ExecutionContext, raw string, cb domain.Callback) error {
	if !script.IsCommand(raw) {
		return nil
	}
	return e.Add(domain.NewCommand(ec, raw, cb))
}

// AddScript enqueues every command line of a script, skipping blank and comment lines.
func (e *Engine) AddScript(ec domain.ExecutionContext, lines []string) error {
	for _, line := range script.Filter(lines) {
		if err := e.Add(domain.NewCommand(ec, line, nil)); err != nil {
			return err
		}
	}
	return nil
}

// Start launches the worker. Calling it again while running is a no-op.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return domain.ErrEngineClosed
	}
	if e.started {
		return nil
	}
	e.started = true
	go e.loop()
	e.logger.Debug("worker started")
	return nil
}

// Stop discards every pending command. The command in flight, if any, runs to completion.
// The worker keeps running and accepts new commands afterwards.
// Callbacks of the discarded commands run on the caller with domain.ErrDiscarded.
func (e *Engine) Stop() {
	n := e.drop(e.discard())
	e.logger.Info("queue stopped", "discarded", n)
}

// Clear empties the queue like Stop and records the event in the history.
func (e *Engine) Clear() {
	e.drop(e.discard())
	e.recorder.mark("", script.Comment+" command queue emptied", "")
	e.logger.Info("queue cleared")
}

func (e *Engine) discard() []*domain.Command {
	e.mu.Lock()
	defer e.mu.Unlock()
	dropped := e.pending
	e.pending = nil
	return dropped
}

// drop settles commands that will never run so their waiters are released.
func (e *Engine) drop(cmds []*domain.Command) int {
	for _, cmd := range cmds {
		err := domain.NewCommandError(domain.ErrDiscarded, "Command '%s' discarded", cmd.Raw)
		cmd.Err = err
		e.callback(cmd, err)
	}
	return len(cmds)
}

// Close discards pending commands, terminates the worker and waits for it to exit,
// which includes letting the command in flight finish. It returns ctx.Err() if ctx
// expires first. Close is safe to call more than once.
func (e *Engine) Close(ctx context.Context) error {
	var dropped []*domain.Command
	e.mu.Lock()
	if !e.closed {
		e.closed = true
		dropped = e.pending
		e.pending = nil
		close(e.done)
	}
	started := e.started
	e.mu.Unlock()

	if n := e.drop(dropped); n > 0 {
		e.logger.Info("pending commands discarded on close", "discarded", n)
	}

	if !started {
		return nil
	}
	select {
	case <-e.exited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsEmpty reports whether no command is waiting.
func (e *Engine) IsEmpty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending) == 0
}

// IsProcessing reports whether a command is in flight.
func (e *Engine) IsProcessing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.processing
}

// Pending returns the number of waiting commands.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}

// Current returns the command in flight, or nil.
func (e *Engine) Current() *domain.Command {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// LastError returns the error of the most recent failed command, or nil.
func (e *Engine) LastError() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

// WaitIdle blocks until the queue is empty and nothing is in flight.
func (e *Engine) WaitIdle(ctx context.Context) error {
	idle := make(chan struct{}, 1)
	id := e.AddStatusListener(func(ev domain.StatusEvent) {
		if ev.Type == domain.EventIdle {
			select {
			case idle <- struct{}{}:
			default:
			}
		}
	})
	defer e.RemoveStatusListener(id)

	for {
		if e.idle() {
			return nil
		}
		select {
		case <-idle:
		case <-e.exited:
			if e.idle() {
				return nil
			}
			return domain.ErrEngineClosed
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (e *Engine) idle() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending) == 0 && !e.processing
}

// AddStatusListener registers l and returns an id for RemoveStatusListener.
func (e *Engine) AddStatusListener(l domain.StatusListener) int {
	e.listenersMu.Lock()
	defer e.listenersMu.Unlock()
	e.nextID++
	e.listeners[e.nextID] = l
	return e.nextID
}

// RemoveStatusListener unregisters a listener.
func (e *Engine) RemoveStatusListener(id int) {
	e.listenersMu.Lock()
	defer e.listenersMu.Unlock()
	delete(e.listeners, id)
}

// History returns every command that reached a handler since the engine was created,
// including those whose handler failed. Lines that fail to parse and unknown actions
// are left out of it and of the recording buffer; clear markers are included.
func (e *Engine) History() []string {
	return e.recorder.snapshot(false)
}

// StartRecording turns recording on. Earlier recorded entries are kept.
func (e *Engine) StartRecording() {
	e.recorder.start()
	e.logger.Info("recording started")
}

// StopRecording turns recording off.
func (e *Engine) StopRecording() {
	e.recorder.stop()
	e.logger.Info("recording stopped")
}

// IsRecording reports whether commands are currently recorded.
func (e *Engine) IsRecording() bool {
	return e.recorder.isRecording()
}

// HasRecording reports whether the recording buffer holds anything.
func (e *Engine) HasRecording() bool {
	return len(e.recorder.snapshot(true)) > 0
}

// Recorded returns the recording buffer.
func (e *Engine) Recorded() []string {
	return e.recorder.snapshot(true)
}

func (e *Engine) signal() {
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

func (e *Engine) loop() {
	defer close(e.exited)
	for {
		cmd, becameIdle, pending := e.next()
		if cmd != nil {
			e.run(cmd, pending)
			continue
		}
		if becameIdle {
			e.notify(domain.StatusEvent{Type: domain.EventIdle})
		}
		select {
		case <-e.wake:
		case <-e.done:
			e.finish()
			return
		}
	}
}

// next dequeues the head of the queue. When the queue is empty it clears the
// processing flag and reports whether that was a transition to idle.
func (e *Engine) next() (*domain.Command, bool, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || len(e.pending) == 0 {
		wasBusy := e.processing
		e.processing = false
		e.current = nil
		return nil, wasBusy && !e.closed, 0
	}
	cmd := e.pending[0]
	e.pending[0] = nil
	e.pending = e.pending[1:]
	e.processing = true
	e.current = cmd
	return cmd, false, len(e.pending)
}

func (e *Engine) finish() {
	e.mu.Lock()
	e.processing = false
	e.current = nil
	e.mu.Unlock()
	e.logger.Debug("worker exited")
}

func (e *Engine) run(cmd *domain.Command, pending int) {
	e.notify(domain.StatusEvent{Type: domain.EventRunning, Command: cmd, Pending: pending})

	start := time.Now()
	err := e.dispatch(cmd)
	elapsed := time.Since(start)

	cmd.Err = err
	if err != nil {
		e.mu.Lock()
		e.lastErr = err
		e.mu.Unlock()
		e.logger.Warn("command failed", "cmd_id", cmd.ID, "command", cmd.Raw, "err", err)
	} else {
		e.logger.Debug("command done", "cmd_id", cmd.ID, "command", cmd.Raw, "duration", elapsed)
	}

	if recordable(err) {
		e.recorder.add(cmd.Raw)
	}

	e.notify(domain.StatusEvent{Type: domain.EventFinished, Command: cmd, Err: err, Duration: elapsed, Pending: e.Pending()})
	e.callback(cmd, err)
}

// dispatch shields the worker from faults the processor failed to contain.
func (e *Engine) dispatch(cmd *domain.Command) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("command panicked", "cmd_id", cmd.ID, "command", cmd.Raw, "panic", r)
			err = domain.NewCommandError(domain.ErrHandlerFault, "Command '%s' failed: %v", cmd.Raw, r)
		}
	}()
	if e.processor == nil {
		return fmt.Errorf("no processor configured")
	}
	return e.processor.Process(e.ctx, cmd.Context, cmd.Raw)
}

func (e *Engine) callback(cmd *domain.Command, err error) {
	if cmd.Callback == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("command callback panicked", "cmd_id", cmd.ID, "panic", r)
		}
	}()
	cmd.Callback(cmd, err)
}

func (e *Engine) notify(ev domain.StatusEvent) {
	ev.Timestamp = time.Now()

	e.listenersMu.RLock()
	list := make([]domain.StatusListener, 0, len(e.listeners))
	for _, l := range e.listeners {
		list = append(list, l)
	}
	e.listenersMu.RUnlock()

	for _, l := range list {
		func() {
			defer func() {
				if r := recover(); r != nil {
					e.logger.Error("status listener panicked", "event", ev.Type, "panic", r)
				}
			}()
			l(ev)
		}()
	}
}

// recordable reports whether a command reached a handler: parse failures and
// unknown actions are kept out of the history.
func recordable(err error) bool {
	return !errors.Is(err, domain.ErrParse) && !errors.Is(err, domain.ErrUnknownAction)
}
