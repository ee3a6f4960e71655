package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/vizscript/internal/logging"
	"github.com/aretw0/vizscript/pkg/domain"
	"github.com/aretw0/vizscript/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed lock survives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// Enqueuer accepts the lines of a script for execution.
type Enqueuer interface {
	AddScript(ec domain.ExecutionContext, lines []string) error
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Library orchestrates script access, ensuring safe concurrent operations.
// Lock entries are reference counted and dropped once unused.
type Library struct {
	store ports.ScriptStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Library.
type Option func(*Library)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(l *Library) {
		l.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(l *Library) {
		l.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Library.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Library) {
		l.logger = logger
	}
}

// New creates a Library over store.
func New(store ports.ScriptStore, opts ...Option) *Library {
	l := &Library{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// acquire gets or creates the entry for name and takes a reference.
// The caller locks entry.mu and calls release after unlocking.
func (l *Library) acquire(name string) *lockEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.locks[name]
	if !ok {
		entry = &lockEntry{}
		l.locks[name] = entry
	}
	entry.refs++
	return entry
}

func (l *Library) release(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.locks[name]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(l.locks, name)
	}
}

// activeLocks returns the number of live lock entries.
func (l *Library) activeLocks() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

// WithLock executes fn while holding the lock for the script.
func (l *Library) WithLock(ctx context.Context, name string, fn func(context.Context) error) error {
	entry := l.acquire(name)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		l.release(name)
	}()

	if l.locker != nil {
		unlock, err := l.locker.Lock(ctx, name, l.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				l.logger.Warn("failed to release distributed lock (will expire via TTL)",
					"script", name,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// Load retrieves a script.
func (l *Library) Load(ctx context.Context, name string) ([]string, error) {
	var lines []string
	err := l.WithLock(ctx, name, func(ctx context.Context) error {
		var err error
		lines, err = l.store.Load(ctx, name)
		return err
	})
	return lines, err
}

// Save replaces a script.
func (l *Library) Save(ctx context.Context, name string, lines []string) error {
	return l.WithLock(ctx, name, func(ctx context.Context) error {
		return l.store.Save(ctx, name, lines)
	})
}

// Append adds lines at the end of a script, creating it if needed.
// It is how a recording is turned into (or added to) a reusable script.
func (l *Library) Append(ctx context.Context, name string, lines []string) error {
	return l.WithLock(ctx, name, func(ctx context.Context) error {
		existing, err := l.store.Load(ctx, name)
		if err != nil && !errors.Is(err, domain.ErrScriptNotFound) {
			return fmt.Errorf("failed to load script for append: %w", err)
		}
		merged := make([]string, 0, len(existing)+len(lines))
		merged = append(merged, existing...)
		merged = append(merged, lines...)
		return l.store.Save(ctx, name, merged)
	})
}

// Delete removes a script.
func (l *Library) Delete(ctx context.Context, name string) error {
	return l.WithLock(ctx, name, func(ctx context.Context) error {
		return l.store.Delete(ctx, name)
	})
}

// List delegates to the store.
func (l *Library) List(ctx context.Context) ([]string, error) {
	return l.store.List(ctx)
}

// Enqueue loads a script and hands its command lines to q.
func (l *Library) Enqueue(ctx context.Context, q Enqueuer, ec domain.ExecutionContext, name string) error {
	lines, err := l.Load(ctx, name)
	if err != nil {
		return err
	}
	l.logger.Debug("enqueuing script", "script", name, "lines", len(lines))
	return q.AddScript(ec, lines)
}

// Store returns the underlying script store.
func (l *Library) Store() ports.ScriptStore {
	return l.store
}
