package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/vizscript/pkg/domain"
)

// Store implements ports.ScriptStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string][]string
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]string),
	}
}

// Save stores a copy of lines.
func (s *Store) Save(ctx context.Context, name string, lines []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = clone(lines)
	return nil
}

// Load returns a copy so callers can't mutate the stored script.
func (s *Store) Load(ctx context.Context, name string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines, ok := s.data[name]
	if !ok {
		return nil, domain.ErrScriptNotFound
	}
	return clone(lines), nil
}

// Delete removes the script.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the script names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func clone(lines []string) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}
