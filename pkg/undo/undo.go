// Package undo provides the shared undo/redo stack used by mutating handlers.
package undo

import (
	"fmt"
	"sync"

	"github.com/aretw0/vizscript/pkg/domain"
)

const (
	// DefaultMax is the default number of undo steps kept.
	DefaultMax = 100
	// Unlimited disables trimming of the undo list.
	Unlimited = -1
	// LabelMaxLength is the length beyond which PeekUndoLabel shortens labels.
	LabelMaxLength = 40
)

// EventType describes a change of the stacks.
type EventType string

const (
	EventAddUndo EventType = "add_undo"
	EventAddRedo EventType = "add_redo"
	EventUndo    EventType = "undo"
	EventRedo    EventType = "redo"
	EventClear   EventType = "clear"
)

// Event is passed to listeners after every change.
type Event struct {
	Type  EventType
	Point domain.UndoPoint
}

// Listener observes the manager.
type Listener func(Event)

// Manager implements domain.UndoManager.
type Manager struct {
	mu        sync.Mutex
	undo      []domain.UndoPoint
	redo      []domain.UndoPoint
	enabled   bool
	max       int
	listeners []Listener
}

// Option configures the Manager.
type Option func(*Manager)

// WithMax sets the maximum number of steps (Unlimited for no limit).
func WithMax(n int) Option {
	return func(m *Manager) {
		if n == Unlimited || n > 0 {
			m.max = n
		}
	}
}

// WithEnabled sets the initial enabled state.
func WithEnabled(enabled bool) Option {
	return func(m *Manager) {
		m.enabled = enabled
	}
}

// WithListener registers a listener.
func WithListener(l Listener) Option {
	return func(m *Manager) {
		m.listeners = append(m.listeners, l)
	}
}

// New creates an enabled Manager keeping DefaultMax steps.
func New(opts ...Option) *Manager {
	m := &Manager{enabled: true, max: DefaultMax}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) IsEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

func (m *Manager) SetEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = enabled
}

// Max returns the step limit.
func (m *Manager) Max() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.max
}

// SetMax changes the step limit. It is only allowed while both stacks are empty.
func (m *Manager) SetMax(n int) error {
	if n != Unlimited && n <= 0 {
		return fmt.Errorf("maximum number of undo steps must be >0 or %d for unlimited, got %d", Unlimited, n)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.undo) > 0 || len(m.redo) > 0 {
		return fmt.Errorf("cannot change undo step limit after undo/redo steps occurred")
	}
	m.max = n
	return nil
}

// AddUndo pushes p and clears the redo list.
func (m *Manager) AddUndo(p domain.UndoPoint) bool {
	return m.addUndo(p, false)
}

// AddUndoKeepRedo pushes p without touching the redo list.
func (m *Manager) AddUndoKeepRedo(p domain.UndoPoint) bool {
	return m.addUndo(p, true)
}

func (m *Manager) addUndo(p domain.UndoPoint, keepRedo bool) bool {
	m.mu.Lock()
	if !m.enabled {
		m.mu.Unlock()
		return false
	}
	m.undo = append(m.undo, p)
	if m.max > 0 {
		for len(m.undo) > 1 && len(m.undo)+len(m.redo) > m.max {
			m.undo = m.undo[1:]
		}
	}
	if !keepRedo {
		m.redo = nil
	}
	m.mu.Unlock()

	m.notify(Event{Type: EventAddUndo, Point: p})
	return true
}

// AddRedo pushes p onto the redo list.
func (m *Manager) AddRedo(p domain.UndoPoint) bool {
	m.mu.Lock()
	if !m.enabled {
		m.mu.Unlock()
		return false
	}
	m.redo = append(m.redo, p)
	m.mu.Unlock()

	m.notify(Event{Type: EventAddRedo, Point: p})
	return true
}

func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled && len(m.undo) > 0
}

// Undo pops the most recent undo point.
func (m *Manager) Undo() (domain.UndoPoint, bool) {
	m.mu.Lock()
	if !m.enabled || len(m.undo) == 0 {
		m.mu.Unlock()
		return domain.UndoPoint{}, false
	}
	p := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	m.mu.Unlock()

	m.notify(Event{Type: EventUndo, Point: p})
	return p, true
}

// PeekUndo returns the most recent undo point without removing it.
func (m *Manager) PeekUndo() (domain.UndoPoint, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.undo) == 0 {
		return domain.UndoPoint{}, false
	}
	return m.undo[len(m.undo)-1], true
}

// PeekUndoLabel returns the label of the next undo step, optionally shortened.
func (m *Manager) PeekUndoLabel(shorten bool) string {
	p, ok := m.PeekUndo()
	if !ok {
		return ""
	}
	return label(p.Label, shorten)
}

func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled && len(m.redo) > 0
}

// Redo pops the most recent redo point.
func (m *Manager) Redo() (domain.UndoPoint, bool) {
	m.mu.Lock()
	if !m.enabled || len(m.redo) == 0 {
		m.mu.Unlock()
		return domain.UndoPoint{}, false
	}
	p := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]
	m.mu.Unlock()

	m.notify(Event{Type: EventRedo, Point: p})
	return p, true
}

// PeekRedoLabel returns the label of the next redo step, optionally shortened.
func (m *Manager) PeekRedoLabel(shorten bool) string {
	m.mu.Lock()
	if len(m.redo) == 0 {
		m.mu.Unlock()
		return ""
	}
	p := m.redo[len(m.redo)-1]
	m.mu.Unlock()
	return label(p.Label, shorten)
}

// Len returns the sizes of the undo and redo lists.
func (m *Manager) Len() (undo, redo int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undo), len(m.redo)
}

// Clear empties both lists.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.undo = nil
	m.redo = nil
	m.mu.Unlock()
	m.notify(Event{Type: EventClear})
}

// AddListener registers a listener.
func (m *Manager) AddListener(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

func (m *Manager) notify(ev Event) {
	m.mu.Lock()
	list := make([]Listener, len(m.listeners))
	copy(list, m.listeners)
	m.mu.Unlock()
	for _, l := range list {
		l(ev)
	}
}

func label(s string, shorten bool) string {
	r := []rune(s)
	if shorten && len(r) > LabelMaxLength {
		return string(r[:LabelMaxLength]) + "..."
	}
	return s
}
