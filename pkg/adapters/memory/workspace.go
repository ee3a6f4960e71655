package memory

import (
	"errors"
	"sync"

	"github.com/aretw0/vizscript/pkg/domain"
)

// Workspace is an in-memory domain.ExecutionContext.
// It backs the CLI and the tests: a titled surface, a data store, an optional
// undo manager and a connection handle.
type Workspace struct {
	mu       sync.RWMutex
	surface  *Surface
	data     *DataStore
	undo     domain.UndoManager
	conn     *Connection
	disabled map[domain.Capability]bool
}

// WorkspaceOption configures a Workspace.
type WorkspaceOption func(*Workspace)

// WithUndo attaches an undo manager.
func WithUndo(u domain.UndoManager) WorkspaceOption {
	return func(w *Workspace) {
		w.undo = u
	}
}

// WithoutSurface builds a workspace that has no surface.
func WithoutSurface() WorkspaceOption {
	return func(w *Workspace) {
		w.surface = nil
	}
}

// WithoutData builds a workspace that has no data manager.
func WithoutData() WorkspaceOption {
	return func(w *Workspace) {
		w.data = nil
	}
}

// WithConnectionName sets the name reported by the connection handle.
func WithConnectionName(name string) WorkspaceOption {
	return func(w *Workspace) {
		w.conn.name = name
	}
}

// NewWorkspace creates a workspace with a surface, a data store and a disconnected connection.
func NewWorkspace(opts ...WorkspaceOption) *Workspace {
	w := &Workspace{
		surface:  &Surface{},
		data:     &DataStore{},
		conn:     &Connection{name: "memory"},
		disabled: make(map[domain.Capability]bool),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Has reports whether the component behind c exists and was not disabled.
func (w *Workspace) Has(c domain.Capability) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.disabled[c] {
		return false
	}
	switch c {
	case domain.CapSurface:
		return w.surface != nil
	case domain.CapDataManager:
		return w.data != nil
	case domain.CapUndo:
		return w.undo != nil
	case domain.CapConnection:
		return w.conn != nil
	}
	return false
}

// SetAvailable toggles a capability without removing the component.
func (w *Workspace) SetAvailable(c domain.Capability, available bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if available {
		delete(w.disabled, c)
		return
	}
	w.disabled[c] = true
}

func (w *Workspace) Surface() domain.Surface {
	if w.surface == nil {
		return nil
	}
	return w.surface
}

func (w *Workspace) Data() domain.DataManager {
	if w.data == nil {
		return nil
	}
	return w.data
}

func (w *Workspace) Undo() domain.UndoManager {
	return w.undo
}

func (w *Workspace) Connection() domain.Connection {
	if w.conn == nil {
		return nil
	}
	return w.conn
}

// Store returns the concrete data store, nil if the workspace has none.
func (w *Workspace) Store() *DataStore {
	return w.data
}

// View returns the concrete surface, nil if the workspace has none.
func (w *Workspace) View() *Surface {
	return w.surface
}

// Surface is an in-memory domain.Surface counting refresh requests.
type Surface struct {
	mu        sync.Mutex
	title     string
	refreshes int
}

func (s *Surface) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title
}

func (s *Surface) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = title
}

func (s *Surface) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshes++
}

// Refreshes returns how many times Refresh was called.
func (s *Surface) Refreshes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshes
}

// DataStore is an in-memory domain.DataManager.
type DataStore struct {
	mu     sync.Mutex
	items  []domain.DataItem
	clears int
}

func (d *DataStore) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.items = nil
	d.clears++
}

func (d *DataStore) Add(item domain.DataItem) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.items = append(d.items, item)
}

// Items returns a copy of the current items.
func (d *DataStore) Items() []domain.DataItem {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]domain.DataItem, len(d.items))
	copy(out, d.items)
	return out
}

func (d *DataStore) Restore(items []domain.DataItem) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.items = make([]domain.DataItem, len(items))
	copy(d.items, items)
}

// Clears returns how many times Clear was called.
func (d *DataStore) Clears() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.clears
}

// ErrMissingURL is returned by Connect without a URL.
var ErrMissingURL = errors.New("connection url is required")

// Connection is an in-memory domain.Connection.
type Connection struct {
	mu        sync.Mutex
	name      string
	connected bool
	params    domain.ConnectParams
}

func (c *Connection) Name() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name
}

func (c *Connection) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

func (c *Connection) Connect(params domain.ConnectParams) error {
	if params.URL == "" {
		return ErrMissingURL
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.params = params
	c.connected = true
	return nil
}

func (c *Connection) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = false
	c.params = domain.ConnectParams{}
	return nil
}

// Params returns the parameters of the open connection.
func (c *Connection) Params() domain.ConnectParams {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params
}
