package domain

// ExecutionContext is the bundle of objects a handler may need while it runs.
// It is provided by the host application; the engine only borrows it for the duration of one dispatch.
type ExecutionContext interface {
	// Has reports whether the capability is currently available.
	Has(c Capability) bool

	Surface() Surface
	Data() DataManager
	Undo() UndoManager
	Connection() Connection
}

// Surface is the visualization the commands act upon.
type Surface interface {
	Title() string
	SetTitle(title string)
	// Refresh requests a repaint after the underlying data changed.
	Refresh()
}

// DataItem is one container managed by a DataManager.
type DataItem struct {
	ID     string            `json:"id" yaml:"id" mapstructure:"id"`
	Source string            `json:"source" yaml:"source" mapstructure:"source"`
	Meta   map[string]string `json:"meta,omitempty" yaml:"meta,omitempty" mapstructure:"meta"`
}

// DataManager holds the data containers displayed by the surface.
type DataManager interface {
	Clear()
	Add(item DataItem)
	Items() []DataItem
	// Restore replaces the current content, used when reverting an undo point.
	Restore(items []DataItem)
}

// UndoManager is the shared undo stack.
type UndoManager interface {
	IsEnabled() bool
	// AddUndo pushes the point and reports whether it was stored.
	AddUndo(p UndoPoint) bool
	// AddRedo pushes a point onto the redo list.
	AddRedo(p UndoPoint) bool
	CanUndo() bool
	Undo() (UndoPoint, bool)
	CanRedo() bool
	Redo() (UndoPoint, bool)
}

// ConnectParams describes how a Connection should be opened.
type ConnectParams struct {
	URL      string `json:"url" yaml:"url" mapstructure:"url"`
	User     string `json:"user,omitempty" yaml:"user,omitempty" mapstructure:"user"`
	ReadOnly bool   `json:"read_only,omitempty" yaml:"read_only,omitempty" mapstructure:"readonly"`
}

// Connection is the handle to an external datastore.
type Connection interface {
	Name() string
	IsConnected() bool
	Connect(params ConnectParams) error
	Disconnect() error
}
