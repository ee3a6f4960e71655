package domain

// Capability names a precondition that the ExecutionContext must satisfy before a handler may run.
// The set is closed: KnownCapabilities lists every tag the engine knows how to verify.
type Capability string

const (
	// CapSurface requires a visualization surface (plot, panel, view).
	CapSurface Capability = "surface"
	// CapDataManager requires the container manager holding the loaded data.
	CapDataManager Capability = "data-manager"
	// CapUndo requires an undo manager.
	CapUndo Capability = "undo"
	// CapConnection requires a live connection handle (datastore, remote service).
	CapConnection Capability = "connection"
)

// KnownCapabilities returns every capability tag the engine can check, in a stable order.
func KnownCapabilities() []Capability {
	return []Capability{CapConnection, CapDataManager, CapSurface, CapUndo}
}

// Known reports whether c belongs to the closed capability set.
func (c Capability) Known() bool {
	switch c {
	case CapSurface, CapDataManager, CapUndo, CapConnection:
		return true
	}
	return false
}

func (c Capability) String() string {
	return string(c)
}
