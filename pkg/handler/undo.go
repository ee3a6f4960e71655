package handler

import "github.com/aretw0/vizscript/pkg/domain"

// Snapshotter is implemented by handlers that can capture the state they are about to mutate.
// The second return value is false when there is nothing to snapshot.
type Snapshotter interface {
	Snapshot() (any, bool)
}

// MaybeSnapshot pushes an undo point for the upcoming mutation.
// It is a no-op when the context has no undo manager, undo is disabled, or s
// produces no snapshot. It reports whether a point was stored.
func MaybeSnapshot(ec domain.ExecutionContext, s Snapshotter, label string) bool {
	if ec == nil || s == nil || !ec.Has(domain.CapUndo) {
		return false
	}
	undo := ec.Undo()
	if undo == nil || !undo.IsEnabled() {
		return false
	}
	snapshot, ok := s.Snapshot()
	if !ok {
		return false
	}
	return undo.AddUndo(domain.UndoPoint{Snapshot: snapshot, Label: label})
}
