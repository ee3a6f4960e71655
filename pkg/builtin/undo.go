package builtin

import (
	"context"

	"github.com/aretw0/vizscript/pkg/domain"
	"github.com/aretw0/vizscript/pkg/handler"
)

// redoKeeper is implemented by undo managers that can push an undo point
// without discarding the redo list.
type redoKeeper interface {
	AddUndoKeepRedo(p domain.UndoPoint) bool
}

// Undo reverts the data manager to the last undo point.
type Undo struct {
	handler.Base
}

func NewUndo() *Undo {
	return &Undo{Base: handler.Base{
		Name:     "undo",
		Requires: []domain.Capability{domain.CapUndo, domain.CapDataManager},
		Help:     "Reverts the last undoable data change.",
	}}
}

func (h *Undo) Process(ctx context.Context, options []string) error {
	owner := h.Owner()
	u := owner.Undo()
	p, ok := u.Undo()
	if !ok {
		return h.Errorf("nothing to undo")
	}
	items, ok := p.Snapshot.([]domain.DataItem)
	if !ok {
		return h.Errorf("cannot restore '%s'", p.Label)
	}
	u.AddRedo(domain.UndoPoint{Snapshot: owner.Data().Items(), Label: p.Label})
	owner.Data().Restore(items)
	refresh(owner)
	return nil
}

// Redo re-applies the last undone change.
type Redo struct {
	handler.Base
}

func NewRedo() *Redo {
	return &Redo{Base: handler.Base{
		Name:     "redo",
		Requires: []domain.Capability{domain.CapUndo, domain.CapDataManager},
		Help:     "Re-applies the last undone data change.",
	}}
}

func (h *Redo) Process(ctx context.Context, options []string) error {
	owner := h.Owner()
	u := owner.Undo()
	p, ok := u.Redo()
	if !ok {
		return h.Errorf("nothing to redo")
	}
	items, ok := p.Snapshot.([]domain.DataItem)
	if !ok {
		return h.Errorf("cannot restore '%s'", p.Label)
	}
	current := domain.UndoPoint{Snapshot: owner.Data().Items(), Label: p.Label}
	if k, ok := u.(redoKeeper); ok {
		k.AddUndoKeepRedo(current)
	} else {
		u.AddUndo(current)
	}
	owner.Data().Restore(items)
	refresh(owner)
	return nil
}
