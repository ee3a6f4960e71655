package domain

// UndoPoint is a captured snapshot plus a label, used to revert a mutating action.
// The snapshot is producer-defined and may be nil.
type UndoPoint struct {
	Snapshot any    `json:"-"`
	Label    string `json:"label"`
}

func (p UndoPoint) String() string {
	return p.Label
}
