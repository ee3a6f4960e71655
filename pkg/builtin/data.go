package builtin

import (
	"context"
	"path"
	"strings"

	"github.com/aretw0/vizscript/pkg/domain"
	"github.com/aretw0/vizscript/pkg/handler"
)

// ClearData removes every data container.
type ClearData struct {
	handler.Base
}

func NewClearData() *ClearData {
	return &ClearData{Base: handler.Base{
		Name:     "clear-data",
		Requires: []domain.Capability{domain.CapDataManager},
		Help:     "Removes all the data containers from the data manager.",
	}}
}

func (h *ClearData) Snapshot() (any, bool) {
	return snapshotItems(h.Owner())
}

func (h *ClearData) Process(ctx context.Context, options []string) error {
	owner := h.Owner()
	h.AddUndoPoint(h, "Clearing data")
	owner.Data().Clear()
	refresh(owner)
	return nil
}

// AddDataFile loads a data file into the data manager.
type AddDataFile struct {
	handler.Base
}

type addDataOptions struct {
	ID string `mapstructure:"id"`
}

func NewAddDataFile() *AddDataFile {
	return &AddDataFile{Base: handler.Base{
		Name:     "add-data-file",
		Requires: []domain.Capability{domain.CapDataManager},
		Params:   "<reader:file> [id=<name>]",
		Help: "Adds the data file to the data manager. The file is described as reader and path " +
			"separated by a colon, e.g. csv:/data/iris.csv. The container is named after the file " +
			"unless id is given.",
	}}
}

func (h *AddDataFile) Snapshot() (any, bool) {
	return snapshotItems(h.Owner())
}

func (h *AddDataFile) Process(ctx context.Context, options []string) error {
	positional := h.ParseOptions(options)
	if len(positional) != 1 {
		return h.Errorf("expected exactly one file, got %d", len(positional))
	}
	var opts addDataOptions
	if err := h.Decode(&opts); err != nil {
		return err
	}

	source := positional[0]
	reader, file, found := strings.Cut(source, ":")
	if !found || reader == "" || file == "" {
		return h.Errorf("'%s' is not of the form <reader:file>", source)
	}
	if opts.ID == "" {
		opts.ID = path.Base(strings.ReplaceAll(file, `\`, "/"))
	}

	owner := h.Owner()
	h.AddUndoPoint(h, "Adding data: "+source)
	owner.Data().Add(domain.DataItem{
		ID:     opts.ID,
		Source: source,
		Meta:   map[string]string{"reader": reader, "file": file},
	})
	refresh(owner)
	return nil
}

func snapshotItems(ec domain.ExecutionContext) (any, bool) {
	if ec == nil || ec.Data() == nil {
		return nil, false
	}
	return ec.Data().Items(), true
}

// refresh repaints the surface when there is one.
func refresh(ec domain.ExecutionContext) {
	if ec.Has(domain.CapSurface) && ec.Surface() != nil {
		ec.Surface().Refresh()
	}
}
