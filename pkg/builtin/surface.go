package builtin

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/vizscript/pkg/domain"
	"github.com/aretw0/vizscript/pkg/handler"
)

// SetTitle changes the title of the surface.
type SetTitle struct {
	handler.Base
}

func NewSetTitle() *SetTitle {
	return &SetTitle{Base: handler.Base{
		Name:     "set-title",
		Requires: []domain.Capability{domain.CapSurface},
		Params:   "<text>",
		Help:     "Sets the title of the surface. Quote the text to keep multiple spaces.",
	}}
}

func (h *SetTitle) Process(ctx context.Context, options []string) error {
	h.Owner().Surface().SetTitle(strings.Join(options, " "))
	return nil
}

// Refresh repaints the surface.
type Refresh struct {
	handler.Base
}

func NewRefresh() *Refresh {
	return &Refresh{Base: handler.Base{
		Name:     "refresh",
		Requires: []domain.Capability{domain.CapSurface},
		Help:     "Repaints the surface.",
	}}
}

func (h *Refresh) Process(ctx context.Context, options []string) error {
	h.Owner().Surface().Refresh()
	return nil
}

// NewEcho builds the echo handler printing its options to w.
func NewEcho(w io.Writer) handler.Handler {
	return handler.New("echo", "<text>", "Prints the text.",
		func(ctx context.Context, ec domain.ExecutionContext, options []string) error {
			_, err := fmt.Fprintln(w, strings.Join(options, " "))
			return err
		})
}
