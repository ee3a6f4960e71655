package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/vizscript/pkg/registry"
	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRenderer returns a function that renders markdown using glamour.
// The style follows the terminal background; when out is not a terminal
// the text is returned unchanged.
func NewRenderer(out *os.File) func(string) (string, error) {
	if !IsTerminal(out) {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}

	width := registry.HelpWidth + 8
	if w, _, err := term.GetSize(int(out.Fd())); err == nil && w > 0 && w < width {
		width = w
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}
	return r.Render
}

// HelpMarkdown renders the registry help as markdown: one section per
// capability group, one bullet per action.
func HelpMarkdown(reg *registry.Registry) string {
	var sb strings.Builder
	sb.WriteString("# Actions\n")
	for _, g := range reg.Groups() {
		fmt.Fprintf(&sb, "\n## %s\n\n", g.Name)
		for _, h := range g.Handlers {
			fmt.Fprintf(&sb, "- `%s`", registry.Synopsis(h))
			if desc := strings.TrimSpace(h.Description()); desc != "" {
				sb.WriteString("  \n  " + strings.Join(strings.Fields(desc), " "))
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
