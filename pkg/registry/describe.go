package registry

import (
	"sort"
	"strings"

	"github.com/aretw0/vizscript/pkg/handler"
	"github.com/muesli/reflow/wordwrap"
)

// HelpWidth is the widest line Describe emits.
const HelpWidth = 72

// DescriptionIndent prefixes every description line in Describe.
const DescriptionIndent = "    "

// Group is a set of handlers sharing their first requirement.
type Group struct {
	Name     string
	Handlers []handler.Handler
}

// Groups returns the handlers grouped by their first declared requirement
// (GeneralGroup when there is none). Groups are sorted by name, handlers by action.
func (r *Registry) Groups() []Group {
	byName := make(map[string][]handler.Handler)
	for _, h := range r.Handlers() {
		name := GeneralGroup
		if reqs := h.Requirements(); len(reqs) > 0 {
			name = string(reqs[0])
		}
		byName[name] = append(byName[name], h)
	}

	groups := make([]Group, 0, len(byName))
	for name, list := range byName {
		sort.Slice(list, func(i, j int) bool {
			return list[i].Action() < list[j].Action()
		})
		groups = append(groups, Group{Name: name, Handlers: list})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Name < groups[j].Name
	})
	return groups
}

// Describe builds the human-readable help text.
func (r *Registry) Describe() string {
	var sb strings.Builder
	for i, g := range r.Groups() {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("== " + g.Name + " ==\n")
		for _, h := range g.Handlers {
			sb.WriteString("\n")
			sb.WriteString(Synopsis(h))
			sb.WriteString("\n")
			for _, line := range WrapDescription(h.Description()) {
				sb.WriteString(DescriptionIndent + line + "\n")
			}
		}
	}
	return sb.String()
}

// Synopsis returns the action followed by its parameter description.
func Synopsis(h handler.Handler) string {
	return strings.TrimSpace(h.Action() + " " + h.Usage())
}

// WrapDescription word-wraps text so that each line, once indented by
// DescriptionIndent, fits in HelpWidth. Words longer than that are not split.
func WrapDescription(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return strings.Split(wordwrap.String(text, HelpWidth-len(DescriptionIndent)), "\n")
}
