package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/vizscript/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Handler is a single named command implementation.
type Handler interface {
	// Action is the unique name the handler is registered under.
	Action() string
	// Requirements lists the capabilities that must be available, checked in order.
	Requirements() []domain.Capability
	// Usage is a one-line parameter description, e.g. "<url> [user=<name>]".
	Usage() string
	// Description is the full help text.
	Description() string
	// Bind attaches the handler to the owner of the current invocation. nil unbinds.
	Bind(ec domain.ExecutionContext)
	// Process runs the action. A non-nil error is reported to the user verbatim.
	Process(ctx context.Context, options []string) error
}

// RequirementMessenger lets a handler replace the generic unmet-requirement message.
type RequirementMessenger interface {
	UnmetMessage(c domain.Capability) string
}

// Base carries the metadata and per-invocation state shared by handlers.
type Base struct {
	Name     string
	Requires []domain.Capability
	Params   string
	Help     string

	owner  domain.ExecutionContext
	params map[string]any
}

func (b *Base) Action() string {
	return b.Name
}

func (b *Base) Requirements() []domain.Capability {
	return b.Requires
}

func (b *Base) Usage() string {
	return b.Params
}

func (b *Base) Description() string {
	return b.Help
}

// Bind sets the owner and resets the parameter map.
func (b *Base) Bind(ec domain.ExecutionContext) {
	b.owner = ec
	b.params = make(map[string]any)
}

// Owner returns the context of the running invocation, nil outside of Process.
func (b *Base) Owner() domain.ExecutionContext {
	return b.owner
}

// SetParam stores a transient parameter for the current invocation.
func (b *Base) SetParam(key string, value any) {
	if b.params == nil {
		b.params = make(map[string]any)
	}
	b.params[key] = value
}

// Param returns a transient parameter.
func (b *Base) Param(key string) (any, bool) {
	v, ok := b.params[key]
	return v, ok
}

// ParseOptions moves every key=value option into the parameter map and
// returns the remaining positional options in their original order.
func (b *Base) ParseOptions(options []string) []string {
	var positional []string
	for _, opt := range options {
		key, value, found := strings.Cut(opt, "=")
		if !found || key == "" || strings.ContainsAny(key, " /:") {
			positional = append(positional, opt)
			continue
		}
		b.SetParam(key, value)
	}
	return positional
}

// Decode copies the parameter map into out using weakly typed decoding,
// so "true" and "3" land in bool and int fields.
func (b *Base) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(b.params); err != nil {
		return domain.NewCommandError(domain.ErrInvalidOptions, "%s: %v", b.Name, err)
	}
	return nil
}

// AddUndoPoint runs the undo hook for s against the current owner.
func (b *Base) AddUndoPoint(s Snapshotter, label string) bool {
	return MaybeSnapshot(b.owner, s, label)
}

// Errorf builds a user-facing error prefixed with the action name.
func (b *Base) Errorf(format string, args ...any) error {
	return domain.NewCommandError(domain.ErrInvalidOptions, "%s: %s", b.Name, fmt.Sprintf(format, args...))
}

// ProcessFunc is the body of a Func handler.
type ProcessFunc func(ctx context.Context, ec domain.ExecutionContext, options []string) error

// Func adapts a closure to the Handler interface.
type Func struct {
	Base
	fn ProcessFunc
}

// New builds a Func handler.
func New(action, usage, description string, fn ProcessFunc, requires ...domain.Capability) *Func {
	return &Func{
		Base: Base{
			Name:     action,
			Requires: requires,
			Params:   usage,
			Help:     description,
		},
		fn: fn,
	}
}

func (f *Func) Process(ctx context.Context, options []string) error {
	return f.fn(ctx, f.Owner(), options)
}
