package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownAction is returned when no handler is registered for the action.
	ErrUnknownAction = errors.New("unknown action")

	// ErrUnmetRequirement is returned when a handler requirement is not available in the context.
	ErrUnmetRequirement = errors.New("unmet requirement")

	// ErrUnsupportedCapability is returned in strict mode when a handler declares a capability outside the known set.
	ErrUnsupportedCapability = errors.New("unsupported capability")

	// ErrParse is returned when a command line cannot be tokenized.
	ErrParse = errors.New("malformed command")

	// ErrHandlerFault is returned when a handler panics.
	ErrHandlerFault = errors.New("handler fault")

	// ErrDuplicateAction is returned by a strict registry when two handlers share an action name.
	ErrDuplicateAction = errors.New("duplicate action")

	// ErrScriptNotFound is returned when a script name cannot be found in the store.
	ErrScriptNotFound = errors.New("script not found")

	// ErrEngineClosed is returned when commands are added to a closed engine.
	ErrEngineClosed = errors.New("engine closed")

	// ErrDiscarded is reported to the callback of a command dropped by Stop, Clear or Close.
	ErrDiscarded = errors.New("command discarded")

	// ErrInvalidOptions is returned by handlers receiving unusable options.
	ErrInvalidOptions = errors.New("invalid options")
)

// CommandError is the user-facing outcome of a failed command.
// Error returns the message verbatim; Unwrap exposes the category for errors.Is.
type CommandError struct {
	Kind error
	Msg  string
}

// NewCommandError formats a user-facing message of the given kind.
func NewCommandError(kind error, format string, args ...any) *CommandError {
	return &CommandError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func (e *CommandError) Error() string {
	return e.Msg
}

func (e *CommandError) Unwrap() error {
	return e.Kind
}
