package domain

import (
	"time"

	"github.com/google/uuid"
)

// Callback is invoked once a command has been processed.
// err is nil on success, otherwise the same error recorded on the command.
type Callback func(cmd *Command, err error)

// Command is a single line of script text bound to the context it should run against.
type Command struct {
	ID         string
	Context    ExecutionContext
	Raw        string
	Callback   Callback
	Err        error
	EnqueuedAt time.Time
}

// NewCommand creates a command with a fresh ID.
func NewCommand(ec ExecutionContext, raw string, cb Callback) *Command {
	return &Command{
		ID:         uuid.NewString(),
		Context:    ec,
		Raw:        raw,
		Callback:   cb,
		EnqueuedAt: time.Now(),
	}
}

func (c *Command) String() string {
	return c.Raw
}
