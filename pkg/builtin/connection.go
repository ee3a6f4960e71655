package builtin

import (
	"context"

	"github.com/aretw0/vizscript/pkg/domain"
	"github.com/aretw0/vizscript/pkg/handler"
)

// Connect opens the connection handle of the context.
// It has no requirement: the connection capability is only met once connected.
type Connect struct {
	handler.Base
}

type connectOptions struct {
	User     string `mapstructure:"user"`
	ReadOnly bool   `mapstructure:"readonly"`
}

func NewConnect() *Connect {
	return &Connect{Base: handler.Base{
		Name:   "connect",
		Params: "<url> [user=<name>] [readonly=true|false]",
		Help:   "Connects to the datastore at the given URL. An open connection is replaced.",
	}}
}

func (h *Connect) Process(ctx context.Context, options []string) error {
	conn := h.Owner().Connection()
	if conn == nil {
		return h.Errorf("no connection handle available")
	}
	positional := h.ParseOptions(options)
	if len(positional) != 1 {
		return h.Errorf("expected exactly one URL, got %d", len(positional))
	}
	var opts connectOptions
	if err := h.Decode(&opts); err != nil {
		return err
	}

	if conn.IsConnected() {
		if err := conn.Disconnect(); err != nil {
			return h.Errorf("failed to close %s: %v", conn.Name(), err)
		}
	}
	err := conn.Connect(domain.ConnectParams{
		URL:      positional[0],
		User:     opts.User,
		ReadOnly: opts.ReadOnly,
	})
	if err != nil {
		return h.Errorf("failed to connect to '%s': %v", positional[0], err)
	}
	return nil
}

// Disconnect closes the connection.
type Disconnect struct {
	handler.Base
}

func NewDisconnect() *Disconnect {
	return &Disconnect{Base: handler.Base{
		Name:     "disconnect",
		Requires: []domain.Capability{domain.CapConnection},
		Help:     "Closes the datastore connection.",
	}}
}

// UnmetMessage replaces the generic message, the handle exists but is closed.
func (h *Disconnect) UnmetMessage(c domain.Capability) string {
	if c == domain.CapConnection {
		return "Not connected!"
	}
	return ""
}

func (h *Disconnect) Process(ctx context.Context, options []string) error {
	conn := h.Owner().Connection()
	if err := conn.Disconnect(); err != nil {
		return h.Errorf("failed to close %s: %v", conn.Name(), err)
	}
	return nil
}
