package handler_test

import (
	"context"
	"testing"

	"github.com/aretw0/vizscript/pkg/adapters/memory"
	"github.com/aretw0/vizscript/pkg/domain"
	"github.com/aretw0/vizscript/pkg/handler"
	"github.com/aretw0/vizscript/pkg/undo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snap struct {
	value any
	ok    bool
	calls int
}

func (s *snap) Snapshot() (any, bool) {
	s.calls++
	return s.value, s.ok
}

func TestMaybeSnapshot(t *testing.T) {
	u := undo.New()
	ws := memory.NewWorkspace(memory.WithUndo(u))

	s := &snap{value: 1, ok: true}
	assert.True(t, handler.MaybeSnapshot(ws, s, "first"))
	assert.Equal(t, "first", u.PeekUndoLabel(false))

	assert.False(t, handler.MaybeSnapshot(ws, &snap{ok: false}, "nothing"))
	assert.False(t, handler.MaybeSnapshot(nil, s, "no context"))
	assert.False(t, handler.MaybeSnapshot(ws, nil, "no snapshotter"))
}

func TestMaybeSnapshot_SkipsWithoutUndo(t *testing.T) {
	s := &snap{value: 1, ok: true}

	assert.False(t, handler.MaybeSnapshot(memory.NewWorkspace(), s, "x"))
	assert.Zero(t, s.calls, "no snapshot is taken without an undo manager")

	disabled := memory.NewWorkspace(memory.WithUndo(undo.New(undo.WithEnabled(false))))
	assert.False(t, handler.MaybeSnapshot(disabled, s, "x"))
	assert.Zero(t, s.calls, "no snapshot is taken while undo is disabled")
}

func TestBase_ParseOptions(t *testing.T) {
	var b handler.Base
	b.Bind(nil)

	positional := b.ParseOptions([]string{"csv:/a=b.csv", "id=iris", "plain", "=x", "limit=10"})
	assert.Equal(t, []string{"csv:/a=b.csv", "plain", "=x"}, positional)

	v, ok := b.Param("id")
	require.True(t, ok)
	assert.Equal(t, "iris", v)
}

func TestBase_Decode(t *testing.T) {
	b := handler.Base{Name: "connect"}
	b.Bind(nil)
	b.ParseOptions([]string{"user=ana", "readonly=1", "retries=3"})

	var opts struct {
		User     string `mapstructure:"user"`
		ReadOnly bool   `mapstructure:"readonly"`
		Retries  int    `mapstructure:"retries"`
	}
	require.NoError(t, b.Decode(&opts))
	assert.Equal(t, "ana", opts.User)
	assert.True(t, opts.ReadOnly)
	assert.Equal(t, 3, opts.Retries)

	b.Bind(nil)
	b.ParseOptions([]string{"colour=red"})
	err := b.Decode(&opts)
	assert.ErrorIs(t, err, domain.ErrInvalidOptions)
	assert.Contains(t, err.Error(), "connect:")
}

func TestFunc(t *testing.T) {
	ws := memory.NewWorkspace()
	var got domain.ExecutionContext
	f := handler.New("echo", "<text>", "Prints.", func(ctx context.Context, ec domain.ExecutionContext, options []string) error {
		got = ec
		return nil
	}, domain.CapSurface)

	assert.Equal(t, "echo", f.Action())
	assert.Equal(t, "<text>", f.Usage())
	assert.Equal(t, "Prints.", f.Description())
	assert.Equal(t, []domain.Capability{domain.CapSurface}, f.Requirements())

	f.Bind(ws)
	require.NoError(t, f.Process(context.Background(), nil))
	assert.Same(t, ws, got)
}
