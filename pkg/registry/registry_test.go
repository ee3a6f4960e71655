package registry_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/aretw0/vizscript/internal/logging"
	"github.com/aretw0/vizscript/pkg/domain"
	"github.com/aretw0/vizscript/pkg/handler"
	"github.com/aretw0/vizscript/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(context.Context, domain.ExecutionContext, []string) error { return nil }

func TestRegistry_FirstRegistrationWins(t *testing.T) {
	var logs bytes.Buffer
	reg := registry.New(registry.WithLogger(logging.NewWithWriter(&logs, slog.LevelDebug)))

	first := handler.New("foo", "", "first", noop)
	second := handler.New("foo", "", "second", noop)

	require.NoError(t, reg.Register(first))
	require.NoError(t, reg.Register(second))

	h, ok := reg.Get("foo")
	require.True(t, ok)
	assert.Same(t, first, h)
	assert.Equal(t, 1, reg.Len())
	assert.Contains(t, logs.String(), "duplicate action registration")
	assert.Contains(t, logs.String(), "action=foo")
}

func TestRegistry_Strict(t *testing.T) {
	_, err := registry.Build([]handler.Handler{
		handler.New("foo", "", "", noop),
		handler.New("foo", "", "", noop),
	}, registry.WithStrict(true))
	assert.ErrorIs(t, err, domain.ErrDuplicateAction)
}

func TestRegistry_RejectsEmptyAction(t *testing.T) {
	assert.Error(t, registry.New().Register(handler.New("", "", "", noop)))
}

func TestRegistry_Lookup(t *testing.T) {
	reg, err := registry.Build([]handler.Handler{
		handler.New("zeta", "", "", noop),
		handler.New("alpha", "", "", noop),
	})
	require.NoError(t, err)

	_, ok := reg.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, []string{"alpha", "zeta"}, reg.Actions())

	hs := reg.Handlers()
	require.Len(t, hs, 2)
	assert.Equal(t, "zeta", hs[0].Action(), "Handlers keeps registration order")
}

func TestRegistry_Describe(t *testing.T) {
	long := strings.Repeat("lorem ipsum ", 12)
	reg, err := registry.Build([]handler.Handler{
		handler.New("undo", "", "Reverts.", noop, domain.CapUndo),
		handler.New("echo", "<text>", "Prints the text.", noop),
		handler.New("add", "<file>", long, noop, domain.CapDataManager),
		handler.New("clear", "", "Clears.", noop, domain.CapDataManager, domain.CapUndo),
	})
	require.NoError(t, err)

	groups := reg.Groups()
	require.Len(t, groups, 3)
	assert.Equal(t, "data-manager", groups[0].Name)
	assert.Equal(t, "general", groups[1].Name)
	assert.Equal(t, "undo", groups[2].Name)
	assert.Equal(t, "add", groups[0].Handlers[0].Action())
	assert.Equal(t, "clear", groups[0].Handlers[1].Action())

	help := reg.Describe()
	assert.True(t, strings.HasPrefix(help, "== data-manager ==\n\nadd <file>\n    lorem"))
	assert.Contains(t, help, "\n== general ==\n\necho <text>\n    Prints the text.\n")

	for _, line := range strings.Split(help, "\n") {
		assert.LessOrEqual(t, len(line), registry.HelpWidth, line)
	}
}

func TestWrapDescription(t *testing.T) {
	assert.Nil(t, registry.WrapDescription("   "))
	lines := registry.WrapDescription(strings.Repeat("word ", 30))
	assert.Greater(t, len(lines), 1)

	// "a " plus the long word is 69 wide: it fits HelpWidth alone but not once indented.
	lines = registry.WrapDescription("a " + strings.Repeat("b", 67) + " c")
	for _, line := range lines {
		assert.LessOrEqual(t, len(registry.DescriptionIndent+line), registry.HelpWidth, line)
	}
	assert.Equal(t, []string{"a", strings.Repeat("b", 67), "c"}, lines)
}
