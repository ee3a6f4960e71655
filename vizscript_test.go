package vizscript_test

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/vizscript"
	"github.com/aretw0/vizscript/pkg/adapters/memory"
	"github.com/aretw0/vizscript/pkg/domain"
	"github.com/aretw0/vizscript/pkg/handler"
	"github.com/aretw0/vizscript/pkg/undo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusRecorder struct {
	mu     sync.Mutex
	events []domain.StatusEvent
}

func (r *statusRecorder) listen(ev domain.StatusEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *statusRecorder) count(t domain.EventType) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func newEngine(t *testing.T, ec domain.ExecutionContext, opts ...vizscript.Option) *vizscript.Engine {
	t.Helper()
	eng, err := vizscript.New(ec, opts...)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		assert.NoError(t, eng.Close(ctx))
	})
	return eng
}

func TestEngine_ClearThenAddData(t *testing.T) {
	ws := memory.NewWorkspace()
	ws.Data().Add(domain.DataItem{ID: "stale", Source: "csv:stale.csv"})

	idle := make(chan struct{}, 4)
	rec := &statusRecorder{}
	eng := newEngine(t, ws, vizscript.WithManualStart(), vizscript.WithStatusListener(func(ev domain.StatusEvent) {
		rec.listen(ev)
		if ev.Type == domain.EventIdle {
			idle <- struct{}{}
		}
	}))

	require.NoError(t, eng.Submit("clear-data", nil))
	require.NoError(t, eng.Submit(`add-data-file "csv:/tmp/iris.csv"`, nil))
	require.NoError(t, eng.Start())

	select {
	case <-idle:
	case <-time.After(5 * time.Second):
		t.Fatal("no idle notification")
	}

	assert.Equal(t, 1, ws.Store().Clears())
	items := ws.Data().Items()
	require.Len(t, items, 1)
	assert.Equal(t, "iris.csv", items[0].ID)
	assert.Equal(t, "csv:/tmp/iris.csv", items[0].Source)
	assert.Equal(t, 2, rec.count(domain.EventFinished))
	assert.Equal(t, 1, rec.count(domain.EventIdle))
}

func TestEngine_DuplicateActionFirstWins(t *testing.T) {
	var calls []string
	first := handler.New("foo", "", "first", func(_ context.Context, _ domain.ExecutionContext, options []string) error {
		calls = append(calls, "first "+strings.Join(options, " "))
		return nil
	})
	second := handler.New("foo", "", "second", func(_ context.Context, _ domain.ExecutionContext, options []string) error {
		calls = append(calls, "second "+strings.Join(options, " "))
		return nil
	})

	eng := newEngine(t, memory.NewWorkspace(), vizscript.WithHandlers(first, second))
	require.NoError(t, eng.Exec(context.Background(), "foo x"))
	assert.Equal(t, []string{"first x"}, calls)
}

func TestEngine_StrictRegistryRejectsDuplicates(t *testing.T) {
	h := handler.New("clear-data", "", "shadow", func(context.Context, domain.ExecutionContext, []string) error { return nil })
	h2 := handler.New("clear-data", "", "shadow", func(context.Context, domain.ExecutionContext, []string) error { return nil })

	_, err := vizscript.New(memory.NewWorkspace(), vizscript.WithoutBuiltins(), vizscript.WithHandlers(h, h2), vizscript.WithStrictRegistry(true))
	assert.ErrorIs(t, err, domain.ErrDuplicateAction)
}

func TestEngine_CustomHandlerShadowsBuiltin(t *testing.T) {
	called := false
	h := handler.New("clear-data", "", "shadow", func(context.Context, domain.ExecutionContext, []string) error {
		called = true
		return nil
	})
	ws := memory.NewWorkspace()
	ws.Data().Add(domain.DataItem{ID: "keep"})

	eng := newEngine(t, ws, vizscript.WithHandlers(h))
	require.NoError(t, eng.Exec(context.Background(), "clear-data"))
	assert.True(t, called)
	assert.Len(t, ws.Data().Items(), 1)
}

func TestEngine_ExecErrors(t *testing.T) {
	ws := memory.NewWorkspace(memory.WithoutData())
	eng := newEngine(t, ws)
	ctx := context.Background()

	err := eng.Exec(ctx, "plot-everything now")
	assert.ErrorIs(t, err, domain.ErrUnknownAction)
	assert.EqualError(t, err, "dispatcher: Unknown action 'plot-everything'!")

	err = eng.Exec(ctx, "clear-data")
	assert.ErrorIs(t, err, domain.ErrUnmetRequirement)
	assert.EqualError(t, err, "No data-manager available!")

	err = eng.Exec(ctx, `set-title "unterminated`)
	assert.ErrorIs(t, err, domain.ErrParse)

	assert.NoError(t, eng.Exec(ctx, "# just a comment"))
	assert.ErrorIs(t, eng.Queue().LastError(), domain.ErrParse)
}

func TestEngine_RunJoinsErrors(t *testing.T) {
	var out bytes.Buffer
	eng := newEngine(t, memory.NewWorkspace(), vizscript.WithOutput(&out))

	err := eng.Run(context.Background(), []string{"echo one", "nope", "echo two", "disconnect"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownAction)
	assert.ErrorIs(t, err, domain.ErrUnmetRequirement)
	assert.Equal(t, "one\ntwo\n", out.String())
}

func TestEngine_UndoRedo(t *testing.T) {
	ws := memory.NewWorkspace(memory.WithUndo(undo.New()))
	eng := newEngine(t, ws)
	ctx := context.Background()

	require.NoError(t, eng.Run(ctx, []string{
		"add-data-file csv:a.csv",
		"add-data-file csv:b.csv",
	}))
	require.Len(t, ws.Data().Items(), 2)

	require.NoError(t, eng.Exec(ctx, "undo"))
	assert.Len(t, ws.Data().Items(), 1)

	require.NoError(t, eng.Exec(ctx, "redo"))
	assert.Len(t, ws.Data().Items(), 2)

	require.NoError(t, eng.Exec(ctx, "clear-data"))
	assert.Empty(t, ws.Data().Items())
	require.NoError(t, eng.Exec(ctx, "undo"))
	assert.Len(t, ws.Data().Items(), 2)
}

func TestEngine_UndoWithoutManager(t *testing.T) {
	ws := memory.NewWorkspace()
	eng := newEngine(t, ws)

	err := eng.Exec(context.Background(), "undo")
	assert.EqualError(t, err, "No undo available!")

	// Mutations still work, they just leave no undo point.
	require.NoError(t, eng.Exec(context.Background(), "add-data-file csv:a.csv"))
	assert.Len(t, ws.Data().Items(), 1)
}

func TestEngine_UndoDisabledSkipsSnapshot(t *testing.T) {
	u := undo.New(undo.WithEnabled(false))
	ws := memory.NewWorkspace(memory.WithUndo(u))
	eng := newEngine(t, ws)

	require.NoError(t, eng.Exec(context.Background(), "add-data-file csv:a.csv"))
	n, _ := u.Len()
	assert.Zero(t, n)
}

func TestEngine_ConnectOptions(t *testing.T) {
	ws := memory.NewWorkspace()
	eng := newEngine(t, ws)
	ctx := context.Background()

	require.NoError(t, eng.Exec(ctx, "connect db://warehouse user=ana readonly=true"))
	conn := ws.Connection().(*memory.Connection)
	assert.True(t, conn.IsConnected())
	assert.Equal(t, domain.ConnectParams{URL: "db://warehouse", User: "ana", ReadOnly: true}, conn.Params())

	err := eng.Exec(ctx, "connect db://warehouse colour=blue")
	assert.ErrorIs(t, err, domain.ErrInvalidOptions)

	require.NoError(t, eng.Exec(ctx, "disconnect"))
	assert.EqualError(t, eng.Exec(ctx, "disconnect"), "Not connected!")
}

func TestEngine_SurfaceCommands(t *testing.T) {
	ws := memory.NewWorkspace()
	eng := newEngine(t, ws)

	require.NoError(t, eng.Run(context.Background(), []string{`set-title "Iris  dataset"`, "refresh"}))
	assert.Equal(t, "Iris  dataset", ws.Surface().Title())
	assert.Equal(t, 1, ws.View().Refreshes())
}

func TestEngine_Describe(t *testing.T) {
	eng := newEngine(t, memory.NewWorkspace())

	help := eng.Describe()
	assert.Contains(t, help, "== general ==")
	assert.Contains(t, help, "== data-manager ==")
	assert.Contains(t, help, "add-data-file <reader:file> [id=<name>]")
	assert.Contains(t, eng.Actions(), "echo")
}

func TestEngine_CloseRejectsCommands(t *testing.T) {
	eng, err := vizscript.New(memory.NewWorkspace())
	require.NoError(t, err)
	require.NoError(t, eng.Close(context.Background()))

	assert.ErrorIs(t, eng.Exec(context.Background(), "refresh"), domain.ErrEngineClosed)
}

func TestEngine_RunReportsDiscardedCommands(t *testing.T) {
	release := make(chan struct{})
	running := make(chan struct{})
	slow := handler.New("slow", "", "blocks until released", func(context.Context, domain.ExecutionContext, []string) error {
		close(running)
		<-release
		return nil
	})
	ws := memory.NewWorkspace()
	eng := newEngine(t, ws, vizscript.WithHandlers(slow))

	result := make(chan error, 1)
	go func() {
		result <- eng.Run(context.Background(), []string{"slow", "clear-data", "add-data-file csv:/a.csv"})
	}()

	<-running
	require.Eventually(t, func() bool { return eng.Queue().Pending() == 2 }, time.Second, time.Millisecond)
	eng.Stop()
	close(release)

	select {
	case err := <-result:
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrDiscarded)
		assert.Contains(t, err.Error(), "add-data-file csv:/a.csv")
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
	assert.Empty(t, ws.Data().Items())
}

func TestEngine_ExecReturnsWhenDiscarded(t *testing.T) {
	release := make(chan struct{})
	running := make(chan struct{})
	slow := handler.New("slow", "", "blocks until released", func(context.Context, domain.ExecutionContext, []string) error {
		close(running)
		<-release
		return nil
	})
	eng := newEngine(t, memory.NewWorkspace(), vizscript.WithHandlers(slow))

	require.NoError(t, eng.Submit("slow", nil))
	<-running

	result := make(chan error, 1)
	go func() { result <- eng.Exec(context.Background(), "set-title Never") }()
	require.Eventually(t, func() bool { return eng.Queue().Pending() == 1 }, time.Second, time.Millisecond)

	eng.Stop()
	assert.ErrorIs(t, <-result, domain.ErrDiscarded)
	close(release)
}

func TestEngine_HashInsideCommandIsLiteral(t *testing.T) {
	ws := memory.NewWorkspace()
	eng := newEngine(t, ws)

	require.NoError(t, eng.Exec(context.Background(), "set-title Chart #1"))
	assert.Equal(t, "Chart #1", ws.Surface().Title())
}
