package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/vizscript"
	"github.com/aretw0/vizscript/pkg/adapters/memory"
	"github.com/aretw0/vizscript/pkg/library"
	"github.com/aretw0/vizscript/pkg/observability"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, opts ...Option) (*Server, *memory.Workspace) {
	t.Helper()
	ws := memory.NewWorkspace()
	eng, err := vizscript.New(ws)
	require.NoError(t, err)
	t.Cleanup(func() { _ = eng.Close(context.Background()) })
	return NewServer(eng, opts...), ws
}

// newCallToolRequest builds a tool call request with arguments.
func newCallToolRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func TestRunCommand(t *testing.T) {
	s, ws := newServer(t)

	res, err := s.handleRunCommand(context.Background(), newCallToolRequest("run_command", map[string]any{
		"command": "add-data-file csv:/data/iris.csv",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	out, ok := res.StructuredContent.(CommandResult)
	require.True(t, ok, "got %T", res.StructuredContent)
	assert.True(t, out.OK)
	assert.Equal(t, observability.OutcomeOK, out.Outcome)
	assert.Len(t, ws.Data().Items(), 1)
}

func TestRunCommand_ReportsCommandFailure(t *testing.T) {
	s, _ := newServer(t)

	res, err := s.handleRunCommand(context.Background(), newCallToolRequest("run_command", map[string]any{
		"command": "no-such-action",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, "a failed command is a result, not a tool error")

	out := res.StructuredContent.(CommandResult)
	assert.False(t, out.OK)
	assert.Equal(t, observability.OutcomeUnknownAction, out.Outcome)
	assert.Contains(t, out.Error, "no-such-action")
}

func TestRunCommand_InvalidArguments(t *testing.T) {
	s, _ := newServer(t)

	res, err := s.handleRunCommand(context.Background(), newCallToolRequest("run_command", map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = s.handleRunCommand(context.Background(), newCallToolRequest("run_command", map[string]any{
		"command": "   ",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = s.handleRunCommand(context.Background(), newCallToolRequest("run_command", map[string]any{
		"command": "clear-data\nundo",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError, "one command per call")
}

func TestRunScript(t *testing.T) {
	s, ws := newServer(t)

	res, err := s.handleRunScript(context.Background(), newCallToolRequest("run_script", map[string]any{
		"lines": []any{"# setup", "add-data-file csv:/a.csv", "bogus", "set-title Results"},
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	out := res.StructuredContent.(ScriptResult)
	assert.False(t, out.OK)
	assert.Equal(t, 4, out.Lines)
	require.Len(t, out.Errors, 1)
	assert.Contains(t, out.Errors[0], "bogus")
	assert.Equal(t, "Results", ws.View().Title())
}

func TestDescribeAndStatus(t *testing.T) {
	s, _ := newServer(t)

	res, err := s.handleDescribe(context.Background(), newCallToolRequest("describe_actions", nil))
	require.NoError(t, err)
	assert.Contains(t, textOf(t, res), "clear-data")

	res, err = s.handleStatus(context.Background(), newCallToolRequest("engine_status", nil))
	require.NoError(t, err)
	st := res.StructuredContent.(StatusResult)
	assert.False(t, st.Processing)
	assert.Zero(t, st.Pending)
}

func TestSavedScripts(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Save(context.Background(), "setup", []string{"set-title Saved"}))

	s, ws := newServer(t, WithLibrary(library.New(store)))

	res, err := s.handleListScripts(context.Background(), newCallToolRequest("list_scripts", nil))
	require.NoError(t, err)
	assert.Equal(t, "setup", textOf(t, res))

	res, err = s.handleRunSaved(context.Background(), newCallToolRequest("run_saved_script", map[string]any{"name": "setup"}))
	require.NoError(t, err)
	assert.True(t, res.StructuredContent.(ScriptResult).OK)
	assert.Equal(t, "Saved", ws.View().Title())

	res, err = s.handleRunSaved(context.Background(), newCallToolRequest("run_saved_script", map[string]any{"name": "missing"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestJSONResource(t *testing.T) {
	contents, err := jsonResource(historyURI, []string{"clear-data"})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text := contents[0].(mcp.TextResourceContents)
	assert.Equal(t, historyURI, text.URI)
	var got []string
	require.NoError(t, json.Unmarshal([]byte(text.Text), &got))
	assert.Equal(t, []string{"clear-data"}, got)
}
