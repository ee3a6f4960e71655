package http_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/vizscript"
	vhttp "github.com/aretw0/vizscript/pkg/adapters/http"
	"github.com/aretw0/vizscript/pkg/adapters/file"
	"github.com/aretw0/vizscript/pkg/adapters/memory"
	"github.com/aretw0/vizscript/pkg/library"
	"github.com/aretw0/vizscript/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ws      *memory.Workspace
	engine  *vizscript.Engine
	handler http.Handler
	server  *vhttp.Server
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ws := memory.NewWorkspace()
	eng, err := vizscript.New(ws, vizscript.WithOutput(io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() { _ = eng.Close(context.Background()) })

	metrics := observability.NewMetrics()
	eng.Queue().AddStatusListener(metrics.Listener())

	srv := vhttp.NewServer(eng,
		vhttp.WithLibrary(library.New(file.New(t.TempDir()))),
		vhttp.WithMetrics(metrics.Handler()),
	)
	return &fixture{ws: ws, engine: eng, handler: srv.Routes(), server: srv}
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

func postCommand(t *testing.T, f *fixture, req vhttp.CommandRequest) (*httptest.ResponseRecorder, vhttp.CommandResponse) {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	w := f.do(t, http.MethodPost, "/commands", string(body))
	var resp vhttp.CommandResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestPostCommand(t *testing.T) {
	f := setup(t)

	w, resp := postCommand(t, f, vhttp.CommandRequest{Command: "set-title Iris"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.OK)
	assert.Equal(t, "Iris", f.ws.Surface().Title())

	w, resp = postCommand(t, f, vhttp.CommandRequest{Command: "disconnect"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "Not connected!", resp.Error)
	assert.Equal(t, observability.OutcomeUnmetRequirement, resp.Outcome)

	w, resp = postCommand(t, f, vhttp.CommandRequest{Command: "refresh", Async: true})
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.True(t, resp.Queued)
	require.NoError(t, f.engine.Wait(context.Background()))
}

func TestPostCommand_BadRequests(t *testing.T) {
	f := setup(t)

	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/commands", "{").Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/commands", `{"command":"# note"}`).Code)
}

func TestStatusHistoryActions(t *testing.T) {
	f := setup(t)
	postCommand(t, f, vhttp.CommandRequest{Command: "refresh"})
	postCommand(t, f, vhttp.CommandRequest{Command: "bogus"})

	var st vhttp.Status
	require.NoError(t, json.Unmarshal(f.do(t, http.MethodGet, "/status", "").Body.Bytes(), &st))
	assert.Equal(t, 0, st.Pending)
	assert.Equal(t, "dispatcher: Unknown action 'bogus'!", st.LastError)

	var history []string
	require.NoError(t, json.Unmarshal(f.do(t, http.MethodGet, "/history", "").Body.Bytes(), &history))
	assert.Equal(t, []string{"refresh"}, history)

	var actions []vhttp.ActionInfo
	require.NoError(t, json.Unmarshal(f.do(t, http.MethodGet, "/actions", "").Body.Bytes(), &actions))
	require.NotEmpty(t, actions)
	assert.Equal(t, "clear-data", actions[0].Action)
	assert.Equal(t, []string{"data-manager"}, actions[0].Requires)
}

func TestScripts(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodPut, "/scripts/iris", "# iris\nadd-data-file csv:iris.csv\n\nrefresh\n")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(t, http.MethodGet, "/scripts", "")
	assert.JSONEq(t, `["iris"]`, w.Body.String())

	w = f.do(t, http.MethodGet, "/scripts/iris", "")
	assert.Equal(t, "# iris\nadd-data-file csv:iris.csv\nrefresh\n", w.Body.String())

	w = f.do(t, http.MethodPost, "/scripts/iris/run", "")
	assert.Equal(t, http.StatusAccepted, w.Code)
	require.NoError(t, f.engine.Wait(context.Background()))
	assert.Len(t, f.ws.Data().Items(), 1)

	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/scripts/missing", "").Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPut, "/scripts/.hidden", "refresh").Code)

	assert.Equal(t, http.StatusNoContent, f.do(t, http.MethodDelete, "/scripts/iris", "").Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodPost, "/scripts/iris/run", "").Code)
}

func TestScripts_NoLibrary(t *testing.T) {
	eng, err := vizscript.New(memory.NewWorkspace())
	require.NoError(t, err)
	defer eng.Close(context.Background())

	w := httptest.NewRecorder()
	vhttp.NewHandler(eng).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/scripts", nil))
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestMetricsAndCORS(t *testing.T) {
	f := setup(t)
	postCommand(t, f, vhttp.CommandRequest{Command: "refresh"})

	w := f.do(t, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `vizscript_commands_total{action="refresh",outcome="ok"} 1`)

	w = f.do(t, http.MethodOptions, "/commands", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSubscribeEvents(t *testing.T) {
	f := setup(t)
	ts := httptest.NewServer(f.handler)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: ping\n", line)

	require.Eventually(t, func() bool { return f.server.Streams.Subscribers() == 1 }, time.Second, 10*time.Millisecond)
	require.NoError(t, f.engine.Exec(ctx, "refresh"))

	var got []vhttp.Event
	for len(got) < 3 {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		data, ok := strings.CutPrefix(strings.TrimSpace(line), "data: ")
		if !ok || data == "connected" {
			continue
		}
		var ev vhttp.Event
		require.NoError(t, json.NewDecoder(bytes.NewReader([]byte(data))).Decode(&ev))
		got = append(got, ev)
	}
	assert.Equal(t, "running", string(got[0].Type))
	assert.Equal(t, "refresh", got[0].Command)
	assert.Equal(t, "finished", string(got[1].Type))
	assert.Equal(t, "idle", string(got[2].Type))
}

func TestOpenAPISpec(t *testing.T) {
	f := setup(t)

	w := f.do(t, http.MethodGet, "/openapi.yaml", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/scripts/{name}/run")

	w = f.do(t, http.MethodGet, "/swagger", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/openapi.yaml")

	swagger, err := vhttp.GetSwagger()
	require.NoError(t, err)
	require.NoError(t, swagger.Validate(context.Background()))

	// Every documented operation is routed.
	for path, item := range swagger.Paths.Map() {
		for method := range item.Operations() {
			target := strings.ReplaceAll(path, "{name}", "sample")
			if method == http.MethodGet && path == "/events" {
				continue
			}
			req := httptest.NewRequest(method, target, strings.NewReader("{}"))
			rec := httptest.NewRecorder()
			f.handler.ServeHTTP(rec, req)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rec.Code, "%s %s", method, path)
			if rec.Code == http.StatusNotFound {
				assert.NotContains(t, rec.Body.String(), "404 page not found", "%s %s is not routed", method, path)
			}
		}
	}
}

func TestHealthAndInfo(t *testing.T) {
	f := setup(t)

	var health vhttp.Health
	require.NoError(t, json.Unmarshal(f.do(t, http.MethodGet, "/health", "").Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)

	var info vhttp.Info
	require.NoError(t, json.Unmarshal(f.do(t, http.MethodGet, "/info", "").Body.Bytes(), &info))
	assert.Equal(t, vizscript.Version, info.Version)
}
