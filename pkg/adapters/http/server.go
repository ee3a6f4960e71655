// Package http exposes a vizscript engine over a small JSON API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aretw0/vizscript"
	"github.com/aretw0/vizscript/internal/logging"
	"github.com/aretw0/vizscript/pkg/adapters/file"
	"github.com/aretw0/vizscript/pkg/domain"
	"github.com/aretw0/vizscript/pkg/library"
	"github.com/aretw0/vizscript/pkg/observability"
	"github.com/aretw0/vizscript/pkg/queue"
	"github.com/aretw0/vizscript/pkg/registry"
	"github.com/aretw0/vizscript/pkg/script"
	"github.com/go-chi/chi/v5"
)

//go:generate go tool oapi-codegen -package http -generate types,chi-server,spec -o api.gen.go ../../../api/openapi.yaml

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 1 << 20

// Engine is the part of *vizscript.Engine the server drives.
type Engine interface {
	Exec(ctx context.Context, raw string) error
	Submit(raw string, cb domain.Callback) error
	Context() domain.ExecutionContext
	Registry() *registry.Registry
	Queue() *queue.Engine
}

var _ Engine = (*vizscript.Engine)(nil)

// Server implements the generated ServerInterface.
type Server struct {
	Engine  Engine
	Library *library.Library
	Streams *StreamManager
	Metrics http.Handler

	logger *slog.Logger
}

var _ ServerInterface = (*Server)(nil)

// Option configures the Server.
type Option func(*Server)

// WithLibrary enables the /scripts endpoints.
func WithLibrary(lib *library.Library) Option {
	return func(s *Server) {
		s.Library = lib
	}
}

// WithMetrics mounts h under /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer builds a Server and subscribes its event stream to the engine queue.
func NewServer(engine Engine, opts ...Option) *Server {
	s := &Server{
		Engine: engine,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams = NewStreamManager(s.logger)
	engine.Queue().AddStatusListener(s.broadcast)
	return s
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	return NewServer(engine, opts...).Routes()
}

// Routes returns the router: the generated API routes plus the spec, its
// Swagger UI and /metrics when configured.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		spec, err := rawSpec()
		if err != nil {
			http.Error(w, "Failed to load spec", http.StatusInternalServerError)
			s.logger.Error("failed to load OpenAPI spec", "err", err)
			return
		}
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(spec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = io.WriteString(w, swaggerHTML)
	})

	if s.Metrics != nil {
		r.Handle("/metrics", s.Metrics)
	}

	return enableCORS(HandlerFromMux(s, r))
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, Health{Status: "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, Info{App: "vizscript-http", Version: vizscript.Version})
}

// PostCommand handles POST /commands. Synchronous commands answer 200 on
// success and 422 with the user-facing message on failure; async ones 202.
func (s *Server) PostCommand(w http.ResponseWriter, r *http.Request) {
	var body PostCommandJSONRequestBody
	if err := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes)).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("PostCommand: invalid request body", "err", err)
		return
	}
	cmd, err := script.Sanitize(body.Command)
	if err != nil {
		s.logger.Warn("PostCommand: input rejected", "err", err, "size", len(body.Command))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !script.IsCommand(cmd) {
		http.Error(w, "Command is blank or a comment", http.StatusBadRequest)
		return
	}

	if body.Async {
		if err := s.Engine.Submit(cmd, nil); err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, http.StatusAccepted, CommandResponse{OK: true, Queued: true})
		return
	}

	err = s.Engine.Exec(r.Context(), cmd)
	switch {
	case err == nil:
		s.writeJSON(w, http.StatusOK, CommandResponse{OK: true, Outcome: observability.OutcomeOK})
	case errors.Is(err, domain.ErrEngineClosed):
		s.writeError(w, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		http.Error(w, "Request cancelled", http.StatusServiceUnavailable)
	default:
		s.writeJSON(w, http.StatusUnprocessableEntity, CommandResponse{
			Outcome: observability.Outcome(err),
			Error:   err.Error(),
		})
	}
}

// GetStatus handles GET /status.
func (s *Server) GetStatus(w http.ResponseWriter, r *http.Request) {
	q := s.Engine.Queue()
	st := Status{
		Pending:    q.Pending(),
		Processing: q.IsProcessing(),
		Recording:  q.IsRecording(),
	}
	if cmd := q.Current(); cmd != nil {
		st.Current = cmd.Raw
	}
	if err := q.LastError(); err != nil {
		st.LastError = err.Error()
	}
	s.writeJSON(w, http.StatusOK, st)
}

// GetHistory handles GET /history.
func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Engine.Queue().History())
}

// GetActions handles GET /actions.
func (s *Server) GetActions(w http.ResponseWriter, r *http.Request) {
	hs := s.Engine.Registry().Handlers()
	infos := make([]ActionInfo, 0, len(hs))
	for _, h := range hs {
		info := ActionInfo{
			Action:      h.Action(),
			Usage:       h.Usage(),
			Description: h.Description(),
		}
		for _, c := range h.Requirements() {
			info.Requires = append(info.Requires, string(c))
		}
		infos = append(infos, info)
	}
	s.writeJSON(w, http.StatusOK, infos)
}

// ListScripts handles GET /scripts.
func (s *Server) ListScripts(w http.ResponseWriter, r *http.Request) {
	if !s.requireLibrary(w) {
		return
	}
	names, err := s.Library.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, names)
}

// GetScript handles GET /scripts/{name}; the script is returned as plain text.
func (s *Server) GetScript(w http.ResponseWriter, r *http.Request, name ScriptName) {
	if !s.requireLibrary(w) {
		return
	}
	lines, err := s.Library.Load(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, script.Format(lines))
}

// PutScript handles PUT /scripts/{name}; the body is the script text.
func (s *Server) PutScript(w http.ResponseWriter, r *http.Request, name ScriptName) {
	if !s.requireLibrary(w) {
		return
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	lines, err := script.SanitizeAll(script.Parse(string(data)))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.Library.Save(r.Context(), name, lines); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteScript handles DELETE /scripts/{name}.
func (s *Server) DeleteScript(w http.ResponseWriter, r *http.Request, name ScriptName) {
	if !s.requireLibrary(w) {
		return
	}
	if err := s.Library.Delete(r.Context(), name); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RunScript handles POST /scripts/{name}/run; the script is queued, not awaited.
func (s *Server) RunScript(w http.ResponseWriter, r *http.Request, name ScriptName) {
	if !s.requireLibrary(w) {
		return
	}
	if err := s.Library.Enqueue(r.Context(), s.Engine.Queue(), s.Engine.Context(), name); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusAccepted, CommandResponse{OK: true, Queued: true})
}

// SubscribeEvents handles GET /events (SSE) and streams queue status events.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE client disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) broadcast(ev domain.StatusEvent) {
	if s.Streams.Subscribers() == 0 {
		return
	}
	out := Event{
		Type:       string(ev.Type),
		Timestamp:  ev.Timestamp,
		DurationMS: ev.Duration.Milliseconds(),
		Pending:    ev.Pending,
	}
	if ev.Command != nil {
		out.Command = ev.Command.Raw
	}
	if ev.Err != nil {
		out.Error = ev.Err.Error()
	}
	data, err := json.Marshal(out)
	if err != nil {
		s.logger.Error("failed to encode event", "err", err)
		return
	}
	s.Streams.Broadcast(string(data))
}

func (s *Server) requireLibrary(w http.ResponseWriter) bool {
	if s.Library == nil {
		http.Error(w, "No script library configured", http.StatusNotImplemented)
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrScriptNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrEngineClosed):
		status = http.StatusServiceUnavailable
	case errors.Is(err, file.ErrInvalidName):
		status = http.StatusBadRequest
	default:
		s.logger.Error("request failed", "err", err)
	}
	s.writeJSON(w, status, CommandResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>vizscript API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`
