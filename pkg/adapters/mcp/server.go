// Package mcp exposes a vizscript engine as a Model Context Protocol server.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/vizscript"
	"github.com/aretw0/vizscript/internal/logging"
	"github.com/aretw0/vizscript/pkg/domain"
	"github.com/aretw0/vizscript/pkg/library"
	"github.com/aretw0/vizscript/pkg/observability"
	"github.com/aretw0/vizscript/pkg/queue"
	"github.com/aretw0/vizscript/pkg/script"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName = "vizscript-mcp"

	actionsURI = "vizscript://actions"
	historyURI = "vizscript://history"
)

// Engine is the part of *vizscript.Engine the MCP server drives.
type Engine interface {
	Exec(ctx context.Context, raw string) error
	Run(ctx context.Context, lines []string) error
	Describe() string
	Actions() []string
	Queue() *queue.Engine
}

var _ Engine = (*vizscript.Engine)(nil)

// CommandResult is the structured output of run_command.
type CommandResult struct {
	Command string `json:"command" jsonschema_description:"The command line as received"`
	OK      bool   `json:"ok" jsonschema_description:"Whether the command completed without error"`
	Outcome string `json:"outcome" jsonschema_description:"Outcome classification, e.g. ok or unknown_action"`
	Error   string `json:"error,omitempty" jsonschema_description:"Message shown to the user on failure"`
}

// ScriptResult is the structured output of run_script.
type ScriptResult struct {
	Lines  int      `json:"lines" jsonschema_description:"Number of lines submitted"`
	OK     bool     `json:"ok"`
	Errors []string `json:"errors,omitempty" jsonschema_description:"Messages of failed commands, in order"`
}

// StatusResult is the structured output of engine_status.
type StatusResult struct {
	Processing bool   `json:"processing"`
	Pending    int    `json:"pending"`
	Current    string `json:"current,omitempty"`
	Recording  bool   `json:"recording"`
	LastError  string `json:"last_error,omitempty"`
}

// Server wraps an Engine and exposes it over MCP.
type Server struct {
	engine    Engine
	library   *library.Library
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLibrary enables the run_saved_script and list_scripts tools.
func WithLibrary(lib *library.Library) Option {
	return func(s *Server) {
		s.library = lib
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, opts ...Option) *Server {
	s := &Server{
		engine: engine,
		logger: logging.NewNop(),
		mcpServer: server.NewMCPServer(
			serverName,
			strings.TrimSpace(vizscript.Version),
			server.WithToolCapabilities(false),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// ServeSSE serves the protocol over SSE on addr until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	baseURL := "http://localhost" + addr
	if !strings.HasPrefix(addr, ":") {
		baseURL = "http://" + addr
	}
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("run_command",
		mcp.WithDescription("Run one vizscript command line and wait for it to finish."),
		mcp.WithString("command", mcp.Required(), mcp.Description("Command line, e.g. 'add-data-file csv:/data/iris.csv'")),
		mcp.WithOutputSchema[CommandResult](),
	), s.handleRunCommand)

	s.mcpServer.AddTool(mcp.NewTool("run_script",
		mcp.WithDescription("Run several command lines in order. Blank lines and '#' comments are skipped."),
		mcp.WithArray("lines", mcp.Required(), mcp.Description("Script lines"), mcp.WithStringItems()),
		mcp.WithOutputSchema[ScriptResult](),
	), s.handleRunScript)

	s.mcpServer.AddTool(mcp.NewTool("describe_actions",
		mcp.WithDescription("List every available action with its usage and description."),
	), s.handleDescribe)

	s.mcpServer.AddTool(mcp.NewTool("engine_status",
		mcp.WithDescription("Report whether the command queue is busy."),
		mcp.WithOutputSchema[StatusResult](),
	), s.handleStatus)

	if s.library != nil {
		s.mcpServer.AddTool(mcp.NewTool("list_scripts",
			mcp.WithDescription("List the names of saved scripts."),
		), s.handleListScripts)

		s.mcpServer.AddTool(mcp.NewTool("run_saved_script",
			mcp.WithDescription("Load a saved script by name and run it."),
			mcp.WithString("name", mcp.Required(), mcp.Description("Script name")),
			mcp.WithOutputSchema[ScriptResult](),
		), s.handleRunSaved)
	}
}

func (s *Server) handleRunCommand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("command")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	raw, err = script.Sanitize(raw)
	if err != nil {
		s.logger.Warn("MCP command rejected", "err", err)
		return mcp.NewToolResultErrorFromErr("input rejected", err), nil
	}
	if strings.TrimSpace(raw) == "" {
		return mcp.NewToolResultError("command must not be empty"), nil
	}

	err = s.engine.Exec(ctx, raw)
	if errors.Is(err, domain.ErrEngineClosed) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return mcp.NewToolResultErrorFromErr("command not run", err), nil
	}

	result := CommandResult{
		Command: raw,
		OK:      err == nil,
		Outcome: observability.Outcome(err),
	}
	if err != nil {
		result.Error = err.Error()
		s.logger.Debug("MCP command failed", "command", raw, "err", err)
	}
	return mcp.NewToolResultStructuredOnly(result), nil
}

func (s *Server) handleRunScript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lines, err := request.RequireStringSlice("lines")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	lines, err = script.SanitizeAll(lines)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("input rejected", err), nil
	}
	return s.runLines(ctx, lines), nil
}

func (s *Server) runLines(ctx context.Context, lines []string) *mcp.CallToolResult {
	err := s.engine.Run(ctx, lines)
	if errors.Is(err, domain.ErrEngineClosed) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return mcp.NewToolResultErrorFromErr("script not run", err)
	}
	result := ScriptResult{Lines: len(lines), OK: err == nil}
	if err != nil {
		result.Errors = splitJoined(err)
	}
	return mcp.NewToolResultStructuredOnly(result)
}

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.engine.Describe()), nil
}

func (s *Server) handleStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultStructuredOnly(s.status()), nil
}

func (s *Server) status() StatusResult {
	q := s.engine.Queue()
	res := StatusResult{
		Processing: q.IsProcessing(),
		Pending:    q.Pending(),
		Recording:  q.IsRecording(),
	}
	if cmd := q.Current(); cmd != nil {
		res.Current = cmd.Raw
	}
	if err := q.LastError(); err != nil {
		res.LastError = err.Error()
	}
	return res
}

func (s *Server) handleListScripts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := s.library.List(ctx)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("list scripts failed", err), nil
	}
	return mcp.NewToolResultText(strings.Join(names, "\n")), nil
}

func (s *Server) handleRunSaved(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	lines, err := s.library.Load(ctx, name)
	if err != nil {
		return mcp.NewToolResultErrorFromErr(fmt.Sprintf("load script %q failed", name), err), nil
	}
	return s.runLines(ctx, lines), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(actionsURI, "Available actions",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return jsonResource(actionsURI, s.engine.Actions())
	})

	s.mcpServer.AddResource(mcp.NewResource(historyURI, "Command history",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return jsonResource(historyURI, s.engine.Queue().History())
	})
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(b),
		},
	}, nil
}

// splitJoined flattens an errors.Join tree into its messages.
func splitJoined(err error) []string {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range j.Unwrap() {
			out = append(out, e.Error())
		}
		return out
	}
	return []string{err.Error()}
}
