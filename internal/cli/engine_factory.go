package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/vizscript"
	"github.com/aretw0/vizscript/internal/config"
	"github.com/aretw0/vizscript/pkg/adapters/file"
	"github.com/aretw0/vizscript/pkg/adapters/memory"
	"github.com/aretw0/vizscript/pkg/adapters/redis"
	"github.com/aretw0/vizscript/pkg/library"
	"github.com/aretw0/vizscript/pkg/persistence/middleware"
	"github.com/aretw0/vizscript/pkg/ports"
	"github.com/aretw0/vizscript/pkg/undo"
)

// Env is everything a subcommand needs: the workspace commands act on,
// the engine driving it and the script library.
type Env struct {
	Config    config.Config
	Logger    *slog.Logger
	Workspace *memory.Workspace
	Engine    *vizscript.Engine
	Library   *library.Library

	closers []func() error
}

// NewWorkspace builds the in-memory workspace with an undo manager sized by cfg.
func NewWorkspace(cfg config.Config) *memory.Workspace {
	return memory.NewWorkspace(memory.WithUndo(undo.New(
		undo.WithMax(cfg.Undo.Max),
		undo.WithEnabled(cfg.Undo.Enabled),
	)))
}

// createEngine initializes an engine with standard CLI conventions.
func createEngine(cfg config.Config, ws *memory.Workspace, out io.Writer, logger *slog.Logger, extra ...vizscript.Option) (*vizscript.Engine, error) {
	opts := []vizscript.Option{
		vizscript.WithOutput(out),
		vizscript.WithLogger(logger),
		vizscript.WithStrictCapabilities(cfg.StrictCapabilities),
		vizscript.WithStrictRegistry(cfg.StrictRegistry),
	}
	opts = append(opts, extra...)

	engine, err := vizscript.New(ws, opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}

// createLibrary picks the script store: Redis when configured, the scripts home otherwise.
// With an encryption key the store is wrapped so scripts are written as envelopes.
// The returned closer releases the Redis connection.
func createLibrary(cfg config.Config, logger *slog.Logger) (*library.Library, func() error, error) {
	var (
		store   ports.ScriptStore
		libOpts = []library.Option{library.WithLogger(logger)}
		closer  = func() error { return nil }
	)
	if cfg.UseRedis() {
		rs := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, redis.WithPrefix(cfg.Redis.Prefix))
		logger.Debug("using redis script store", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
		store = rs
		closer = rs.Close
		libOpts = append(libOpts, library.WithLocker(redis.NewLocker(rs.Client(), cfg.Redis.Prefix)))
	} else {
		logger.Debug("using file script store", "home", cfg.ScriptsHome)
		store = file.New(cfg.ScriptsHome)
	}

	if cfg.Encryption.Key != "" {
		mw, err := encryptionMiddleware(cfg.Encryption)
		if err != nil {
			_ = closer()
			return nil, nil, err
		}
		store = middleware.Chain(store, mw)
		logger.Debug("script encryption enabled", "fallback_keys", len(cfg.Encryption.FallbackKeys))
	}

	return library.New(store, libOpts...), closer, nil
}

func encryptionMiddleware(cc config.CryptoConfig) (middleware.Middleware, error) {
	active, err := middleware.DecodeKey(cc.Key)
	if err != nil {
		return nil, fmt.Errorf("encryption key: %w", err)
	}
	ec := middleware.EncryptionConfig{ActiveKey: active}
	for i, k := range cc.FallbackKeys {
		key, err := middleware.DecodeKey(k)
		if err != nil {
			return nil, fmt.Errorf("fallback key %d: %w", i, err)
		}
		ec.FallbackKeys = append(ec.FallbackKeys, key)
	}
	return middleware.NewEncryptionMiddleware(ec)
}

// NewEnv wires a full environment from cfg. Close releases it.
func NewEnv(cfg config.Config, debug bool, out io.Writer, extra ...vizscript.Option) (*Env, error) {
	logger := createLogger(debug, cfg.Level())
	ws := NewWorkspace(cfg)

	engine, err := createEngine(cfg, ws, out, logger, extra...)
	if err != nil {
		return nil, err
	}
	lib, closeStore, err := createLibrary(cfg, logger)
	if err != nil {
		_ = engine.Close(context.Background())
		return nil, err
	}

	return &Env{
		Config:    cfg,
		Logger:    logger,
		Workspace: ws,
		Engine:    engine,
		Library:   lib,
		closers:   []func() error{closeStore},
	}, nil
}
