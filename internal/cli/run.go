// Package cli implements the vizscript subcommands on top of the engine.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/vizscript"
	"github.com/aretw0/vizscript/internal/presentation/tui"
	"github.com/aretw0/vizscript/pkg/domain"
	"github.com/aretw0/vizscript/pkg/script"
	"github.com/muesli/termenv"
)

// ResolveScript returns the lines of ref: a file path when one exists,
// otherwise a script of the library.
func ResolveScript(ctx context.Context, env *Env, ref string) ([]string, error) {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return script.Load(ref)
	}
	lines, err := env.Library.Load(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("script %q: %w", ref, err)
	}
	return lines, nil
}

// RunScript runs the script ref, or standard input when ref is "-".
// Every command runs even after failures; the failures are reported on out and returned joined.
func RunScript(ctx context.Context, env *Env, ref string, in io.Reader, out io.Writer) error {
	if ref == "-" {
		r := vizscript.NewRunner()
		r.Input = in
		r.Output = out
		r.Headless = true
		return handleExecutionError(r.Run(ctx, env.Engine))
	}

	lines, err := ResolveScript(ctx, env, ref)
	if err != nil {
		return err
	}
	env.Logger.Info("running script", "script", ref, "lines", len(lines))

	err = env.Engine.Run(ctx, lines)
	if isInterrupted(err) {
		printSystemMessage(out, "Interrupted.")
		return nil
	}
	if err != nil {
		fmt.Fprintln(out, err.Error())
		return fmt.Errorf("script %q had failures", ref)
	}
	return nil
}

// Exec runs a single command given as words.
func Exec(ctx context.Context, env *Env, words []string, out io.Writer) error {
	raw := strings.Join(words, " ")
	if err := env.Engine.Exec(ctx, raw); err != nil {
		var cmdErr *domain.CommandError
		if errors.As(err, &cmdErr) {
			fmt.Fprintln(out, cmdErr.Msg)
		}
		return handleExecutionError(err)
	}
	return nil
}

// ShellOptions configures the interactive shell.
type ShellOptions struct {
	Input  io.Reader
	Output *os.File
	// Record names a library script the session's commands are appended to on exit.
	Record string
}

// Shell runs the interactive read loop.
func Shell(ctx context.Context, env *Env, opts ShellOptions) error {
	interactive := tui.IsTerminal(opts.Output)
	if interactive {
		tui.PrintBanner(opts.Output)

		out := termenv.NewOutput(opts.Output)
		id := env.Engine.Queue().AddStatusListener(func(ev domain.StatusEvent) {
			if line := tui.StatusLine(out, ev); line != "" {
				fmt.Fprintln(opts.Output, line)
			}
		})
		defer env.Engine.Queue().RemoveStatusListener(id)
	}

	if opts.Record != "" {
		env.Engine.Queue().StartRecording()
	}

	r := vizscript.NewRunner()
	r.Input = opts.Input
	r.Output = opts.Output
	r.Headless = !interactive
	r.Help = func() string { return tui.HelpMarkdown(env.Engine.Registry()) }
	r.Renderer = tui.NewRenderer(opts.Output)

	runErr := handleExecutionError(r.Run(ctx, env.Engine))

	if opts.Record != "" {
		if err := saveRecording(context.WithoutCancel(ctx), env, opts.Record); err != nil {
			return errors.Join(runErr, err)
		}
		printSystemMessage(opts.Output, "Session appended to '%s'.", opts.Record)
	}
	return runErr
}

func saveRecording(ctx context.Context, env *Env, name string) error {
	q := env.Engine.Queue()
	q.StopRecording()
	if !q.HasRecording() {
		return nil
	}
	return env.Library.Append(ctx, name, q.Recorded())
}

// Actions prints the available actions, as markdown rendered for the terminal when asked.
func Actions(env *Env, out *os.File, markdown bool) error {
	if !markdown {
		_, err := fmt.Fprint(out, env.Engine.Describe())
		return err
	}
	rendered, err := tui.NewRenderer(out)(tui.HelpMarkdown(env.Engine.Registry()))
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}
