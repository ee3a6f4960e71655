package vizscript

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/vizscript/pkg/script"
)

// Runner reads commands line by line and executes them on an Engine.
// It backs the interactive shell and `vizscript run -`.
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	// Help, if set, produces the help text instead of Engine.Describe.
	Help func() string
	// Renderer transforms help text before printing (markdown to ANSI in the CLI).
	Renderer ContentRenderer
	// StopOnError ends the run at the first failed command.
	StopOnError bool
}

// ContentRenderer transforms content before it is written to Output.
type ContentRenderer func(string) (string, error)

// Shell commands understood by the Runner itself; everything else goes to the engine.
const (
	shellExit    = "exit"
	shellQuit    = "quit"
	shellHelp    = "help"
	shellHistory = "history"
)

// NewRunner creates a Runner. Input and Output must be set before Run.
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes the read loop until EOF, exit/quit or ctx is done.
// Failed commands are reported on Output; with StopOnError the first one is returned.
func (r *Runner) Run(ctx context.Context, engine *Engine) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	lines := bufio.NewScanner(r.Input)

	if !r.Headless {
		fmt.Fprintf(r.Output, "--- vizscript %s (type 'help' for the list of actions) ---\n", Version)
	}

	for {
		if !r.Headless {
			fmt.Fprint(r.Output, "> ")
		}
		if !lines.Scan() {
			if err := lines.Err(); err != nil {
				return fmt.Errorf("input error: %w", err)
			}
			return nil
		}
		line := strings.TrimSpace(lines.Text())

		switch line {
		case shellExit, shellQuit:
			if !r.Headless {
				fmt.Fprintln(r.Output, "Bye!")
			}
			return nil
		case shellHelp:
			if r.Help != nil {
				r.print(r.Help())
			} else {
				r.print(engine.Describe())
			}
			continue
		case shellHistory:
			fmt.Fprintln(r.Output, strings.Join(engine.Queue().History(), "\n"))
			continue
		}
		if !script.IsCommand(line) {
			continue
		}

		err := engine.Exec(ctx, line)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		if err != nil {
			fmt.Fprintln(r.Output, err.Error())
			if r.StopOnError {
				return err
			}
		}
	}
}

func (r *Runner) print(content string) {
	output := content
	if r.Renderer != nil {
		if rendered, err := r.Renderer(content); err == nil {
			output = rendered
		}
	}
	fmt.Fprintln(r.Output, strings.TrimRight(output, "\n"))
}
