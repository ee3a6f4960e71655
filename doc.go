/*
Package vizscript is a command scripting engine for visualization tools.

Scripts are plain text, one command per line: an action name followed by its
options. Commands are queued and executed one at a time by a background worker
against an execution context supplied by the host (a surface, a data manager,
an undo manager, a connection). Handlers declare the capabilities they need and
the engine refuses to run them when the context cannot provide them.

# Key Features

  - Single FIFO worker: commands from any goroutine run strictly in order.
  - Capability checks: a missing data manager or a closed connection is reported, not crashed on.
  - Undo support: mutating handlers push undo points through the shared undo manager.
  - History and recording: executed commands can be recorded and saved as new scripts.

# Usage

	ws := memory.NewWorkspace(memory.WithUndo(undo.New()))

	eng, err := vizscript.New(ws)
	if err != nil {
		log.Fatal(err)
	}
	defer eng.Close(context.Background())

	err = eng.Run(ctx, []string{
		"# reset the plot",
		"clear-data",
		`add-data-file "csv:/data/iris.csv"`,
	})

Custom handlers are registered with WithHandlers; see package handler.
*/
package vizscript
