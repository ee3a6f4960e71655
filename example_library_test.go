package vizscript_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/vizscript"
	"github.com/aretw0/vizscript/pkg/adapters/memory"
	"github.com/aretw0/vizscript/pkg/library"
)

// ExampleEngine_recording records a session and replays it from the script library.
func ExampleEngine_recording() {
	ctx := context.Background()
	lib := library.New(memory.NewStore())

	first, err := vizscript.New(memory.NewWorkspace())
	if err != nil {
		log.Fatal(err)
	}
	defer first.Close(ctx)

	q := first.Queue()
	q.StartRecording()
	_ = first.Run(ctx, []string{"set-title Iris", "add-data-file csv:iris.csv"})
	q.StopRecording()

	if err := lib.Append(ctx, "iris", q.Recorded()); err != nil {
		log.Fatal(err)
	}

	ws := memory.NewWorkspace()
	second, err := vizscript.New(ws)
	if err != nil {
		log.Fatal(err)
	}
	defer second.Close(ctx)

	if err := lib.Enqueue(ctx, second.Queue(), ws, "iris"); err != nil {
		log.Fatal(err)
	}
	if err := second.Wait(ctx); err != nil {
		log.Fatal(err)
	}

	fmt.Println(ws.Surface().Title(), len(ws.Data().Items()))
	// Output:
	// Iris 1
}
