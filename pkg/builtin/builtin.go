package builtin

import (
	"io"

	"github.com/aretw0/vizscript/pkg/handler"
)

// Handlers returns the stock handler table. echo writes to w.
// Order matters: on a name collision the first entry wins.
func Handlers(w io.Writer) []handler.Handler {
	return []handler.Handler{
		NewClearData(),
		NewAddDataFile(),
		NewConnect(),
		NewDisconnect(),
		NewUndo(),
		NewRedo(),
		NewSetTitle(),
		NewRefresh(),
		NewEcho(w),
	}
}
