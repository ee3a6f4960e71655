package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/aretw0/vizscript/pkg/domain"
	"github.com/muesli/termenv"
)

// PrintBanner writes the vizscript ASCII banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{`        _                _       _   `, "#38bdf8"},
		{` __   _(_)___ ___  ___ _ _(_)_ __ | |_ `, "#22d3ee"},
		{` \ \ / / |_ // __|/ __| '__| | '_ \| __|`, "#2dd4bf"},
		{`  \ V /| |/ / \__ \ (__| |  | | |_) | |_ `, "#34d399"},
		{`   \_/ |_/___||___/\___|_|  |_| .__/ \__|`, "#4ade80"},
		{`                               |_|        `, "#a3e635"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// StatusLine formats a queue status event for the interactive shell.
// It returns "" for events that are not worth a line.
func StatusLine(out *termenv.Output, ev domain.StatusEvent) string {
	switch ev.Type {
	case domain.EventFinished:
		if ev.Command == nil {
			return ""
		}
		if ev.Err != nil {
			return out.String("✗ "+ev.Command.Raw).Foreground(out.Color("#f87171")).String()
		}
		return out.String(fmt.Sprintf("✓ %s (%s)", ev.Command.Raw, ev.Duration.Round(time.Millisecond))).
			Foreground(out.Color("#4ade80")).Faint().String()
	case domain.EventRunning:
		if ev.Pending == 0 {
			return ""
		}
		return out.String(fmt.Sprintf("… %d pending", ev.Pending)).Faint().String()
	}
	return ""
}
