package queue

import (
	"sync"
	"time"

	"github.com/aretw0/vizscript/pkg/script"
)

// TimestampLayout formats the recording markers.
const TimestampLayout = "2006-01-02 15:04:05"

// recorder keeps the command history and the recording side-channel.
type recorder struct {
	mu        sync.Mutex
	history   []string
	recorded  []string
	recording bool
	now       func() time.Time
}

func newRecorder() *recorder {
	return &recorder{now: time.Now}
}

// add appends the cleaned-up command to the history and, while recording, to the recording.
func (r *recorder) add(raw string) {
	cmd := script.StripForRecording(raw)
	if cmd == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, cmd)
	if r.recording {
		r.recorded = append(r.recorded, cmd)
	}
}

func (r *recorder) mark(lines ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, lines...)
}

func (r *recorder) start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		return
	}
	r.recording = true
	r.recorded = append(r.recorded, script.Comment+" Recording started at "+r.now().Format(TimestampLayout), "")
}

func (r *recorder) stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.recording {
		return
	}
	r.recording = false
	r.recorded = append(r.recorded, "", script.Comment+" Recording stopped at "+r.now().Format(TimestampLayout))
}

func (r *recorder) isRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

func (r *recorder) snapshot(recorded bool) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	src := r.history
	if recorded {
		src = r.recorded
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}
