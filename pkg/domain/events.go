package domain

import "time"

// EventType defines the category of a status event.
type EventType string

const (
	// EventRunning is emitted when the worker dequeues a command.
	EventRunning EventType = "running"
	// EventFinished is emitted after a command was dispatched, successfully or not.
	EventFinished EventType = "finished"
	// EventIdle is emitted once the queue drained and no command is in flight.
	EventIdle EventType = "idle"
)

// StatusEvent describes a transition of the queue.
type StatusEvent struct {
	Type      EventType     `json:"type"`
	Timestamp time.Time     `json:"timestamp"`
	Command   *Command      `json:"-"`
	Err       error         `json:"-"`
	Duration  time.Duration `json:"duration,omitempty"`
	Pending   int           `json:"pending"`
}

// StatusListener receives queue status events. Listeners run on the worker goroutine.
type StatusListener func(StatusEvent)
