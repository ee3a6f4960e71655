/*
Package queue implements the command queue and its single worker.

Any number of goroutines may Add commands; exactly one worker goroutine drains the
queue in FIFO order and hands each command to a Processor (normally a
dispatch.Dispatcher). Because only the worker dispatches, handlers never run
concurrently and need no locking of their own.

Stop is cooperative: the command in flight runs to completion, every pending command
is discarded. There is no per-command timeout, so a stalled handler stalls the queue.

Listeners receive a "running" event when a command is dequeued, a "finished" event
after it was dispatched, and a single "idle" event once the queue drained and nothing
is in flight.
*/
package queue
