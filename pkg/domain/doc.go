/*
Package domain contains the core domain models of the vizscript command engine.

It defines the entities shared by the registry, the dispatcher and the queue: commands,
capabilities, the execution context a handler runs against, undo points and status events.
This package is kept pure and free of I/O, following Hexagonal Architecture principles.

# Key Entities

  - Command: One line of script text waiting to be (or already) dispatched.
  - Capability: A closed set of preconditions a handler may require from the ExecutionContext.
  - ExecutionContext: The bundle of visualization surface, data manager, undo manager and connection.
  - UndoPoint: An opaque snapshot plus a label, pushed before a mutating handler alters state.
  - StatusEvent: Notification emitted by the queue when a command starts, finishes, or the queue goes idle.
*/
package domain
