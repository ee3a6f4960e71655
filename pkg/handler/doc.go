/*
Package handler defines the contract every scripting action implements.

A Handler is instantiated once, registered under its action name, and reused for every
invocation. Before each call the dispatcher binds it to the ExecutionContext of the command
(which resets the transient parameter map) and unbinds it afterwards.

Most handlers embed Base, which carries the metadata and the parameter helpers, and
implement Process. Mutating handlers implement Snapshotter and call AddUndoPoint before
touching the context so the change can be reverted.
*/
package handler
