/*
Package dispatch turns one raw command line into a handler invocation.

Processing a line follows a fixed sequence: bind the execution context, split the
line into action and options, look the action up, check every requirement in
declaration order (the first unmet one aborts), invoke the handler, unbind.

Requirements outside the known capability set are indeterminate. By default they are
logged and treated as met so that an unknown token never blocks a script; with
WithStrictCapabilities they fail the command with ErrUnsupportedCapability.
*/
package dispatch
