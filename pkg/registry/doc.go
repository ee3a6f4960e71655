/*
Package registry maps action names to handlers.

The registry is built once at start-up from an explicit registration table and is
read-mostly afterwards. Lookups return at most one handler per action: when two
handlers declare the same action, the first one registered stays reachable and the
collision is logged. WithStrict turns that collision into ErrDuplicateAction.
*/
package registry
