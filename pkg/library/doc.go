// Package library manages named scripts on top of a ports.ScriptStore.
//
// Access to one script is serialized in-process with ref-counted locks and,
// when a ports.DistributedLocker is configured, across instances.
package library
