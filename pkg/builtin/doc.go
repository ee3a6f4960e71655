// Package builtin contains the stock handlers shipped with vizscript:
// data management, connection handling, undo/redo and surface commands.
package builtin
