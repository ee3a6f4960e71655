/*
Package ports defines the driven ports (interfaces) of vizscript.

These interfaces decouple the engine from the places scripts are kept, so the
same library code works with a scripts-home directory, memory or Redis.

# Key Interfaces

  - ScriptStore: persists named scripts (lists of command lines).
  - DistributedLocker: serializes writers of the same script across instances.
*/
package ports
