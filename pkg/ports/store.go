package ports

import "context"

// ScriptStore persists named scripts.
type ScriptStore interface {
	// Save stores the lines under name, replacing any previous content.
	Save(ctx context.Context, name string, lines []string) error

	// Load retrieves a script.
	// Returns domain.ErrScriptNotFound if the script does not exist.
	Load(ctx context.Context, name string) ([]string, error)

	// Delete removes a script. Deleting a missing script is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored script names, sorted.
	List(ctx context.Context) ([]string, error)
}
