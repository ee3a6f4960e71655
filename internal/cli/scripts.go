package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/vizscript/pkg/script"
)

// ListScripts prints the names of the library scripts, one per line.
func ListScripts(ctx context.Context, env *Env, out io.Writer) error {
	names, err := env.Library.List(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}

// ShowScript prints a library script.
func ShowScript(ctx context.Context, env *Env, name string, out io.Writer) error {
	lines, err := env.Library.Load(ctx, name)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, script.Format(lines))
	return err
}

// RemoveScript deletes a library script.
func RemoveScript(ctx context.Context, env *Env, name string, out io.Writer) error {
	if err := env.Library.Delete(ctx, name); err != nil {
		return err
	}
	printSystemMessage(out, "Script '%s' removed.", name)
	return nil
}

// ImportScript copies the script file at path into the library under name.
func ImportScript(ctx context.Context, env *Env, name, path string, out io.Writer) error {
	lines, err := script.Load(path)
	if err != nil {
		return err
	}
	if err := env.Library.Save(ctx, name, lines); err != nil {
		return err
	}
	printSystemMessage(out, "Script '%s' saved (%d lines).", name, len(lines))
	return nil
}
