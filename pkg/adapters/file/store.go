// Package file keeps scripts as plain text files in a scripts-home directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/vizscript/pkg/domain"
	"github.com/aretw0/vizscript/pkg/script"
)

// DefaultHome is used when no scripts home is configured.
var DefaultHome = filepath.Join(".vizscript", "scripts")

// ErrInvalidName is returned for names that cannot be used as a file in the scripts home.
var ErrInvalidName = errors.New("invalid script name")

// Store implements ports.ScriptStore on the local filesystem.
// Every script is one file named after the script, one command per line.
type Store struct {
	Home string
}

// New creates a Store rooted at home, DefaultHome if empty.
func New(home string) *Store {
	if home == "" {
		home = DefaultHome
	}
	return &Store{Home: home}
}

// Path returns the file backing the named script.
func (s *Store) Path(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.Home, name), nil
}

// ValidateName rejects names that are empty, hidden, backups or leave the scripts home.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	case strings.ContainsAny(name, `/\`) || name == "..":
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	case !listable(name):
		return fmt.Errorf("%w: %q would be hidden from the script list", ErrInvalidName, name)
	}
	return nil
}

// listable applies the scripts-home listing rules: no backups, no hidden files.
func listable(name string) bool {
	return !strings.HasSuffix(name, "~") &&
		!strings.HasSuffix(name, ".bak") &&
		!strings.HasPrefix(name, ".")
}

// Save writes the script atomically: temp file, fsync, rename.
func (s *Store) Save(ctx context.Context, name string, lines []string) error {
	destPath, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := script.CheckLines(lines); err != nil {
		return err
	}

	if err := os.MkdirAll(s.Home, 0o755); err != nil {
		return fmt.Errorf("failed to ensure scripts home: %w", err)
	}

	// Same directory, so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.Home, ".tmp-"+name+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.WriteString(script.Format(lines)); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing script for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to script: %w", err)
	}
	return nil
}

// Load reads the named script. Blank lines are dropped.
func (s *Store) Load(ctx context.Context, name string) ([]string, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrScriptNotFound, name)
		}
		return nil, fmt.Errorf("failed to read script file: %w", err)
	}
	return script.Parse(string(data)), nil
}

// Delete removes the script file.
func (s *Store) Delete(ctx context.Context, name string) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete script file: %w", err)
	}
	return nil
}

// List returns the scripts in the home directory, sorted.
// Directories (e.g. ".git"), backups ("~", ".bak") and hidden files are skipped.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Home)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list scripts: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !listable(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}
