// Package script handles the text form of scripts: one command per line, blank lines
// ignored, lines starting with Comment skipped when enqueuing.
package script

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// Comment starts a line that is kept in files but never dispatched.
	Comment = "#"
	// ScriptEnd is the delimiter some producers append after the last command.
	ScriptEnd = "."
)

// IsCommand reports whether line is neither blank nor a comment.
func IsCommand(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed != "" && !strings.HasPrefix(trimmed, Comment)
}

// Filter drops blank and comment lines.
func Filter(lines []string) []string {
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		if IsCommand(line) {
			result = append(result, line)
		}
	}
	return result
}

// FilterBlank drops blank lines only.
func FilterBlank(lines []string) []string {
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			result = append(result, line)
		}
	}
	return result
}

// Parse splits script text into its non-blank lines.
// Windows line endings are accepted, so a CR ending a line is dropped.
func Parse(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return FilterBlank(strings.Split(text, "\n"))
}

// Format joins lines into script text, one per line, with a trailing newline.
// Parse(Format(lines)) equals FilterBlank(lines) when CheckLines(lines) is nil;
// a line holding CR or LF does not survive the text form.
func Format(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// CheckLines reports the first line that contains a CR or LF.
func CheckLines(lines []string) error {
	for i, line := range lines {
		if strings.ContainsAny(line, "\r\n") {
			return fmt.Errorf("line %d: %w", i+1, ErrMultiline)
		}
	}
	return nil
}

// StripForRecording removes blank lines and a trailing ScriptEnd delimiter from raw.
// The result is empty when nothing is left to record.
func StripForRecording(raw string) string {
	lines := Parse(raw)
	if n := len(lines); n > 0 && strings.TrimSpace(lines[n-1]) == ScriptEnd {
		lines = lines[:n-1]
	}
	return strings.Join(lines, "\n")
}

// Load reads the script at path.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return Parse(string(data)), nil
}

// Save writes lines to path, creating the parent directory if needed.
func Save(path string, lines []string) error {
	if err := CheckLines(lines); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to ensure script directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(Format(lines)), 0o644); err != nil {
		return fmt.Errorf("failed to write script: %w", err)
	}
	return nil
}
