package dispatch

import (
	"errors"
	"strings"

	"github.com/google/shlex"
)

var (
	errEmptyCommand   = errors.New("empty command")
	errCommentCommand = errors.New("comment lines are not commands")
)

// Parse splits a command line into its action (first token) and options (the remaining tokens).
// Tokens follow shell quoting rules: "a b" and 'a b' are single options.
// A '#' inside the line is literal text; only a line starting with '#' is a comment.
func Parse(raw string) (string, []string, error) {
	if strings.HasPrefix(strings.TrimSpace(raw), "#") {
		return "", nil, errCommentCommand
	}
	tokens, err := shlex.Split(literalHashes(raw))
	if err != nil {
		return "", nil, err
	}
	if len(tokens) == 0 {
		return "", nil, errEmptyCommand
	}
	var options []string
	if len(tokens) > 1 {
		options = tokens[1:]
	}
	return tokens[0], options, nil
}

// literalHashes escapes '#' outside single quotes so shlex keeps it in the
// token instead of dropping the rest of the line as a comment.
func literalHashes(raw string) string {
	if !strings.Contains(raw, "#") {
		return raw
	}
	var b strings.Builder
	b.Grow(len(raw) + 4)
	single, double, escaped := false, false, false
	for _, r := range raw {
		switch {
		case escaped:
			escaped = false
		case single:
			if r == '\'' {
				single = false
			}
		case r == '\\':
			escaped = true
		case r == '\'' && !double:
			single = true
		case r == '"':
			double = !double
		case r == '#':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
