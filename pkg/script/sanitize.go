package script

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxLineSize bounds a single command line received from outside.
	DefaultMaxLineSize = 4096
	// EnvMaxLineSize overrides DefaultMaxLineSize.
	EnvMaxLineSize = "VIZSCRIPT_MAX_LINE_SIZE"
)

var (
	ErrLineTooLarge = errors.New("command line exceeds maximum allowed size")
	ErrInvalidUTF8  = errors.New("command line contains invalid UTF-8 sequences")
	ErrMultiline    = errors.New("command line must not contain line breaks")
)

// Sanitize checks a command line received from a remote client: size limit,
// valid UTF-8, a single line. Other control characters (ANSI escapes, NUL, BEL)
// are stripped so they never reach logs or terminals.
func Sanitize(line string) (string, error) {
	limit := maxLineSize()
	if len(line) > limit {
		// Rejected rather than truncated: a truncated command could mean something else.
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrLineTooLarge, len(line), limit)
	}
	if !utf8.ValidString(line) {
		return "", ErrInvalidUTF8
	}
	line = strings.TrimRight(line, "\r\n")
	if strings.ContainsAny(line, "\r\n") {
		return "", ErrMultiline
	}

	clean := true
	for _, r := range line {
		if unicode.IsControl(r) && r != '\t' {
			clean = false
			break
		}
	}
	if clean {
		return line, nil
	}

	var b strings.Builder
	b.Grow(len(line))
	for _, r := range line {
		if !unicode.IsControl(r) || r == '\t' {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

// SanitizeAll applies Sanitize to every line and stops at the first failure.
func SanitizeAll(lines []string) ([]string, error) {
	out := make([]string, len(lines))
	for i, line := range lines {
		clean, err := Sanitize(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		out[i] = clean
	}
	return out, nil
}

func maxLineSize() int {
	if val := os.Getenv(EnvMaxLineSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxLineSize
}
