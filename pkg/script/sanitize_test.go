package script_test

import (
	"strings"
	"testing"

	"github.com/aretw0/vizscript/pkg/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize_SizeLimit(t *testing.T) {
	limit := script.DefaultMaxLineSize

	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"Under Limit", limit - 1, false},
		{"Exact Limit", limit, false},
		{"Over Limit", limit + 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := script.Sanitize(strings.Repeat("a", tt.size))
			if tt.wantErr {
				assert.ErrorIs(t, err, script.ErrLineTooLarge)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitize_EnvOverride(t *testing.T) {
	t.Setenv(script.EnvMaxLineSize, "8")
	_, err := script.Sanitize("set-title long title")
	assert.ErrorIs(t, err, script.ErrLineTooLarge)

	t.Setenv(script.EnvMaxLineSize, "garbage")
	_, err = script.Sanitize("set-title long title")
	assert.NoError(t, err)
}

func TestSanitize_Characters(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		err   error
	}{
		{"plain", "echo hello", "echo hello", nil},
		{"tab kept", "echo\thello", "echo\thello", nil},
		{"ansi stripped", "echo \x1b[31mred\x1b[0m", "echo [31mred[0m", nil},
		{"nul and bell stripped", "echo a\x00b\x07", "echo ab", nil},
		{"trailing newline trimmed", "clear-data\r\n", "clear-data", nil},
		{"embedded newline", "clear-data\nundo", "", script.ErrMultiline},
		{"invalid utf8", "echo \xff", "", script.ErrInvalidUTF8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := script.Sanitize(tt.input)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeAll(t *testing.T) {
	got, err := script.SanitizeAll([]string{"clear-data", "echo \x07hi"})
	require.NoError(t, err)
	assert.Equal(t, []string{"clear-data", "echo hi"}, got)

	_, err = script.SanitizeAll([]string{"clear-data", "a\nb"})
	assert.ErrorIs(t, err, script.ErrMultiline)
	assert.Contains(t, err.Error(), "line 2")
}
