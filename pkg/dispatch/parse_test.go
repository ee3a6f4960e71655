package dispatch_test

import (
	"testing"

	"github.com/aretw0/vizscript/pkg/dispatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw     string
		action  string
		options []string
	}{
		{raw: "refresh", action: "refresh"},
		{raw: "  clear-data  ", action: "clear-data"},
		{raw: `set-title "Iris dataset"`, action: "set-title", options: []string{"Iris dataset"}},
		{raw: `connect db://host user='a b' readonly=true`, action: "connect", options: []string{"db://host", "user=a b", "readonly=true"}},
		{raw: `echo a\ b`, action: "echo", options: []string{"a b"}},
		{raw: "set-title Chart #1", action: "set-title", options: []string{"Chart", "#1"}},
		{raw: `set-title "Chart #1"`, action: "set-title", options: []string{"Chart #1"}},
		{raw: `echo '#x' "it's #2" a#b`, action: "echo", options: []string{"#x", "it's #2", "a#b"}},
		{raw: `echo \#tag`, action: "echo", options: []string{"#tag"}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			action, options, err := dispatch.Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.action, action)
			assert.Equal(t, tt.options, options)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, raw := range []string{"", "   ", `echo "open`, "# note", "  #set-title x"} {
		_, _, err := dispatch.Parse(raw)
		assert.Error(t, err, raw)
	}
}
