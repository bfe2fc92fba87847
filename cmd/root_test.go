package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"run", "seed", "serve"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
		assert.NotNil(t, cmd.RunE, name)
	}
	assert.NotNil(t, root.RunE, "bare invocation runs the battery")
}

func TestRootCmd_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		env     map[string]string
		wantErr string
	}{
		{"Unknown command", []string{"report"}, nil, `unknown command "report"`},
		{"Extra argument", []string{"seed", "now"}, nil, "unknown command"},
		{"Invalid preset", []string{"seed"}, map[string]string{"QUERY_PRESET": "mongosh"}, "QUERY_PRESET"},
		{"Invalid pagination", []string{"run"}, map[string]string{"PAGE_LIMIT": "-1"}, "pagination"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			var out bytes.Buffer
			root := newRootCmd()
			root.SetArgs(tt.args)
			root.SetOut(&out)
			root.SetErr(&out)

			err := root.Execute()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRootCmd_Help(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs([]string{"--help"})
	root.SetOut(&out)

	require.NoError(t, root.Execute())
	for _, name := range []string{"run", "seed", "serve"} {
		assert.Contains(t, out.String(), name)
	}
}
