package commands

import (
	"bytes"
	"testing"

	"github.com/josephlewis42/ezh/core/vos/vostest"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestWhich(t *testing.T) {
	cases := map[string]struct {
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		"nothing": {},
		"builtin": {
			args:       []string{"echo", "wc"},
			wantStdout: "echo: shell builtin\nwc: shell builtin",
		},
		"on path": {
			args:       []string{"tool"},
			wantStdout: "/opt/bin/tool",
		},
		"first match wins": {
			args:       []string{"dup"},
			wantStdout: "/usr/bin/dup",
		},
		"not executable": {
			args:       []string{"data"},
			wantCode:   1,
			wantStderr: "which: no data in PATH\n",
		},
		"relative path": {
			args:       []string{"./bin/tool"},
			wantStdout: "/opt/bin/tool",
		},
		"mixed": {
			args:       []string{"nope", "tool"},
			wantCode:   1,
			wantStdout: "/opt/bin/tool",
			wantStderr: "which: no nope in PATH\n",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cmd := vostest.Command(Which, "which", tc.args...)
			assert.NoError(t, afero.WriteFile(cmd.Fs, "/opt/bin/tool", nil, 0755))
			assert.NoError(t, afero.WriteFile(cmd.Fs, "/opt/bin/dup", nil, 0755))
			assert.NoError(t, afero.WriteFile(cmd.Fs, "/usr/bin/dup", nil, 0755))
			assert.NoError(t, afero.WriteFile(cmd.Fs, "/usr/bin/data", nil, 0644))
			assert.NoError(t, cmd.Env.Setenv("PATH", "/usr/bin:/opt/bin"))
			assert.NoError(t, cmd.Env.Chdir("/opt"))

			stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
			cmd.Stdout, cmd.Stderr = stdout, stderr
			assert.NoError(t, cmd.Run())

			assert.Equal(t, tc.wantCode, cmd.ExitStatus)
			assert.Equal(t, tc.wantStdout, stdout.String())
			assert.Equal(t, tc.wantStderr, stderr.String())
		})
	}
}
