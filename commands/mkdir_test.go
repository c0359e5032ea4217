package commands

import (
	"bytes"
	"io/fs"
	"testing"

	"github.com/josephlewis42/ezh/core/vos/vostest"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestMkdir(t *testing.T) {
	cases := map[string]struct {
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
		wantDirs   []string
	}{
		"missing operand": {
			wantCode:   1,
			wantStderr: "mkdir: missing operand\n",
		},
		"relative": {
			args:     []string{"a", "b"},
			wantDirs: []string{"/home/a", "/home/b"},
		},
		"verbose": {
			args:       []string{"a", "-v", "b"},
			wantStdout: "mkdir: created directory \"a\"\nmkdir: created directory \"b\"",
			wantDirs:   []string{"/home/a", "/home/b"},
		},
		"parents": {
			args:     []string{"-p", "/x/y/z"},
			wantDirs: []string{"/x", "/x/y", "/x/y/z"},
		},
		"exists": {
			args:       []string{"/home"},
			wantCode:   1,
			wantStderr: "mkdir: cannot create directory \"/home\"",
		},
		"exists with parents": {
			args: []string{"-pv", "/home"},
		},
		"bad mode": {
			args:       []string{"-m", "q", "a"},
			wantCode:   1,
			wantStderr: "mkdir: invalid mode \"q\"",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cmd := vostest.Command(Mkdir, "mkdir", tc.args...)
			assert.NoError(t, cmd.Fs.MkdirAll("/home", 0755))
			assert.NoError(t, cmd.Env.Chdir("/home"))

			stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
			cmd.Stdout, cmd.Stderr = stdout, stderr
			assert.NoError(t, cmd.Run())

			assert.Equal(t, tc.wantCode, cmd.ExitStatus)
			assert.Equal(t, tc.wantStdout, stdout.String())
			if tc.wantStderr == "" {
				assert.Empty(t, stderr.String())
			} else {
				assert.Contains(t, stderr.String(), tc.wantStderr)
			}
			for _, dir := range tc.wantDirs {
				isDir, err := afero.IsDir(cmd.Fs, dir)
				assert.NoError(t, err)
				assert.True(t, isDir, dir)
			}
		})
	}
}

func TestMkdir_mode(t *testing.T) {
	cases := map[string]struct {
		args []string
		want map[string]fs.FileMode
	}{
		"default": {
			args: []string{"/a"},
			want: map[string]fs.FileMode{"/a": 0755},
		},
		"octal": {
			args: []string{"-m", "700", "/a"},
			want: map[string]fs.FileMode{"/a": 0700},
		},
		"symbolic": {
			args: []string{"--mode=go-w", "/a"},
			want: map[string]fs.FileMode{"/a": 0755},
		},
		"parents keep default": {
			args: []string{"-p", "-m", "711", "/a/b/c"},
			want: map[string]fs.FileMode{"/a": 0755, "/a/b": 0755, "/a/b/c": 0711},
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cmd := vostest.Command(Mkdir, "mkdir", tc.args...)

			out, err := cmd.CombinedOutput()

			assert.NoError(t, err)
			assert.Empty(t, string(out))
			for name, want := range tc.want {
				stat, err := cmd.Fs.Stat(name)
				assert.NoError(t, err)
				assert.Equal(t, want, stat.Mode().Perm(), name)
			}
		})
	}
}
