package commands

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/josephlewis42/ezh/core/vos/vostest"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestChmodApplyMode(t *testing.T) {
	blank := fs.FileMode(0)
	file := fs.FileMode(0666)

	cases := []struct {
		orig     fs.FileMode
		mode     string
		wantMode fs.FileMode
		wantErr  error
	}{
		// Permissions
		{blank, "+r", ModeRead, nil},
		{blank, "+w", ModeWrite, nil},
		{blank, "+x", ModeExec, nil},
		{blank, "+rwx", fs.FileMode(0777), nil},

		// No-op permissions
		{blank, "+t", blank, nil},
		{blank, "+s", blank, nil},

		// Capital X, only sets execute if a dir or already has an exec bit
		{blank, "+X", blank, nil},
		{fs.ModeDir, "+X", fs.ModeDir | ModeExec, nil},

		// Groups: a,u,g,o
		{blank, "a+r", ModeRead, nil},
		{blank, "a+w", ModeWrite, nil},
		{blank, "a+x", ModeExec, nil},
		{blank, "a+rwx", fs.FileMode(0777), nil},
		{blank, "u+r", ModeRead & ModeMaskUser, nil},
		{blank, "u+w", ModeWrite & ModeMaskUser, nil},
		{blank, "u+x", ModeExec & ModeMaskUser, nil},
		{blank, "u+rwx", fs.FileMode(0777) & ModeMaskUser, nil},
		{blank, "g+r", ModeRead & ModeMaskGroup, nil},
		{blank, "g+w", ModeWrite & ModeMaskGroup, nil},
		{blank, "g+x", ModeExec & ModeMaskGroup, nil},
		{blank, "g+rwx", fs.FileMode(0777) & ModeMaskGroup, nil},
		{blank, "o+r", ModeRead & ModeMaskOther, nil},
		{blank, "o+w", ModeWrite & ModeMaskOther, nil},
		{blank, "o+x", ModeExec & ModeMaskOther, nil},
		{blank, "o+rwx", fs.FileMode(0777) & ModeMaskOther, nil},

		// Actions:
		{ModeWrite | ModeRead, "-w", ModeRead, nil},
		{fs.FileMode(0777), "=r", ModeRead, nil},

		// Octal permissions
		{blank, "644", fs.FileMode(0644), nil},

		// Don't wipe non-permission bits
		{fs.ModeDir | fs.ModeSticky, "+x", fs.ModeDir | fs.ModeSticky | ModeExec, nil},
		{fs.ModeDir | fs.ModeSticky, "-x", fs.ModeDir | fs.ModeSticky, nil},
		{fs.ModeDir | fs.ModeSticky, "=x", fs.ModeDir | fs.ModeSticky | ModeExec, nil},
		{fs.ModeDir | fs.ModeSticky, "644", fs.ModeDir | fs.ModeSticky | fs.FileMode(0644), nil},

		// Clauses
		{file, "u+x,go-w", fs.FileMode(0744), nil},
		{fs.FileMode(0777), "u=r", fs.FileMode(0477), nil},
		{fs.FileMode(0100), "a+X", fs.FileMode(0111), nil},
		{file, "u+x,z", file, errors.New("unknown symbol 'z'")},

		// Bad mode expressions
		{file, "o+z", file, errors.New("unknown symbol 'z'")},
		{file, "x", file, errors.New("no action provided")},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("chmod %q %q to %q %v", tc.mode, tc.orig, tc.wantMode, tc.wantErr), func(t *testing.T) {

			gotMode, gotErr := ChmodApplyMode(tc.mode, tc.orig)
			if tc.wantErr != nil || gotErr != nil {
				if tc.wantErr.Error() != gotErr.Error() {
					t.Errorf("wanted err %q got err %q", tc.wantErr, gotErr)
				}
			}

			if gotMode != tc.wantMode {
				t.Errorf("wanted mode %q got mode %q", tc.wantMode, gotMode)
			}
		})
	}
}

func TestChmod(t *testing.T) {
	cases := map[string]struct {
		args       []string
		wantCode   int
		wantMode   fs.FileMode
		wantStderr string
	}{
		"usage":    {[]string{"+x"}, 1, 0644, "chmod: usage: chmod [-R] MODE FILE...\n"},
		"octal":    {[]string{"600", "file"}, 0, 0600, ""},
		"symbolic": {[]string{"u+x", "/tmp/file"}, 0, 0744, ""},
		"remove":   {[]string{"-r", "file"}, 0, 0200, ""},
		"bad mode": {[]string{"+z", "file"}, 1, 0644, "chmod: file: unknown symbol 'z'\n"},
		"missing":  {[]string{"+x", "nope", "file"}, 1, 0755, "chmod: couldn't stat nope"},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cmd := vostest.Command(Chmod, "chmod", tc.args...)
			assert.NoError(t, afero.WriteFile(cmd.Fs, "/tmp/file", nil, 0644))
			assert.NoError(t, cmd.Env.Chdir("/tmp"))

			stderr := &bytes.Buffer{}
			cmd.Stdout, cmd.Stderr = &bytes.Buffer{}, stderr
			assert.NoError(t, cmd.Run())

			assert.Equal(t, tc.wantCode, cmd.ExitStatus)
			if tc.wantStderr == "" {
				assert.Empty(t, stderr.String())
			} else {
				assert.True(t, strings.HasPrefix(stderr.String(), tc.wantStderr), stderr.String())
			}

			stat, err := cmd.Fs.Stat("/tmp/file")
			assert.NoError(t, err)
			assert.Equal(t, tc.wantMode, stat.Mode().Perm())
		})
	}
}

func TestChmod_recursive(t *testing.T) {
	cmd := vostest.Command(Chmod, "chmod", "-R", "go-rwx", "/dir")
	assert.NoError(t, cmd.Fs.MkdirAll("/dir/sub", 0755))
	assert.NoError(t, afero.WriteFile(cmd.Fs, "/dir/sub/file", nil, 0644))
	assert.NoError(t, afero.WriteFile(cmd.Fs, "/other", nil, 0644))

	out, err := cmd.CombinedOutput()

	assert.NoError(t, err)
	assert.Empty(t, string(out))
	assert.Equal(t, 0, cmd.ExitStatus)
	for name, want := range map[string]fs.FileMode{
		"/dir":          0700,
		"/dir/sub":      0700,
		"/dir/sub/file": 0600,
		"/other":        0644,
	} {
		stat, err := cmd.Fs.Stat(name)
		assert.NoError(t, err)
		assert.Equal(t, want, stat.Mode().Perm(), name)
	}
}
