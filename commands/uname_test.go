package commands

import (
	"runtime"
	"strings"
	"testing"

	"github.com/josephlewis42/ezh/core/vos/vostest"
	"github.com/stretchr/testify/assert"
)

func TestUname(t *testing.T) {
	kernel := strings.ToUpper(runtime.GOOS[:1]) + runtime.GOOS[1:]
	machine, ok := machineNames[runtime.GOARCH]
	if !ok {
		machine = runtime.GOARCH
	}

	cases := map[string]struct {
		args []string
		want string
	}{
		"no-arg":   {nil, kernel},
		"all":      {[]string{"-a"}, kernel + " box " + machine},
		"kernel":   {[]string{"-s"}, kernel},
		"node":     {[]string{"-n"}, "box"},
		"combined": {[]string{"-mn"}, "box " + machine},
		"machine":  {[]string{"--machine"}, machine},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cmd := vostest.Command(Uname, "uname", tc.args...)
			assert.NoError(t, cmd.Env.Setenv("HOSTNAME", "box"))

			out, err := cmd.CombinedOutput()

			assert.NoError(t, err)
			assert.Equal(t, tc.want, string(out))
			assert.Equal(t, 0, cmd.ExitStatus)
		})
	}
}

func TestUname_errors(t *testing.T) {
	cases := map[string]struct {
		args       []string
		wantPrefix string
	}{
		"invalid flag":  {[]string{"-z"}, "uname: invalid arguments"},
		"extra operand": {[]string{"x"}, "uname: extra operand \"x\""},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cmd := vostest.Command(Uname, "uname", tc.args...)

			out, err := cmd.CombinedOutput()

			assert.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(out), tc.wantPrefix), string(out))
			assert.Equal(t, 1, cmd.ExitStatus)
		})
	}
}
