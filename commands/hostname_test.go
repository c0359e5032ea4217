package commands

import (
	"os"
	"testing"

	"github.com/josephlewis42/ezh/core/vos/vostest"
	"github.com/stretchr/testify/assert"
)

func TestHostname(t *testing.T) {
	cmd := vostest.Command(Hostname, "hostname")
	assert.NoError(t, cmd.Env.Setenv("HOSTNAME", "ezh"))

	out, err := cmd.CombinedOutput()

	assert.NoError(t, err)
	assert.Equal(t, "ezh", string(out))
}

func TestHostname_unset(t *testing.T) {
	want, err := os.Hostname()
	if err != nil {
		t.Skipf("machine has no hostname: %v", err)
	}

	out, err := vostest.Command(Hostname, "hostname").CombinedOutput()

	assert.NoError(t, err)
	assert.Equal(t, want, string(out))
}

func TestHostname_help(t *testing.T) {
	out, err := vostest.Command(Hostname, "hostname", "--help").CombinedOutput()

	assert.NoError(t, err)
	assert.Contains(t, string(out), "usage: hostname\nPrint the system's hostname.\n")
}
