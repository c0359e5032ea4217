package shell

import (
	"strings"

	"github.com/josephlewis42/ezh/core/vos"
)

const (
	EnvHome     = "HOME"
	EnvHostname = "HOSTNAME"
	EnvUser     = "USER"

	DefaultPrompt = `\u@\h:\w\$ `
)

// ExpandPrompt fills in the escapes of a bash style prompt: \u user,
// \h host, \w working directory and \$ which is # for root.
func ExpandPrompt(format string, env *vos.Environment) string {
	if format == "" {
		format = DefaultPrompt
	}
	getenv := func(key string) string {
		v, _ := env.Getenv(key)
		return v
	}

	prompt := strings.ReplaceAll(format, `\u`, getenv(EnvUser))
	prompt = strings.ReplaceAll(prompt, `\h`, getenv(EnvHostname))

	pwd, _ := env.WorkingDirectory()
	if home := getenv(EnvHome); home != "" && strings.HasPrefix(pwd, home) {
		pwd = "~" + strings.TrimPrefix(pwd, home)
	}
	prompt = strings.ReplaceAll(prompt, `\w`, pwd)

	if getenv(EnvUser) == "root" {
		prompt = strings.ReplaceAll(prompt, `\$`, "#")
	} else {
		prompt = strings.ReplaceAll(prompt, `\$`, "$")
	}

	return prompt
}
