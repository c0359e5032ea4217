package commands

import (
	"fmt"
	"os/user"

	"github.com/josephlewis42/ezh/core/vos"
)

// Id prints the user and primary group ezh runs as. $USER only replaces the
// displayed user name.
func Id(proc *vos.Process) int {
	cmd := &SimpleCommand{
		Use:   "id",
		Short: "Print user and group information.",
	}

	return cmd.RunE(proc, func() error {
		u, err := user.Current()
		if err != nil {
			return err
		}

		name := u.Username
		if override, ok, _ := proc.Env().LookupEnv("USER"); ok {
			name = override
		}

		groupName := u.Gid
		if g, err := user.LookupGroupId(u.Gid); err == nil {
			groupName = g.Name
		}

		fmt.Fprintf(proc.Stdout(), "uid=%s(%s) gid=%s(%s)", u.Uid, name, u.Gid, groupName)
		return nil
	})
}

var _ vos.ProcessFunc = Id

func init() {
	addCmd(Id, "id")
}
