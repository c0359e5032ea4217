package commands

import (
	"errors"
	"fmt"

	"github.com/josephlewis42/ezh/core/shell"
	"github.com/josephlewis42/ezh/core/vos"
)

// Exit codes of sh when an instruction can't be run.
const (
	shExitDiagnostic = 2
	shExitIO         = 1
)

// RunShell runs instructions in a subshell. Variables, the working directory
// and exit don't affect the calling session.
func RunShell(proc *vos.Process) int {
	cmd := &SimpleCommand{
		Use:   "sh [-c INSTRUCTION]",
		Short: "Run INSTRUCTION, or each line of standard input, in a subshell.",
	}
	commandFlag := cmd.Flags().String('c', "", "run INSTRUCTION and exit")

	return cmd.Run(proc, func() int {
		if len(cmd.Args()) > 0 {
			cmd.LogProgramError(proc, errors.New("scripts aren't supported, use -c or standard input"))
			return 1
		}

		sub := &shell.Session{
			Env: proc.Env().Clone(),
			Output: &shell.ConsoleOutput{
				Stdout: proc.Stdout(),
				Stderr: proc.Stderr(),
			},
			Dispatcher: &shell.Dispatcher{Resolver: BuiltinProcessResolver},
			Executor:   &shell.Executor{Fs: proc.Fs()},
		}

		if cmd.Flags().IsSet('c') {
			return runSubshellInstruction(sub, *commandFlag)
		}

		in := shell.NewScannerInput(proc.Stdin())
		code := 0
		for sub.Env.ExitStatus() == vos.StatusRunning {
			line, err := in.ReadInstruction()
			switch {
			case errors.Is(err, shell.ErrInputClosed):
				return code
			case err != nil:
				fmt.Fprintf(proc.Stderr(), "sh: %v\n", err)
				return shExitIO
			}
			code = runSubshellInstruction(sub, line)
		}
		return code
	})
}

func runSubshellInstruction(sub *shell.Session, line string) int {
	result, err := sub.RunInstruction(line)
	switch {
	case err != nil:
		return shExitIO
	case result == nil:
		return shExitDiagnostic
	default:
		return result.ExitCode
	}
}

var _ vos.ProcessFunc = RunShell

func init() {
	addCmd(RunShell, "sh")
}
