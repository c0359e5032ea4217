package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/josephlewis42/ezh/core/vos"
	"github.com/spf13/afero"
)

const (
	ModeMaskUser  fs.FileMode = 0700
	ModeMaskGroup             = 0070
	ModeMaskOther             = 0007
	ModeMaskAll               = ModeMaskUser | ModeMaskGroup | ModeMaskOther

	ModeRead  fs.FileMode = 0444
	ModeWrite             = 0222
	ModeExec              = 0111

	ChmodMask = ModeMaskAll
)

func blendChmod(origValue, newValue fs.FileMode) fs.FileMode {
	return (origValue &^ ChmodMask) | (newValue & ChmodMask)
}

// ChmodApplyMode applies a chmod mode expression to orig. The expression is
// either an octal number or comma separated symbolic clauses like u+x,go-w.
func ChmodApplyMode(mode string, orig fs.FileMode) (fs.FileMode, error) {
	// If mode is an octal integer, the value is absolute
	if octalMode, err := strconv.ParseUint(mode, 8, 32); err == nil {
		return blendChmod(orig, fs.FileMode(octalMode)), nil
	}

	result := orig
	for _, clause := range strings.Split(mode, ",") {
		var err error
		if result, err = applyClause(clause, result); err != nil {
			return orig, err
		}
	}
	return result, nil
}

type chmodAction func(orig, who, apply fs.FileMode) fs.FileMode

var chmodActions = map[rune]chmodAction{
	'+': func(orig, who, apply fs.FileMode) fs.FileMode {
		return blendChmod(orig, orig|(apply&who))
	},
	'-': func(orig, who, apply fs.FileMode) fs.FileMode {
		return blendChmod(orig, orig&^(apply&who))
	},
	'=': func(orig, who, apply fs.FileMode) fs.FileMode {
		return blendChmod(orig, (orig&^who)|(apply&who))
	},
}

func applyClause(clause string, orig fs.FileMode) (fs.FileMode, error) {
	var who, apply fs.FileMode
	var action chmodAction

	for _, modeChar := range clause {
		switch modeChar {
		case 'a':
			who |= ModeMaskAll
		case 'u':
			who |= ModeMaskUser
		case 'g':
			who |= ModeMaskGroup
		case 'o':
			who |= ModeMaskOther
		case '+', '-', '=':
			action = chmodActions[modeChar]
		case 'r':
			apply |= ModeRead
		case 'w':
			apply |= ModeWrite
		case 'x':
			apply |= ModeExec
		case 'X':
			if (orig&ModeExec) > 0 || orig.IsDir() {
				apply |= ModeExec
			}
		case 's', 't':
			// Not supported
		default:
			return orig, fmt.Errorf("unknown symbol %q", modeChar)
		}
	}

	if action == nil {
		return orig, errors.New("no action provided")
	}

	if who == 0 {
		who = ModeMaskAll
	}

	return action(orig, who, apply), nil
}

// Chmod implements a POSIX chmod command.
//
// Arguments aren't parsed with getopt so modes like -x work, -R is only
// recognized as the first argument.
func Chmod(proc *vos.Process) int {
	args := proc.Args()[1:]
	recursive := false
	if len(args) > 0 && args[0] == "-R" {
		recursive = true
		args = args[1:]
	}

	if len(args) < 2 {
		fmt.Fprintln(proc.Stderr(), "chmod: usage: chmod [-R] MODE FILE...")
		return 1
	}

	modeExpr := args[0]
	paths := args[1:]

	change := func(path string, info fs.FileInfo) error {
		newMode, err := ChmodApplyMode(modeExpr, info.Mode())
		if err != nil {
			return err
		}
		return proc.Fs().Chmod(path, newMode)
	}

	var anyFailed bool
	for _, path := range paths {
		target := proc.Abs(path)
		stat, err := proc.Fs().Stat(target)
		if err != nil {
			fmt.Fprintf(proc.Stderr(), "chmod: couldn't stat %s: %v\n", path, err)
			anyFailed = true
			continue
		}

		if !recursive || !stat.IsDir() {
			err = change(target, stat)
		} else {
			err = afero.Walk(proc.Fs(), target, func(name string, info fs.FileInfo, err error) error {
				if err != nil {
					return err
				}
				return change(name, info)
			})
		}

		if err != nil {
			fmt.Fprintf(proc.Stderr(), "chmod: %s: %v\n", path, err)
			anyFailed = true
		}
	}

	if anyFailed {
		return 1
	}
	return 0
}

var _ vos.ProcessFunc = Chmod

func init() {
	addCmd(Chmod, "chmod")
}
