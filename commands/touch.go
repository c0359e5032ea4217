package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/josephlewis42/ezh/core/vos"
)

// Touch implements a POSIX touch command.
//
// https://pubs.opengroup.org/onlinepubs/9699919799/utilities/touch.html
func Touch(proc *vos.Process) int {
	cmd := &SimpleCommand{
		Use:          "touch [-c] [-r REF_FILE | -d DATE] FILE...",
		Short:        "Update the access and modification times of files.",
		Interspersed: true,
	}

	noCreate := cmd.Flags().BoolLong("no-create", 'c', "don't create files")
	reference := cmd.Flags().StringLong("reference", 'r', "", "use the modification time of REF_FILE", "REF_FILE")
	date := cmd.Flags().StringLong("date", 'd', "", "use DATE (RFC 3339) instead of now", "DATE")

	return cmd.Run(proc, func() int {
		targets := cmd.Args()
		if len(targets) == 0 {
			fmt.Fprintln(proc.Stderr(), "touch: missing file operand")
			return 1
		}

		stamp, err := touchTime(proc, *reference, *date)
		if err != nil {
			fmt.Fprintf(proc.Stderr(), "touch: %v\n", err)
			return 1
		}

		status := 0
		for _, name := range targets {
			if err := touchOne(proc, proc.Abs(name), stamp, !*noCreate); err != nil {
				fmt.Fprintf(proc.Stderr(), "touch: cannot touch %q: %v\n", name, err)
				status = 1
			}
		}
		return status
	})
}

func touchTime(proc *vos.Process, reference, date string) (time.Time, error) {
	switch {
	case reference != "" && date != "":
		return time.Time{}, errors.New("cannot specify times from more than one source")

	case reference != "":
		info, err := proc.Fs().Stat(proc.Abs(reference))
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to get attributes of %q: %w", reference, err)
		}
		return info.ModTime(), nil

	case date != "":
		stamp, err := time.Parse(time.RFC3339, date)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date format %q", date)
		}
		return stamp, nil

	default:
		return time.Now(), nil
	}
}

// touchOne sets both times on target, creating it when allowed.
// A missing file with creation disabled is not an error.
func touchOne(proc *vos.Process, target string, stamp time.Time, create bool) error {
	err := proc.Fs().Chtimes(target, stamp, stamp)
	if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if !create {
		return nil
	}

	fd, err := proc.Fs().Create(target)
	if err != nil {
		return err
	}
	if err := fd.Close(); err != nil {
		return err
	}
	return proc.Fs().Chtimes(target, stamp, stamp)
}

var _ vos.ProcessFunc = Touch

func init() {
	addCmd(Touch, "touch")
}
