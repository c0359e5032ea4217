package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/josephlewis42/ezh/core/vos"
)

type wcCount struct {
	lines int
	words int
	bytes int
}

// countText counts lines the way splitLines splits them, so text ending in
// a newline has an extra empty line.
func countText(content []byte) wcCount {
	var out wcCount
	out.bytes = len(content)
	for _, line := range splitLines(string(content)) {
		out.lines++
		out.words += len(strings.Fields(line))
	}
	return out
}

// Wc counts the lines, words and bytes of a file or stdin.
func Wc(proc *vos.Process) int {
	cmd := &SimpleCommand{
		Use:   "wc [-lwc] [FILE]",
		Short: "Print the number of lines, words, and bytes in FILE or standard input.",
	}

	opts := cmd.Flags()
	writeLines := opts.Bool('l', "print the line count")
	writeWords := opts.Bool('w', "print the word count")
	writeBytes := opts.Bool('c', "print the byte count")

	return cmd.Run(proc, func() int {
		args := cmd.Args()
		if len(args) > 1 {
			cmd.LogProgramError(proc, errors.New("expected one or zero arguments"))
			return 1
		}

		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		content, err := ReadInputOrFile(proc, name)
		if err != nil {
			cmd.LogProgramError(proc, err)
			return 2
		}

		count := countText(content)
		nonePicked := !*writeLines && !*writeWords && !*writeBytes

		var cols []string
		if *writeLines || nonePicked {
			cols = append(cols, fmt.Sprint(count.lines))
		}
		if *writeWords || nonePicked {
			cols = append(cols, fmt.Sprint(count.words))
		}
		if *writeBytes || nonePicked {
			cols = append(cols, fmt.Sprint(count.bytes))
		}

		fmt.Fprint(proc.Stdout(), strings.Join(cols, "\t"))
		return 0
	})
}

var _ vos.ProcessFunc = Wc

func init() {
	addCmd(Wc, "wc")
}
