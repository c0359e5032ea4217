package commands

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/josephlewis42/ezh/core/vos"
)

var whitespaceRuns = regexp.MustCompile(`\s+`)

// Grep exit codes.
const (
	grepInvalidArgs    = 1
	grepReadError      = 2
	grepInvalidPattern = 3
)

// Grep prints the lines of a file or stdin that contain a match of a regular
// expression.
//
// With -A overlapping and adjacent context regions are merged and disjoint
// regions are separated by "--".
func Grep(proc *vos.Process) int {
	cmd := &SimpleCommand{
		Use:          "grep [-iw] [-A NUM] PATTERN [FILE]",
		Short:        "Search a file or standard input for lines matching a pattern.",
		Interspersed: true,
	}

	opts := cmd.Flags()
	ignoreCase := opts.Bool('i', "ignore case distinctions")
	entireWords := opts.Bool('w', "match only entire words")
	afterContext := opts.Int('A', -1, "print NUM lines of trailing context", "NUM")

	return cmd.Run(proc, func() int {
		args := cmd.Args()
		switch {
		case len(args) == 0:
			cmd.LogProgramError(proc, errors.New("invalid arguments: missing PATTERN"))
			return grepInvalidArgs
		case len(args) > 2:
			cmd.LogProgramError(proc, errors.New("invalid arguments: expected PATTERN and at most one FILE"))
			return grepInvalidArgs
		case opts.IsSet('A') && *afterContext < 0:
			cmd.LogProgramError(proc, fmt.Errorf("invalid arguments: -A must be non-negative, got %d", *afterContext))
			return grepInvalidArgs
		}

		matcher, err := newLineMatcher(args[0], *ignoreCase, *entireWords)
		if err != nil {
			cmd.LogProgramError(proc, fmt.Errorf("invalid pattern: %w", err))
			return grepInvalidPattern
		}

		name := ""
		if len(args) == 2 {
			name = args[1]
			if _, err := proc.Fs().Stat(proc.Abs(name)); err != nil {
				cmd.LogProgramError(proc, fmt.Errorf("invalid arguments: %w", err))
				return grepInvalidArgs
			}
		}
		content, err := ReadInputOrFile(proc, name)
		if err != nil {
			cmd.LogProgramError(proc, err)
			return grepReadError
		}

		lines := splitLines(string(content))
		var matches []int
		for i, line := range lines {
			if matcher(line) {
				matches = append(matches, i)
			}
		}

		out := grepOutput(lines, matches, *afterContext, opts.IsSet('A'))
		fmt.Fprint(proc.Stdout(), strings.Join(out, "\n"))
		return 0
	})
}

var _ vos.ProcessFunc = Grep

func newLineMatcher(pattern string, ignoreCase, entireWords bool) (func(string) bool, error) {
	flags := ""
	if ignoreCase {
		flags = "(?i)"
	}

	if !entireWords {
		re, err := regexp.Compile(flags + pattern)
		if err != nil {
			return nil, err
		}
		return re.MatchString, nil
	}

	re, err := regexp.Compile(flags + "^(?:" + pattern + ")$")
	if err != nil {
		return nil, err
	}
	return func(line string) bool {
		for _, word := range whitespaceRuns.Split(line, -1) {
			if re.MatchString(word) {
				return true
			}
		}
		return false
	}, nil
}

// grepOutput selects the matching lines plus after lines of trailing
// context for each.
func grepOutput(lines []string, matches []int, after int, separate bool) []string {
	if after < 0 {
		after = 0
	}

	var out []string
	last := -1
	for _, m := range matches {
		start := m
		if last+1 > start {
			start = last + 1
		}
		end := m + after
		if end > len(lines)-1 {
			end = len(lines) - 1
		}

		if separate && last >= 0 && start > last+1 {
			out = append(out, "--")
		}
		for i := start; i <= end; i++ {
			out = append(out, lines[i])
		}
		if end > last {
			last = end
		}
	}
	return out
}

func init() {
	addCmd(Grep, "grep")
}
