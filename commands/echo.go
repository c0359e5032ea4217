package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/josephlewis42/ezh/core/vos"
)

// simpleEscapes maps the character after a backslash to its value.
var simpleEscapes = map[byte]byte{
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'\\': '\\',
	'b':  '\b',
	'a':  '\a',
	'f':  '\f',
	'v':  '\v',
	'e':  '\033',
}

// unescape interprets the backslash escapes echo -e understands. Unknown
// escapes are kept verbatim. stop is set if \c was found, nothing after it
// should be printed.
func unescape(s string) (out string, stop bool) {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			sb.WriteByte(s[i])
			continue
		}

		next := s[i+1]
		switch {
		case next == 'c':
			return sb.String(), true

		case simpleEscapes[next] != 0:
			sb.WriteByte(simpleEscapes[next])
			i++

		case next == '0':
			// \0NNN, up to three octal digits
			digits := prefixLen(s[i+2:], 3, "01234567")
			value, _ := strconv.ParseUint("0"+s[i+2:i+2+digits], 8, 16)
			sb.WriteByte(byte(value))
			i += 1 + digits

		case next == 'x':
			// \xHH, one or two hex digits
			digits := prefixLen(s[i+2:], 2, "0123456789abcdefABCDEF")
			if digits == 0 {
				sb.WriteByte(s[i])
				continue
			}
			value, _ := strconv.ParseUint(s[i+2:i+2+digits], 16, 8)
			sb.WriteByte(byte(value))
			i += 1 + digits

		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String(), false
}

// prefixLen counts the leading characters of s in set, up to max.
func prefixLen(s string, max int, set string) int {
	n := 0
	for n < len(s) && n < max && strings.IndexByte(set, s[n]) >= 0 {
		n++
	}
	return n
}

// Echo writes its arguments separated by spaces. No newline is appended, the
// shell ends the line when it shows the result.
func Echo(proc *vos.Process) int {
	cmd := &SimpleCommand{
		Use:   "echo [-eE] [ARG] ...",
		Short: "Display a line of text.",
	}

	opt := cmd.Flags()
	escaped := opt.Bool('e', "interpret backslash escapes")
	raw := opt.Bool('E', "don't interpret backslash escapes, the default")

	return cmd.Run(proc, func() int {
		interpret := *escaped && !*raw

		words := make([]string, 0, len(cmd.Args()))
		for _, arg := range cmd.Args() {
			if interpret {
				var stop bool
				if arg, stop = unescape(arg); stop {
					words = append(words, arg)
					break
				}
			}
			words = append(words, arg)
		}

		fmt.Fprint(proc.Stdout(), strings.Join(words, " "))
		return 0
	})
}

var _ vos.ProcessFunc = Echo

func init() {
	addCmd(Echo, "echo")
}
