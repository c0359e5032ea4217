package shell

import (
	"strings"
	"unicode"

	"github.com/josephlewis42/ezh/core/vos"
)

// Postprocess substitutes variables from env, merges adjacent words and
// drops whitespace. The result only holds Word, Assign and Pipe tokens.
//
// Unquoted values are split on whitespace, quoted values are kept verbatim.
// A Space next to an Assign fails with SpaceNearAssign, except the leading
// whitespace of a value substituted right after the Assign, which is dropped.
func Postprocess(tokens []Token, env *vos.Environment) ([]Token, error) {
	var out []Token
	// Kind of the last expanded token, -1 at the start.
	prev := TokenKind(-1)

	for _, tok := range tokens {
		expanded, err := expand(tok, env)
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenVarRef && prev == TokenAssign && len(expanded) > 0 && expanded[0].Kind == TokenSpace {
			expanded = expanded[1:]
		}

		for _, t := range expanded {
			switch t.Kind {
			case TokenSpace:
				if prev == TokenAssign {
					return nil, &LexError{Kind: SpaceNearAssign}
				}
			case TokenAssign:
				if prev == TokenSpace {
					return nil, &LexError{Kind: SpaceNearAssign}
				}
				out = append(out, t)
			case TokenWord:
				if prev == TokenWord {
					out[len(out)-1].Text += t.Text
				} else {
					out = append(out, t)
				}
			case TokenPipe:
				out = append(out, t)
			default:
				panic("postprocess: unexpected token " + t.String())
			}
			prev = t.Kind
		}
	}
	return out, nil
}

func expand(tok Token, env *vos.Environment) ([]Token, error) {
	if tok.Kind != TokenVarRef {
		return []Token{tok}, nil
	}

	value, err := env.Getenv(tok.Text)
	if err != nil {
		return nil, err
	}
	if tok.Quoted {
		return []Token{Word(value)}, nil
	}
	return splitWords(value), nil
}

// splitWords word-splits an unquoted value. Whitespace at either end is kept
// as a Space so the value doesn't merge with its neighbours.
func splitWords(value string) []Token {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return nil
	}

	var out []Token
	if unicode.IsSpace(firstRune(value)) {
		out = append(out, Space)
	}
	for i, f := range fields {
		if i > 0 {
			out = append(out, Space)
		}
		out = append(out, Word(f))
	}
	if unicode.IsSpace(lastRune(value)) {
		out = append(out, Space)
	}
	return out
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func lastRune(s string) rune {
	r := []rune(s)
	if len(r) == 0 {
		return 0
	}
	return r[len(r)-1]
}
