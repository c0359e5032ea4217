// Package shell turns instructions into pipelines and runs them.
//
// An instruction goes through four stages:
//
//  1. Lex splits the raw text into tokens, respecting quotes and recording
//     variable references.
//  2. Postprocess substitutes variables, merges adjacent words and drops
//     whitespace.
//  3. Parse validates the pipeline grammar and builds Operations.
//  4. Execute runs the Operations as a single pipeline against the session
//     Environment.
package shell

import "fmt"

// TokenKind discriminates the Token union.
type TokenKind int

const (
	// TokenWord is an indivisible string: a command name, argument or value.
	TokenWord TokenKind = iota
	// TokenVarRef is a variable substitution, only produced by Lex.
	TokenVarRef
	// TokenSpace separates words, only produced by Lex.
	TokenSpace
	// TokenAssign is an unquoted '='.
	TokenAssign
	// TokenPipe is an unquoted '|'.
	TokenPipe
)

func (k TokenKind) String() string {
	switch k {
	case TokenWord:
		return "WORD"
	case TokenVarRef:
		return "SUBST"
	case TokenSpace:
		return "SPACE"
	case TokenAssign:
		return "ASSIGN"
	case TokenPipe:
		return "PIPE"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Token is a lexical unit. Tokens are values and compare with ==.
type Token struct {
	Kind TokenKind
	// Text holds the word for TokenWord and the variable name for TokenVarRef.
	Text string
	// Quoted is set for a TokenVarRef that appeared inside double quotes.
	Quoted bool
}

var (
	Space  = Token{Kind: TokenSpace}
	Assign = Token{Kind: TokenAssign}
	Pipe   = Token{Kind: TokenPipe}
)

// Word creates a TokenWord.
func Word(text string) Token {
	return Token{Kind: TokenWord, Text: text}
}

// VarRef creates a TokenVarRef.
func VarRef(name string, quoted bool) Token {
	return Token{Kind: TokenVarRef, Text: name, Quoted: quoted}
}

func (t Token) String() string {
	switch t.Kind {
	case TokenWord:
		return fmt.Sprintf("WORD(%q)", t.Text)
	case TokenVarRef:
		if t.Quoted {
			return fmt.Sprintf("QSUBST(%s)", t.Text)
		}
		return fmt.Sprintf("SUBST(%s)", t.Text)
	default:
		return t.Kind.String()
	}
}
