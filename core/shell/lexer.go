package shell

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type lexState int

const (
	stateUnquotedWord lexState = iota
	stateWhitespace
	stateSingleQuoted
	stateDoubleQuoted
	stateSubstitution
	stateSubstitutionInDoubleQuoted
)

func (s lexState) String() string {
	switch s {
	case stateUnquotedWord:
		return "UnquotedWord"
	case stateWhitespace:
		return "Whitespace"
	case stateSingleQuoted:
		return "SingleQuoted"
	case stateDoubleQuoted:
		return "DoubleQuoted"
	case stateSubstitution:
		return "Substitution"
	case stateSubstitutionInDoubleQuoted:
		return "SubstitutionInDoubleQuoted"
	default:
		return fmt.Sprintf("lexState(%d)", int(s))
	}
}

type lexer struct {
	state  lexState
	word   strings.Builder
	name   strings.Builder
	tokens []Token
	// pos is the 1-based offset of the rune being processed.
	pos int
	// raw holds the input bytes of that rune, invalid UTF-8 included.
	raw string
	// quoteEmpty is true while the current quoted region contributed nothing.
	quoteEmpty bool
}

// Lex splits one instruction into raw tokens.
//
// Quotes are removed, variable references become VarRef tokens and runs of
// whitespace become a single Space. Newlines inside quotes are kept
// literally.
func Lex(input string) ([]Token, error) {
	l := &lexer{state: stateUnquotedWord}
	for i, r := range input {
		_, size := utf8.DecodeRuneInString(input[i:])
		l.pos++
		l.raw = input[i : i+size]
		if err := l.next(r); err != nil {
			return nil, err
		}
	}
	if err := l.finish(); err != nil {
		return nil, err
	}
	return l.tokens, nil
}

func (l *lexer) emit(tok Token) {
	l.tokens = append(l.tokens, tok)
}

func (l *lexer) flushWord() {
	if l.word.Len() > 0 {
		l.emit(Word(l.word.String()))
		l.word.Reset()
	}
}

func (l *lexer) openQuote(state lexState) {
	l.state = state
	l.quoteEmpty = true
}

// closeQuote keeps an empty quoted region as an empty word so
// concatenation with neighbours works.
func (l *lexer) closeQuote() {
	if l.quoteEmpty && l.word.Len() == 0 {
		l.emit(Word(""))
	}
	l.state = stateUnquotedWord
}

func (l *lexer) startSubstitution(state lexState) {
	l.flushWord()
	l.name.Reset()
	l.state = state
}

// endSubstitution emits the collected variable and returns to the state the
// substitution started in.
func (l *lexer) endSubstitution() error {
	if l.name.Len() == 0 {
		return &LexError{Kind: EmptySubstitution, Position: l.pos}
	}
	quoted := l.state == stateSubstitutionInDoubleQuoted
	l.emit(VarRef(l.name.String(), quoted))
	l.name.Reset()
	if quoted {
		l.quoteEmpty = false
		l.state = stateDoubleQuoted
	} else {
		l.state = stateUnquotedWord
	}
	return nil
}

func isSubstitutionEnd(r rune) bool {
	switch r {
	case '\'', '"', '=', '|', '$':
		return true
	}
	return unicode.IsSpace(r)
}

func (l *lexer) next(r rune) error {
	switch l.state {
	case stateWhitespace:
		if unicode.IsSpace(r) {
			return nil
		}
		l.state = stateUnquotedWord
		return l.next(r)

	case stateUnquotedWord:
		switch {
		case r == '\'':
			l.openQuote(stateSingleQuoted)
		case r == '"':
			l.openQuote(stateDoubleQuoted)
		case r == '=':
			l.flushWord()
			l.emit(Assign)
		case r == '|':
			l.flushWord()
			l.emit(Pipe)
		case r == '$':
			l.startSubstitution(stateSubstitution)
		case unicode.IsSpace(r):
			l.flushWord()
			l.emit(Space)
			l.state = stateWhitespace
		default:
			l.word.WriteString(l.raw)
		}

	case stateSingleQuoted:
		if r == '\'' {
			l.closeQuote()
			return nil
		}
		l.quoteEmpty = false
		l.word.WriteString(l.raw)

	case stateDoubleQuoted:
		switch r {
		case '"':
			l.closeQuote()
		case '$':
			l.quoteEmpty = false
			l.startSubstitution(stateSubstitutionInDoubleQuoted)
		default:
			l.quoteEmpty = false
			l.word.WriteString(l.raw)
		}

	case stateSubstitution, stateSubstitutionInDoubleQuoted:
		if !isSubstitutionEnd(r) {
			l.name.WriteString(l.raw)
			return nil
		}
		if err := l.endSubstitution(); err != nil {
			return err
		}
		return l.next(r)

	default:
		panic(fmt.Sprintf("lexer in unknown state %v", l.state))
	}
	return nil
}

func (l *lexer) finish() error {
	switch l.state {
	case stateUnquotedWord, stateWhitespace:
		l.flushWord()
		return nil
	case stateSubstitution:
		return l.endSubstitution()
	default:
		return &LexError{Kind: UnterminatedQuotes, Position: l.pos}
	}
}
