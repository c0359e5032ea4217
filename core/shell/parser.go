package shell

import "fmt"

type parseState int

const (
	parseInitial parseState = iota
	parseFirstWord
	parseAssignment
	parseRHS
	parseArguments
	parsePipeStarted
)

func (s parseState) String() string {
	switch s {
	case parseInitial:
		return "Initial"
	case parseFirstWord:
		return "FirstWord"
	case parseAssignment:
		return "Assignment"
	case parseRHS:
		return "RHS"
	case parseArguments:
		return "Arguments"
	case parsePipeStarted:
		return "PipeStarted"
	default:
		return fmt.Sprintf("parseState(%d)", int(s))
	}
}

type parser struct {
	dispatcher *Dispatcher
	state      parseState
	name       string
	args       []string
	ops        []Operation
	last       *Token
}

// Parse builds the pipeline described by postprocessed tokens. Commands are
// resolved through d, which may be nil to run everything externally.
//
// Parse panics if tokens contain a Space or VarRef, Postprocess never
// produces them.
func Parse(tokens []Token, d *Dispatcher) ([]Operation, error) {
	p := &parser{dispatcher: d, state: parseInitial}
	for i := range tokens {
		if err := p.next(tokens[i]); err != nil {
			return nil, err
		}
		p.last = &tokens[i]
	}
	if err := p.finish(); err != nil {
		return nil, err
	}
	return p.ops, nil
}

func (p *parser) fail(kind ParseErrorKind) error {
	return &ParseError{Kind: kind, LastToken: p.last}
}

func (p *parser) emitCommand() {
	p.ops = append(p.ops, p.dispatcher.Command(p.name, p.args))
	p.name = ""
	p.args = nil
}

func (p *parser) next(tok Token) error {
	switch tok.Kind {
	case TokenWord, TokenAssign, TokenPipe:
	default:
		panic(fmt.Sprintf("parser got %v in state %v", tok, p.state))
	}

	switch p.state {
	case parseInitial, parsePipeStarted:
		switch tok.Kind {
		case TokenWord:
			p.name = tok.Text
			p.state = parseFirstWord
		case TokenAssign:
			return p.fail(EmptyLHS)
		case TokenPipe:
			return p.fail(EmptyPipe)
		}

	case parseFirstWord:
		switch tok.Kind {
		case TokenWord:
			p.args = append(p.args, tok.Text)
			p.state = parseArguments
		case TokenAssign:
			p.state = parseAssignment
		case TokenPipe:
			p.emitCommand()
			p.state = parsePipeStarted
		}

	case parseAssignment:
		if tok.Kind != TokenWord {
			return p.fail(EmptyRHS)
		}
		p.ops = append(p.ops, &Assignment{LHS: p.name, RHS: tok.Text})
		p.name = ""
		p.state = parseRHS

	case parseRHS:
		switch tok.Kind {
		case TokenWord:
			return p.fail(NotPipedOperations)
		case TokenAssign:
			return p.fail(EmptyLHS)
		case TokenPipe:
			p.state = parsePipeStarted
		}

	case parseArguments:
		switch tok.Kind {
		case TokenWord:
			p.args = append(p.args, tok.Text)
		case TokenAssign:
			return p.fail(NotPipedOperations)
		case TokenPipe:
			p.emitCommand()
			p.state = parsePipeStarted
		}

	default:
		panic(fmt.Sprintf("parser in unknown state %v", p.state))
	}
	return nil
}

func (p *parser) finish() error {
	switch p.state {
	case parseInitial, parseRHS:
		return nil
	case parseFirstWord, parseArguments:
		p.emitCommand()
		return nil
	case parseAssignment:
		return p.fail(EmptyRHS)
	case parsePipeStarted:
		return p.fail(EmptyPipe)
	default:
		panic(fmt.Sprintf("parser in unknown state %v", p.state))
	}
}
