package shell

import (
	"bufio"
	"errors"
	"io"
	"math"
	"strings"

	"github.com/abiosoft/readline"
)

// ContinuationPrompt is shown while an instruction has unbalanced quotes.
const ContinuationPrompt = "> "

type lineReader interface {
	readLine(prompt string) (string, error)
}

// readInstruction reads lines until the quotes in them balance, the lines
// are joined with newlines.
func readInstruction(r lineReader, prompt string) (string, error) {
	var lines []string
	for {
		line, err := r.readLine(prompt)
		if err != nil {
			return "", err
		}
		lines = append(lines, line)

		instruction := strings.Join(lines, "\n")
		if !openQuotes(instruction) {
			return instruction, nil
		}
		prompt = ContinuationPrompt
	}
}

// openQuotes reports whether s ends inside a quoted region.
func openQuotes(s string) bool {
	var quote rune
	for _, r := range s {
		switch {
		case quote == 0 && (r == '\'' || r == '"'):
			quote = r
		case quote == r:
			quote = 0
		}
	}
	return quote != 0
}

// ReadlineInput reads instructions from a terminal with line editing and
// history.
type ReadlineInput struct {
	Readline *readline.Instance
	// Prompt is evaluated before each instruction.
	Prompt func() string
}

var _ Input = (*ReadlineInput)(nil)

// NewReadlineInput creates an input from the readline configuration.
func NewReadlineInput(cfg *readline.Config, prompt func() string) (*ReadlineInput, error) {
	if err := cfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}

	return &ReadlineInput{Readline: rl, Prompt: prompt}, nil
}

func (in *ReadlineInput) ReadInstruction() (string, error) {
	prompt := ""
	if in.Prompt != nil {
		prompt = in.Prompt()
	}

	instruction, err := readInstruction(in, prompt)
	if errors.Is(err, readline.ErrInterrupt) {
		// Ctrl+C drops the partial instruction.
		return "", nil
	}
	return instruction, err
}

func (in *ReadlineInput) readLine(prompt string) (string, error) {
	in.Readline.SetPrompt(prompt)
	line, err := in.Readline.Readline()
	switch {
	case err == io.EOF:
		return "", &AdapterError{Op: "read", Err: ErrInputClosed}
	case err == readline.ErrInterrupt:
		return "", err
	case err != nil:
		return "", &AdapterError{Op: "read", Err: err}
	}
	return line, nil
}

func (in *ReadlineInput) Close() error {
	return in.Readline.Close()
}

// ScannerInput reads instructions from a non-interactive stream such as a
// script piped to the shell.
type ScannerInput struct {
	scanner *bufio.Scanner
}

var _ Input = (*ScannerInput)(nil)

// NewScannerInput reads lines of any length from r.
func NewScannerInput(r io.Reader) *ScannerInput {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), math.MaxInt)
	return &ScannerInput{scanner: scanner}
}

func (in *ScannerInput) ReadInstruction() (string, error) {
	return readInstruction(in, "")
}

func (in *ScannerInput) readLine(string) (string, error) {
	if in.scanner.Scan() {
		return in.scanner.Text(), nil
	}
	if err := in.scanner.Err(); err != nil {
		return "", &AdapterError{Op: "read", Err: err}
	}
	return "", &AdapterError{Op: "read", Err: ErrInputClosed}
}

// StringInput supplies a fixed list of instructions, then fails as a closed
// input would.
type StringInput []string

var _ Input = (*StringInput)(nil)

func (in *StringInput) ReadInstruction() (string, error) {
	if len(*in) == 0 {
		return "", &AdapterError{Op: "read", Err: ErrInputClosed}
	}
	next := (*in)[0]
	*in = (*in)[1:]
	return next, nil
}
