package logger

// Event types.
const (
	TypeSessionStart     = "session_start"
	TypeInstruction      = "instruction"
	TypeInstructionError = "instruction_error"
	TypeSessionEnd       = "session_end"
)

// Event field names.
const (
	FieldWorkingDir = "working_dir"
	FieldText       = "text"
	FieldCommands   = "commands"
	FieldExitCode   = "exit_code"
	FieldStage      = "stage"
	FieldMessage    = "message"
)

// Event is something that happened in a session.
type Event interface {
	eventType() string
	fields() map[string]interface{}
}

// SessionStart is recorded when the session loop begins.
type SessionStart struct {
	WorkingDir string
}

func (SessionStart) eventType() string { return TypeSessionStart }

func (e SessionStart) fields() map[string]interface{} {
	return map[string]interface{}{
		FieldWorkingDir: e.WorkingDir,
	}
}

// Instruction is recorded for every instruction that ran.
type Instruction struct {
	Text     string
	Commands []string
	ExitCode int
}

func (Instruction) eventType() string { return TypeInstruction }

func (e Instruction) fields() map[string]interface{} {
	commands := make([]interface{}, len(e.Commands))
	for i, c := range e.Commands {
		commands[i] = c
	}
	return map[string]interface{}{
		FieldText:     e.Text,
		FieldCommands: commands,
		FieldExitCode: float64(e.ExitCode),
	}
}

// InstructionError is recorded when an instruction fails to lex, parse or
// execute.
type InstructionError struct {
	Text    string
	Stage   string
	Message string
}

func (InstructionError) eventType() string { return TypeInstructionError }

func (e InstructionError) fields() map[string]interface{} {
	return map[string]interface{}{
		FieldText:    e.Text,
		FieldStage:   e.Stage,
		FieldMessage: e.Message,
	}
}

// SessionEnd is recorded when the session loop stops.
type SessionEnd struct {
	ExitCode int
}

func (SessionEnd) eventType() string { return TypeSessionEnd }

func (e SessionEnd) fields() map[string]interface{} {
	return map[string]interface{}{
		FieldExitCode: float64(e.ExitCode),
	}
}
