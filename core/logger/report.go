package logger

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Report aggregates the events of one or more session logs.
type Report struct {
	LogEntries     int     `json:"log_entries"`
	InvalidEntries Counter `json:"unknown_log_entries,omitempty"`

	Sessions    SessionReport     `json:"session_report"`
	Instruction InstructionReport `json:"instruction_report"`
	Errors      ErrorCounter      `json:"error_report"`
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{}
}

// Update folds a single log entry into the report.
func (r *Report) Update(le *LogEntry) {
	r.LogEntries++

	fields := le.GetFields()
	eventType := fields[FieldType].GetStringValue()
	switch eventType {
	case TypeSessionStart:
		r.Sessions.Started++

	case TypeSessionEnd:
		r.Sessions.ExitCodes.Add(exitCodeKey(le))

	case TypeInstruction:
		r.Instruction.Count++
		for _, name := range fields[FieldCommands].GetListValue().GetValues() {
			r.Instruction.CommandNames.Add(name.GetStringValue())
		}
		r.Instruction.ExitCodes.Add(exitCodeKey(le))

	case TypeInstructionError:
		r.Errors.Add(fields[FieldStage].GetStringValue(), fields[FieldMessage].GetStringValue())

	default:
		r.InvalidEntries.Add(fmt.Sprintf("%q", eventType))
	}
}

func exitCodeKey(le *LogEntry) string {
	return fmt.Sprint(le.GetFields()[FieldExitCode].GetNumberValue())
}

type SessionReport struct {
	Started   int     `json:"started"`
	ExitCodes Counter `json:"exit_codes"`
}

type InstructionReport struct {
	Count        int     `json:"count"`
	CommandNames Counter `json:"command_names"`
	ExitCodes    Counter `json:"exit_codes"`
}

// Counter tallies string keys. The zero value is ready to use.
type Counter struct {
	counts map[string]int
}

// Add increments key by one.
func (c *Counter) Add(key string) {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	c.counts[key]++
}

// Get returns how many times key was added.
func (c *Counter) Get(key string) int {
	return c.counts[key]
}

func (c Counter) MarshalJSON() ([]byte, error) {
	if c.counts == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(c.counts)
}

type errorKey struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// ErrorCounter tallies diagnostics by stage and message.
type ErrorCounter struct {
	counts map[errorKey]int
}

// Add increments the (stage, message) pair by one.
func (c *ErrorCounter) Add(stage, message string) {
	if c.counts == nil {
		c.counts = make(map[errorKey]int)
	}
	c.counts[errorKey{stage, message}]++
}

// Get returns how many times the (stage, message) pair was added.
func (c *ErrorCounter) Get(stage, message string) int {
	return c.counts[errorKey{stage, message}]
}

// MarshalJSON lists the pairs, most frequent first.
func (c ErrorCounter) MarshalJSON() ([]byte, error) {
	type row struct {
		Count int      `json:"count"`
		Event errorKey `json:"event"`
	}

	rows := make([]row, 0, len(c.counts))
	for key, count := range c.counts {
		rows = append(rows, row{Count: count, Event: key})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		if rows[i].Event.Stage != rows[j].Event.Stage {
			return rows[i].Event.Stage < rows[j].Event.Stage
		}
		return rows[i].Event.Message < rows[j].Event.Message
	})

	return json.Marshal(rows)
}
