// Package logger is a small event logging framework for shell sessions.
// Events are written as newline delimited JSON objects so they can be
// inspected with ordinary line tools.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"time"
)

// EventType names the kinds of events a session produces.
type EventType string

const (
	EventSessionStart EventType = "session_start"
	EventSessionEnd   EventType = "session_end"
	EventPipelineRun  EventType = "pipeline_run"
	EventSyntaxError  EventType = "syntax_error"
	EventExecError    EventType = "exec_error"
)

// Entry is one logged event.
type Entry struct {
	TimestampMicros int64     `json:"timestamp_micros"`
	SessionID       string    `json:"session_id"`
	Event           EventType `json:"event"`

	// Line is the raw input line, when the event concerns one.
	Line string `json:"line,omitempty"`
	// Rendered is the parsed pipeline rendered back to shell form.
	Rendered string `json:"rendered,omitempty"`
	// ExitStatus is the pipeline's aggregate exit status.
	ExitStatus int `json:"exit_status,omitempty"`
	// Error holds the message for error events.
	Error string `json:"error,omitempty"`
}

// Recorder is a callback that stores entries in an external datastore.
type Recorder func(e *Entry) error

// Logger captures session events through a Recorder.
type Logger struct {
	Record Recorder

	now       func() time.Time
	sessionID string
}

// NewJSONLines creates a Logger that writes newline delimited JSON
// objects to w.
func NewJSONLines(w io.Writer) *Logger {
	return New(func(e *Entry) error {
		line, err := json.Marshal(e)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(line))
		return err
	})
}

// New creates a Logger with a fresh session ID and the given Recorder.
func New(record Recorder) *Logger {
	return &Logger{
		Record:    record,
		now:       time.Now,
		sessionID: fmt.Sprintf("%d", rand.Uint64()),
	}
}

func (l *Logger) record(e *Entry) error {
	if l == nil || l.Record == nil {
		return nil
	}
	e.TimestampMicros = l.now().UnixNano() / int64(time.Microsecond)
	e.SessionID = l.sessionID
	return l.Record(e)
}

// SessionStart records the beginning of an interactive session.
func (l *Logger) SessionStart() error {
	return l.record(&Entry{Event: EventSessionStart})
}

// SessionEnd records the end of an interactive session.
func (l *Logger) SessionEnd(exitStatus int) error {
	return l.record(&Entry{Event: EventSessionEnd, ExitStatus: exitStatus})
}

// PipelineRun records one executed pipeline and its aggregate status.
func (l *Logger) PipelineRun(line, rendered string, exitStatus int) error {
	return l.record(&Entry{
		Event:      EventPipelineRun,
		Line:       line,
		Rendered:   rendered,
		ExitStatus: exitStatus,
	})
}

// SyntaxError records a rejected input line.
func (l *Logger) SyntaxError(line, msg string) error {
	return l.record(&Entry{Event: EventSyntaxError, Line: line, Error: msg})
}

// ExecError records an OS-level execution failure.
func (l *Logger) ExecError(line, msg string) error {
	return l.record(&Entry{Event: EventExecError, Line: line, Error: msg})
}
