package shell

import "fmt"

// SyntaxError reports malformed user input from the tokenizer or parser.
// The message text is stable; callers print it verbatim.
type SyntaxError struct {
	Msg string
}

func (e *SyntaxError) Error() string {
	return e.Msg
}

func syntaxErrorf(format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...)}
}

// ExecError reports an OS-level failure while running a pipeline, e.g.
// being unable to create the backbone pipes.
type ExecError struct {
	Op  string
	Err error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}
