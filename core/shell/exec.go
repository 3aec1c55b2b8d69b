package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// ErrExit reports that exit or quit was invoked. The embedding loop owns
// process termination so history and log files still get flushed.
var ErrExit = errors.New("exit requested")

// Environment is the process-environment collaborator: the working
// directory and home directory state the built-ins observe and mutate.
type Environment interface {
	Getwd() (string, error)
	Chdir(dir string) error
	UserHomeDir() (string, error)
}

// OSEnvironment backs Environment with the host process.
type OSEnvironment struct{}

func (OSEnvironment) Getwd() (string, error)       { return os.Getwd() }
func (OSEnvironment) Chdir(dir string) error       { return os.Chdir(dir) }
func (OSEnvironment) UserHomeDir() (string, error) { return os.UserHomeDir() }

// Executor interprets pipeline ASTs into a chain of OS processes joined
// by pipes.
type Executor struct {
	Env    Environment
	Author string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecutor returns an executor wired to the host process.
func NewExecutor(author string) *Executor {
	return &Executor{
		Env:    OSEnvironment{},
		Author: author,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// command is one pipeline stage: its cleaned argument list and the
// redirection targets found in its chain.
type command struct {
	argv    []string
	inFile  string
	outFile string
}

// unescape drops the backslash from every escape pair, keeping the
// escaped character literally. This is the point where the escapes the
// tokenizer only validated finally get interpreted.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// unquote strips the surrounding quotes of a quoted word. The interior is
// kept verbatim.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func argText(n *Node) string {
	if n.Kind == NodeQuotedWord {
		return unquote(n.Text)
	}
	return unescape(n.Text)
}

// splitCommands walks the pipeline spine right to left and returns the
// stages in left-to-right order.
func splitCommands(p *Node) []command {
	cmds := make([]command, p.CountCommands())

	i := len(cmds) - 1
	for node := p; node != nil; i-- {
		chain := node
		if node.Kind == NodePipe {
			chain = node.Right
		}

		cmd := &cmds[i]
		for it := chain; it != nil; {
			switch it.Kind {
			case NodeRedirectIn, NodeRedirectOut:
				target := it.Right
				if it.Kind == NodeRedirectIn {
					cmd.inFile = unescape(target.Text)
				} else {
					cmd.outFile = unescape(target.Text)
				}
				it = target.Right
			default:
				cmd.argv = append(cmd.argv, argText(it))
				it = it.Right
			}
		}

		if node.Kind != NodePipe {
			break
		}
		node = node.Left
	}

	return cmds
}

// stageResult is one stage's exit report. pid is zero for stages that
// never became an OS process.
type stageResult struct {
	pid    int
	status int
}

// Execute runs the pipeline and returns its aggregate exit status: the
// last non-zero status reported by any stage, or zero. Every spawned
// stage is always collected, in whatever order the children terminate.
// The returned error is ErrExit when a built-in ended the shell, or an
// *ExecError when the backbone pipes could not be created.
func (e *Executor) Execute(p *Node) (int, error) {
	if p == nil {
		return 0, nil
	}

	cmds := splitCommands(p)
	n := len(cmds)

	// exit and quit end the whole shell regardless of position. Checked
	// before anything is spawned so no children are orphaned.
	for _, c := range cmds {
		if len(c.argv) > 0 && isExitName(c.argv[0]) {
			return 0, ErrExit
		}
	}

	if n == 1 {
		if status, handled := e.runSoleBuiltin(cmds[0]); handled {
			return status, nil
		}
	}

	readers := make([]*os.File, n-1)
	writers := make([]*os.File, n-1)
	for i := 0; i < n-1; i++ {
		r, w, err := os.Pipe()
		if err != nil {
			for j := 0; j < i; j++ {
				readers[j].Close()
				writers[j].Close()
			}
			return 0, &ExecError{Op: "pipe", Err: err}
		}
		readers[i], writers[i] = r, w
	}

	results := make(chan stageResult, n)
	for i, c := range cmds {
		e.startStage(i, n, c, readers, writers, results)
	}

	exitVal := 0
	for range cmds {
		res := <-results
		if res.status != 0 {
			exitVal = res.status
			if res.pid > 0 {
				fmt.Fprintf(e.Stderr, "Child %d exited with status %d\n", res.pid, res.status)
			}
		}
	}
	return exitVal, nil
}

// startStage wires up stage i's streams and launches it. Exactly one
// stageResult is always delivered, even when the stage never starts.
func (e *Executor) startStage(i, n int, c command, readers, writers []*os.File, results chan<- stageResult) {
	var (
		stdin  io.Reader = e.Stdin
		stdout io.Writer = e.Stdout
		owned  []io.Closer
	)

	// Each pipe end belongs to exactly one stage; a stage that fails to
	// start must still close its ends or its neighbors never see EOF.
	if i > 0 {
		stdin = readers[i-1]
		owned = append(owned, readers[i-1])
	}
	if i < n-1 {
		stdout = writers[i]
		owned = append(owned, writers[i])
	}

	fail := func(status int) {
		closeAll(owned)
		results <- stageResult{status: status}
	}

	if len(c.argv) == 0 {
		fail(0)
		return
	}

	// Redirect targets are opened for every stage that names them: an
	// output file is still created and truncated, and a bad open still
	// fails the stage. Pipe ends win the stream wiring at interior
	// boundaries.
	if c.inFile != "" {
		f, err := os.Open(c.inFile)
		if err != nil {
			fmt.Fprintf(e.Stderr, "%s: %v\n", c.inFile, err)
			fail(1)
			return
		}
		owned = append(owned, f)
		if i == 0 {
			stdin = f
		}
	}
	if c.outFile != "" {
		f, err := os.OpenFile(c.outFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0660)
		if err != nil {
			fmt.Fprintf(e.Stderr, "%s: %v\n", c.outFile, err)
			fail(1)
			return
		}
		owned = append(owned, f)
		if i == n-1 {
			stdout = f
		}
	}

	// Built-ins inside a pipeline still take part in the pipe topology:
	// they run in-process, wired to the stage's ends, and report a status
	// like any child.
	if builtin, ok := LookupBuiltin(c.argv[0]); ok {
		ctx := &BuiltinContext{
			Env:    e.Env,
			Author: e.Author,
			Argv:   c.argv,
			Stdout: stdout,
			Stderr: e.Stderr,
		}
		go func() {
			status := builtin(ctx)
			closeAll(owned)
			results <- stageResult{status: status}
		}()
		return
	}

	cmd := exec.Command(c.argv[0], c.argv[1:]...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = e.Stderr

	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			fmt.Fprintf(e.Stderr, "%s: command not found\n", c.argv[0])
		} else {
			fmt.Fprintf(e.Stderr, "%s: %v\n", c.argv[0], err)
		}
		fail(127)
		return
	}

	// The child holds its own duplicates now.
	closeAll(owned)

	pid := cmd.Process.Pid
	go func() {
		status := 0
		if err := cmd.Wait(); err != nil {
			status = 1
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
				status = exitErr.ExitCode()
			}
		}
		results <- stageResult{pid: pid, status: status}
	}()
}

// runSoleBuiltin executes a built-in that is the pipeline's only command
// in the current process. The second result reports whether the command
// was a built-in at all.
func (e *Executor) runSoleBuiltin(c command) (int, bool) {
	if len(c.argv) == 0 {
		return 0, true
	}

	builtin, ok := LookupBuiltin(c.argv[0])
	if !ok {
		return 0, false
	}

	var (
		stdout io.Writer = e.Stdout
		owned  []io.Closer
	)

	// No built-in reads stdin, but a named input file must still open so
	// an unreadable target is reported.
	if c.inFile != "" {
		f, err := os.Open(c.inFile)
		if err != nil {
			fmt.Fprintf(e.Stderr, "%s: %v\n", c.inFile, err)
			return 1, true
		}
		owned = append(owned, f)
	}
	if c.outFile != "" {
		f, err := os.OpenFile(c.outFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0660)
		if err != nil {
			fmt.Fprintf(e.Stderr, "%s: %v\n", c.outFile, err)
			return 1, true
		}
		stdout = f
		owned = append(owned, f)
	}

	status := builtin(&BuiltinContext{
		Env:    e.Env,
		Author: e.Author,
		Argv:   c.argv,
		Stdout: stdout,
		Stderr: e.Stderr,
	})
	closeAll(owned)
	return status, true
}

func closeAll(closers []io.Closer) {
	for _, c := range closers {
		c.Close()
	}
}
