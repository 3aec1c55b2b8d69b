package core

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"github.com/spf13/afero"
	"golang.org/x/term"

	"github.com/jbqwizera/pipesh/core/config"
	"github.com/jbqwizera/pipesh/core/logger"
	"github.com/jbqwizera/pipesh/core/shell"
)

var (
	promptColor = color.New(color.FgRed, color.Bold)
	errorColor  = color.New(color.FgRed)
)

// Shell is the interactive front end. It owns the line source and feeds
// every line through tokenize, parse and execute; a failed line is
// reported and abandoned, the loop continues with the next one.
type Shell struct {
	Config   *config.Configuration
	Executor *shell.Executor
	Expander shell.Expander
	Log      *logger.Logger

	stdin   *os.File
	stdout  io.Writer
	stderr  io.Writer
	toClose listCloser
}

// NewShell builds a shell attached to the host process streams.
func NewShell(cfg *config.Configuration) *Shell {
	s := &Shell{
		Config:   cfg,
		Executor: shell.NewExecutor(cfg.Author),
		Expander: shell.NewGlobExpander(afero.NewOsFs()),
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}

	if logFd, err := cfg.OpenSessionLog(); err == nil {
		s.Log = logger.NewJSONLines(logFd)
		s.toClose = append(s.toClose, logFd)
	} else {
		log.Printf("session log unavailable: %v", err)
	}

	return s
}

// Run loops over input lines until end-of-input or an exit built-in and
// returns the shell's process exit status. A terminal gets the readline
// front end with history; piped input gets a plain line scanner.
func (s *Shell) Run() int {
	s.Log.SessionStart()

	var status int
	if term.IsTerminal(int(s.stdin.Fd())) {
		status = s.runInteractive()
	} else {
		status = s.runScript(s.stdin)
	}

	s.Log.SessionEnd(status)
	s.toClose.Close()
	return status
}

func (s *Shell) runInteractive() int {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      promptColor.Sprint(s.Config.Prompt),
		HistoryFile: s.Config.HistoryPath(),
		Stdin:       s.stdin,
		Stdout:      s.stdout,
		Stderr:      s.stderr,
	})
	if err != nil {
		errorColor.Fprintf(s.stderr, "readline: %v\n", err)
		return 1
	}
	defer rl.Close()

	if s.Config.Welcome != "" {
		fmt.Fprintln(s.stdout, s.Config.Welcome)
	}

	for {
		line, err := rl.Readline()
		switch {
		case err == io.EOF:
			return 0 // input closed, quit

		case err == readline.ErrInterrupt:
			continue // abandon the line

		case err != nil:
			log.Printf("Error readline: %v", err)
			return 1
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		if quit, status := s.runLine(line); quit {
			return status
		}
	}
}

func (s *Shell) runScript(r io.Reader) int {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if quit, status := s.runLine(line); quit {
			return status
		}
	}
	if err := scanner.Err(); err != nil {
		errorColor.Fprintf(s.stderr, "read: %v\n", err)
		return 1
	}
	return 0
}

// runLine pushes one line through the full pipeline. quit is true when
// the shell should stop, in which case status is its exit status.
func (s *Shell) runLine(line string) (quit bool, status int) {
	tokens, err := shell.Tokenize(line)
	if err != nil {
		s.reportSyntax(line, err)
		return false, 0
	}
	if tokens.Len() == 0 {
		return false, 0
	}

	pipeline, err := shell.Parse(tokens, s.Expander)
	if err != nil {
		s.reportSyntax(line, err)
		return false, 0
	}
	if pipeline == nil {
		return false, 0
	}

	exitStatus, err := s.Executor.Execute(pipeline)
	switch {
	case errors.Is(err, shell.ErrExit):
		return true, 0

	case err != nil:
		// Losing the pipe backbone means no pipeline can run at all.
		errorColor.Fprintf(s.stderr, "%v\n", err)
		s.Log.ExecError(line, err.Error())
		return true, 1
	}

	s.Log.PipelineRun(line, pipeline.String(), exitStatus)
	return false, 0
}

func (s *Shell) reportSyntax(line string, err error) {
	errorColor.Fprintln(s.stderr, err.Error())
	s.Log.SyntaxError(line, err.Error())
}

type listCloser []io.Closer

func (lc listCloser) Close() error {
	var lastErr error
	for _, v := range lc {
		if err := v.Close(); err != nil {
			lastErr = err
		}
	}

	return lastErr
}
