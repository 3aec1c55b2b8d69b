package shell

import (
	"fmt"
	"io"

	getopt "github.com/pborman/getopt/v2"
)

// BuiltinContext carries everything a built-in needs: the process
// environment collaborator, the configured author line, the raw argv and
// the stage's wired streams.
type BuiltinContext struct {
	Env    Environment
	Author string
	Argv   []string
	Stdout io.Writer
	Stderr io.Writer
}

// BuiltinFunc runs a built-in command and returns its exit status.
type BuiltinFunc func(ctx *BuiltinContext) int

// Builtin handles flag parsing and help output for a built-in command.
// Construct one per invocation; getopt sets keep state between parses.
type Builtin struct {
	// Use holds a one line usage string.
	Use string
	// Short holds a one line description of the command.
	Short string

	showHelp *bool
	flags    *getopt.Set
}

// Flags gets the command's flag set.
func (b *Builtin) Flags() *getopt.Set {
	if b.flags == nil {
		b.flags = getopt.New()
	}

	return b.flags
}

// PrintHelp writes help for the command to the given writer.
func (b *Builtin) PrintHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, b.Use)
	fmt.Fprintln(w, b.Short)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	b.Flags().PrintOptions(w)
}

// Run parses flags and, if parsing succeeded, calls the callback with the
// remaining positional arguments.
func (b *Builtin) Run(ctx *BuiltinContext, callback func(args []string) int) int {
	opts := b.Flags()

	if b.showHelp == nil {
		b.showHelp = opts.BoolLong("help", 'h', "show this help and exit")
	}

	if err := opts.Getopt(ctx.Argv, nil); err != nil {
		fmt.Fprintf(ctx.Stderr, "error: %s\n\n", err)
		b.PrintHelp(ctx.Stderr)
		return 1
	}

	if *b.showHelp {
		b.PrintHelp(ctx.Stdout)
		return 0
	}

	return callback(opts.Args())
}

// BuiltinEntry describes one registered built-in. Main is nil for the
// names the executor handles itself (exit and quit).
type BuiltinEntry struct {
	Names []string
	Short string
	Main  BuiltinFunc
}

// builtinRegistry is populated in init rather than a composite literal
// so Help may walk the registry it is itself listed in.
var builtinRegistry []BuiltinEntry

func init() {
	builtinRegistry = []BuiltinEntry{
		{Names: []string{"exit", "quit"}, Short: "Leave the shell."},
		{Names: []string{"cd"}, Short: "Change the working directory.", Main: Cd},
		{Names: []string{"pwd"}, Short: "Print the working directory.", Main: Pwd},
		{Names: []string{"author"}, Short: "Print who wrote this shell.", Main: Author},
		{Names: []string{"help"}, Short: "List the built-in commands.", Main: Help},
	}
}

// ListBuiltins returns every registered built-in.
func ListBuiltins() []BuiltinEntry {
	return builtinRegistry
}

// LookupBuiltin finds the built-in registered under name, if any.
func LookupBuiltin(name string) (BuiltinFunc, bool) {
	for _, entry := range builtinRegistry {
		for _, n := range entry.Names {
			if n == name && entry.Main != nil {
				return entry.Main, true
			}
		}
	}
	return nil, false
}

// isExitName reports whether name ends the whole shell.
func isExitName(name string) bool {
	return name == "exit" || name == "quit"
}

// Cd changes the working directory, defaulting to the user's home.
// Failure is reported but never fatal to the shell.
func Cd(ctx *BuiltinContext) int {
	cmd := &Builtin{
		Use:   "cd [DIR]",
		Short: "Change the working directory.",
	}

	return cmd.Run(ctx, func(args []string) int {
		var dir string
		switch len(args) {
		case 0:
			home, err := ctx.Env.UserHomeDir()
			if err != nil {
				fmt.Fprintf(ctx.Stderr, "cd: %v\n", err)
				return 1
			}
			dir = home
		case 1:
			dir = args[0]
		default:
			fmt.Fprintln(ctx.Stderr, "cd: too many arguments")
			return 1
		}

		if err := ctx.Env.Chdir(dir); err != nil {
			fmt.Fprintf(ctx.Stderr, "cd: %v\n", err)
			return 1
		}
		return 0
	})
}

// Pwd prints the current working directory.
func Pwd(ctx *BuiltinContext) int {
	cmd := &Builtin{
		Use:   "pwd",
		Short: "Print the working directory.",
	}

	return cmd.Run(ctx, func(args []string) int {
		wd, err := ctx.Env.Getwd()
		if err != nil {
			fmt.Fprintf(ctx.Stderr, "pwd: %v\n", err)
			return 1
		}
		fmt.Fprintln(ctx.Stdout, wd)
		return 0
	})
}

// Author prints the configured author line.
func Author(ctx *BuiltinContext) int {
	cmd := &Builtin{
		Use:   "author",
		Short: "Print who wrote this shell.",
	}

	return cmd.Run(ctx, func(args []string) int {
		fmt.Fprintln(ctx.Stdout, ctx.Author)
		return 0
	})
}

// Help lists the built-in commands.
func Help(ctx *BuiltinContext) int {
	cmd := &Builtin{
		Use:   "help",
		Short: "List the built-in commands.",
	}

	return cmd.Run(ctx, func(args []string) int {
		for _, entry := range builtinRegistry {
			name := entry.Names[0]
			for _, alias := range entry.Names[1:] {
				name += ", " + alias
			}
			fmt.Fprintf(ctx.Stdout, "%-12s %s\n", name, entry.Short)
		}
		return 0
	})
}
