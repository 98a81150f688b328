package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// Command is one worklane subcommand.
type Command struct {
	Name    string
	Usage   string
	Summary string

	// Flags registers the command's flags on fs. Nil when it takes none.
	Flags func(fs *pflag.FlagSet)

	// Session marks commands that talk to protected endpoints. They run the
	// session check first and refuse to continue without a session.
	Session bool

	// Bare commands run without loading config or opening the store.
	Bare bool

	Run func(ctx context.Context, env *Env, fs *pflag.FlagSet, args []string) error
}

// ExitError ends the process with Code without printing anything further;
// the command has already written its own output.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode lets main distinguish a handled non-zero exit from a failure.
func (e *ExitError) ExitCode() int {
	return e.Code
}

func (c *Command) flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(c.Name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if c.Flags != nil {
		c.Flags(fs)
	}
	return fs
}

func findCommand(commands []*Command, name string) *Command {
	for _, c := range commands {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func printUsage(w io.Writer, global *pflag.FlagSet, commands []*Command) {
	fmt.Fprintf(w, "Usage: worklane [global flags] <command> [flags] [args]\n\nCommands:\n")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range commands {
		fmt.Fprintf(tw, "  %s\t%s\n", c.Usage, c.Summary)
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "\nGlobal flags:\n%s", global.FlagUsages())
}

func printCommandUsage(w io.Writer, c *Command) {
	fmt.Fprintf(w, "Usage: worklane %s\n\n%s\n", c.Usage, c.Summary)
	if usage := c.flagSet().FlagUsages(); strings.TrimSpace(usage) != "" {
		fmt.Fprintf(w, "\nFlags:\n%s", usage)
	}
}
