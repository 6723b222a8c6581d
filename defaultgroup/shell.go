package defaultgroup

import (
	"context"
	"github.com/saylorsolutions/defaultcmd/cli"
	"log/slog"
)

type defaulter interface {
	DefaultCommandName() (string, bool)
}

// Shell is an interactive loop over a [Group].
// Lines that don't start with a known command are run with the group's default command, as if its name was typed first.
type Shell struct {
	base         *cli.Shell
	logger       *slog.Logger
	resubmitting bool
	unmatched    string
}

var _ cli.LineHandler = (*Shell)(nil)

// NewShell creates a [Shell] for the [Group].
// The options are passed through to [cli.NewShell].
func NewShell(g *Group, opts ...cli.ShellOption) *Shell {
	sh := &Shell{
		base:   cli.NewShell(cli.NewContext(g), opts...),
		logger: g.logger,
	}
	sh.base.SetHandler(sh)
	return sh
}

// Context returns the [cli.Context] the shell is bound to.
func (sh *Shell) Context() *cli.Context {
	return sh.base.Context()
}

// History returns the line history of the shell.
func (sh *Shell) History() *cli.History {
	return sh.base.History()
}

// Run reads and runs lines until the input ends, a quit command is entered, or ctx is cancelled.
func (sh *Shell) Run(ctx context.Context) error {
	return sh.base.Run(ctx)
}

// RespondInteractive runs the shell if the user passed [cli.InteractiveFlag], returning false otherwise.
func (sh *Shell) RespondInteractive(ctx context.Context) bool {
	return sh.base.RespondInteractive(ctx)
}

func (sh *Shell) BeforeLine(line string) string {
	sh.logger.Debug("Received line", "line", line)
	out := sh.base.BeforeLine(line)
	sh.logger.Debug("Prepared line", "line", out)
	return out
}

func (sh *Shell) InterpretLine(line string) error {
	sh.logger.Debug("Interpreting line", "line", line)
	err := sh.base.InterpretLine(line)
	sh.logger.Debug("Interpreted line", "line", line, "error", err)
	return err
}

// UnmatchedLine runs the line with the default command of the bound [Group].
// The line is reported as unknown if there is no default command, or the default command can't be found either.
func (sh *Shell) UnmatchedLine(line string) error {
	var (
		name       string
		hasDefault bool
	)
	if d, ok := sh.Context().Group.(defaulter); ok {
		name, hasDefault = d.DefaultCommandName()
	}
	if sh.resubmitting {
		sh.logger.Debug("Default command not found", "command", name, "line", sh.unmatched)
		return sh.base.UnmatchedLine(sh.unmatched)
	}
	if !hasDefault {
		sh.logger.Debug("Unmatched line", "line", line)
		return sh.base.UnmatchedLine(line)
	}

	sh.resubmitting, sh.unmatched = true, line
	defer func() {
		sh.resubmitting, sh.unmatched = false, ""
	}()
	sh.logger.Debug("Passing line to default command", "command", name, "line", line)
	return sh.InterpretLine(name + " " + line)
}
