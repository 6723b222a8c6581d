package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"github.com/mattn/go-shellwords"
	"golang.org/x/term"
	"io"
	"os"
	"slices"
	"strings"
)

var (
	InteractiveFlag         = "-i"                          // InteractiveFlag specifies the flag that the user should pass to trigger [Shell.RespondInteractive].
	InteractiveQuitCommands = []string{"quit", "exit", "x"} // InteractiveQuitCommands is a slice of strings that should escape from interactive mode.
	InteractiveHelpCommands = []string{"help", "?"}         // InteractiveHelpCommands print the [Group] usage in interactive mode, along with [HelpPatterns].
	InteractiveMaxLineSize  = 1 << 20                       // InteractiveMaxLineSize is the longest line, in bytes, that interactive mode will run.

	ErrLineTooLong = errors.New("line too long")
)

// LineHandler is the set of hooks a [Shell] runs for each line of input.
//
// BeforeLine is given every non-blank line and returns the line to interpret.
// InterpretLine tries to match the line to a known [Command] and run it, calling UnmatchedLine when no [Command] matches.
//
// A [Shell] is its own LineHandler unless another is installed with [Shell.SetHandler].
// Installed handlers are expected to call back into the [Shell] for anything they don't change.
type LineHandler interface {
	BeforeLine(line string) string
	InterpretLine(line string) error
	UnmatchedLine(line string) error
}

// ShellOption configures a [Shell].
type ShellOption func(*Shell)

// WithInput sets the source of lines, [os.Stdin] by default.
func WithInput(r io.Reader) ShellOption {
	return func(sh *Shell) {
		if r != nil {
			sh.input = r
		}
	}
}

// WithPrompt sets the prompt shown before each line when reading from a terminal.
func WithPrompt(prompt string) ShellOption {
	return func(sh *Shell) {
		sh.prompt = prompt
	}
}

// WithIntro sets the text shown once when the loop starts on a terminal.
func WithIntro(intro string) ShellOption {
	return func(sh *Shell) {
		sh.intro = intro
	}
}

// WithHistoryFile persists line history to the given file, loading it when the loop starts and saving it when the loop ends.
func WithHistoryFile(path string) ShellOption {
	return func(sh *Shell) {
		sh.history = NewHistory(path)
	}
}

// WithOnFinished registers a function to be called once the loop ends, for any reason.
func WithOnFinished(fn func(ctx *Context)) ShellOption {
	return func(sh *Shell) {
		sh.onFinished = fn
	}
}

// Shell is a read-eval loop running lines of input as commands of a [Group].
type Shell struct {
	ctx        *Context
	handler    LineHandler
	input      io.Reader
	prompt     string
	intro      string
	history    *History
	onFinished func(ctx *Context)
}

var _ LineHandler = (*Shell)(nil)

// NewShell creates a [Shell] bound to the given [Context].
// Commands are looked up and invoked through the [Context]'s [Group].
func NewShell(ctx *Context, opts ...ShellOption) *Shell {
	if ctx == nil || ctx.Group == nil {
		panic("shell requires a context with a group")
	}
	sh := &Shell{
		ctx:     ctx,
		input:   os.Stdin,
		prompt:  "> ",
		history: NewHistory(""),
	}
	if parent := groupParent(ctx.Group); len(parent) > 0 {
		sh.prompt = parent + "> "
	}
	sh.handler = sh
	for _, opt := range opts {
		opt(sh)
	}
	return sh
}

func groupParent(g Group) string {
	if p, ok := g.(interface{ Parent() string }); ok {
		return p.Parent()
	}
	return ""
}

// SetHandler installs the [LineHandler] run for each line.
// Passing nil restores the [Shell] itself.
func (sh *Shell) SetHandler(handler LineHandler) {
	if handler == nil {
		handler = sh
	}
	sh.handler = handler
}

// Context returns the [Context] the [Shell] is bound to.
func (sh *Shell) Context() *Context {
	return sh.ctx
}

// History returns the line history of the [Shell].
func (sh *Shell) History() *History {
	return sh.history
}

// RespondInteractive will run the [Shell] if the [InteractiveFlag] is the first argument, indicating that the user is requesting interactive mode.
// Returns false if interactive mode was not requested by the user.
//
// This loop may be interrupted with one of the [InteractiveQuitCommands], or by cancelling the context.
func (sh *Shell) RespondInteractive(ctx context.Context) bool {
	if !InteractiveRequested(os.Args[1:]) {
		return false
	}
	if err := sh.Run(ctx); err != nil {
		sh.ctx.Printer().Println("Error running interactively:", err)
	}
	return true
}

// InteractiveRequested reports whether the first argument is the [InteractiveFlag].
// Programs that are given their arguments explicitly can use this in place of [Shell.RespondInteractive].
func InteractiveRequested(args []string) bool {
	return len(args) > 0 && args[0] == InteractiveFlag
}

// Run reads lines until the input is exhausted, a quit command is entered, or the context is cancelled.
// Cancellation is checked between lines.
//
// Errors from running a line are printed, and the loop continues.
// Only an error reading input is returned.
func (sh *Shell) Run(ctx context.Context) error {
	p := sh.ctx.Printer()
	if err := sh.history.Load(); err != nil {
		p.Println("Failed to load history:", err)
	}
	defer func() {
		if err := sh.history.Save(); err != nil {
			p.Println("Failed to save history:", err)
		}
		if sh.onFinished != nil {
			sh.onFinished(sh.ctx)
		}
	}()

	terminal := isTerminal(sh.input)
	if terminal && len(sh.intro) > 0 {
		p.Println(sh.intro)
	}
	reader := bufio.NewReader(sh.input)
	for {
		if ctx.Err() != nil {
			return nil
		}
		if terminal {
			p.Print(sh.prompt)
		}
		line, readErr := reader.ReadString('\n')
		if len(line) > 0 {
			if done := sh.handleLine(line); done {
				return nil
			}
		}
		if readErr != nil {
			if terminal {
				p.Println()
			}
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return readErr
		}
	}
}

// handleLine runs a single line of input, returning true if the loop should end.
func (sh *Shell) handleLine(line string) bool {
	p := sh.ctx.Printer()
	if size := len(strings.TrimRight(line, "\r\n")); size > InteractiveMaxLineSize {
		p.Println("Error:", fmt.Errorf("%w: %d bytes, the limit is %d", ErrLineTooLong, size, InteractiveMaxLineSize))
		return false
	}
	line = strings.TrimSpace(line)
	if len(line) == 0 {
		return false
	}
	sh.history.Add(line)
	line = sh.handler.BeforeLine(line)
	switch {
	case slices.Contains(InteractiveQuitCommands, strings.ToLower(line)):
		return true
	case slices.Contains(InteractiveHelpCommands, strings.ToLower(line)), HelpRequested([]string{line}):
		sh.ctx.Group.PrintUsage("")
		return false
	}
	if err := sh.handler.InterpretLine(line); err != nil {
		p.Println("Error:", err)
	}
	return false
}

// BeforeLine returns the line unchanged.
func (sh *Shell) BeforeLine(line string) string {
	return line
}

// InterpretLine splits the line into shell words, and runs the [Command] named by the first word with the rest as arguments.
// If no [Command] matches, then the installed handler's UnmatchedLine is called with the line.
func (sh *Shell) InterpretLine(line string) error {
	words, err := shellwords.Parse(line)
	if err != nil {
		return fmt.Errorf("failed to split line: %w", err)
	}
	if len(words) == 0 {
		return nil
	}
	cmd, ok := sh.ctx.Group.LookupCommand(words[0])
	if !ok {
		return sh.handler.UnmatchedLine(line)
	}
	return sh.ctx.Group.Invoke(&Context{
		Group:   sh.ctx.Group,
		Name:    cmd.Name(),
		Command: cmd,
		Args:    words[1:],
	})
}

// UnmatchedLine reports the first word of the line as an unknown command.
func (sh *Shell) UnmatchedLine(line string) error {
	word, _, _ := strings.Cut(line, " ")
	return fmt.Errorf("%w: %s", ErrUnknownCommand, word)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
