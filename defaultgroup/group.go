package defaultgroup

import (
	"github.com/saylorsolutions/defaultcmd/cli"
	"log/slog"
	"slices"
)

// Option configures a [Group].
type Option func(*Group)

// WithLogger sets the logger used for resolution events.
// [slog.Default] is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Group) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithDefaultIfNoArgs makes the default command run when no arguments are given at all.
// Otherwise, empty input is looked up like any other input, and falls back to the default once unmatched.
func WithDefaultIfNoArgs(enabled bool) Option {
	return func(g *Group) {
		g.defaultIfNoArgs = enabled
	}
}

// Group is a [cli.Group] that falls back to a default [cli.Command] when input doesn't name a known one.
// In that case, all of the input is handed to the default command as its arguments.
type Group struct {
	set             *cli.CommandSet
	defaultCmd      *cli.Command
	defaultIfNoArgs bool
	logger          *slog.Logger
	metrics         *metrics
}

var _ cli.Group = (*Group)(nil)

// New wraps the given [cli.CommandSet] in a [Group].
// Unknown options are ignored by the set from now on, so option-like input can be passed to the default command.
func New(set *cli.CommandSet, opts ...Option) *Group {
	if set == nil {
		set = cli.NewCommandSet()
	}
	g := &Group{
		set:    set.IgnoreUnknownOptions(true),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CommandSet returns the wrapped [cli.CommandSet].
func (g *Group) CommandSet() *cli.CommandSet {
	return g.set
}

// AddCommand declares a [cli.Command] in the wrapped set.
func (g *Group) AddCommand(key, shortUsage string, aliases ...string) *cli.Command {
	return g.set.AddCommand(key, shortUsage, aliases...)
}

// AddDefaultCommand declares a [cli.Command] like [Group.AddCommand], and makes it the default.
func (g *Group) AddDefaultCommand(key, shortUsage string, aliases ...string) *cli.Command {
	cmd := g.set.AddCommand(key, shortUsage, aliases...)
	g.SetDefaultCommand(cmd)
	return cmd
}

// SetDefaultCommand makes cmd the default, replacing any previous default.
// The command is expected to be declared in this group already.
func (g *Group) SetDefaultCommand(cmd *cli.Command) {
	if g.defaultCmd != nil && cmd != nil && g.defaultCmd != cmd {
		g.logger.Warn("Replacing default command", "previous", g.defaultCmd.Name(), "default", cmd.Name())
	}
	g.defaultCmd = cmd
}

// DefaultCommand returns the default [cli.Command], or nil if none is set.
func (g *Group) DefaultCommand() *cli.Command {
	return g.defaultCmd
}

// DefaultCommandName returns the name of the default [cli.Command], and whether one is set.
func (g *Group) DefaultCommandName() (string, bool) {
	if g.defaultCmd == nil {
		return "", false
	}
	return g.defaultCmd.Name(), true
}

// LookupCommand finds a declared command by key or alias.
// The default is never substituted here.
func (g *Group) LookupCommand(key string) (*cli.Command, bool) {
	return g.set.LookupCommand(key)
}

// ResolveCommand picks the [cli.Command] to run for args.
//
// A command named by the first argument is always preferred.
// When the first argument doesn't name a command, the default command is returned with a copy of all args.
// Without a default, the unmatched error from the [cli.CommandSet] is returned as is.
func (g *Group) ResolveCommand(_ *cli.Context, args []string) (string, *cli.Command, []string, error) {
	g.logger.Debug("Resolving command", "args", args)
	if g.defaultIfNoArgs && len(args) == 0 && g.defaultCmd != nil {
		g.logger.Debug("No arguments, using default command", "command", g.defaultCmd.Name())
		g.metrics.resolved(outcomeFallback)
		return g.defaultCmd.Name(), g.defaultCmd, []string{}, nil
	}

	res, err := g.set.Lookup(args)
	if err != nil {
		g.logger.Debug("Arguments rejected", "error", err)
		return "", nil, nil, err
	}
	if res.Matched() {
		g.logger.Debug("Resolved command", "command", res.Name, "args", res.Args)
		g.metrics.resolved(outcomeMatched)
		return res.Name, res.Command, res.Args, nil
	}
	if g.defaultCmd == nil {
		g.logger.Debug("Unmatched without a default command", "reason", res.Reason)
		g.metrics.resolved(outcomeUnmatched)
		return "", nil, nil, res.Reason
	}
	remaining := slices.Clone(args)
	if remaining == nil {
		remaining = []string{}
	}
	g.logger.Debug("Falling back to default command", "reason", res.Reason, "command", g.defaultCmd.Name(), "args", remaining)
	g.metrics.resolved(outcomeFallback)
	return g.defaultCmd.Name(), g.defaultCmd, remaining, nil
}

// Invoke runs the resolved command with the wrapped set.
func (g *Group) Invoke(ctx *cli.Context) error {
	if ctx == nil || ctx.Command == nil {
		return g.set.Invoke(ctx)
	}
	done := g.metrics.invoking(ctx.Name)
	err := g.set.Invoke(ctx)
	done(err)
	return err
}

// Exec runs the command resolved from args, as given on the command line.
// Group usage is printed if the first argument is one of [cli.HelpPatterns].
func (g *Group) Exec(args []string) error {
	if cli.HelpRequested(args) {
		g.PrintUsage("")
		return nil
	}
	return cli.Dispatch(g, args)
}

// PrintUsage prints the usage of the wrapped set.
func (g *Group) PrintUsage(format string, vals ...any) {
	g.set.PrintUsage(format, vals...)
}

// Printer returns the [cli.Printer] of the wrapped set.
func (g *Group) Printer() *cli.Printer {
	return g.set.Printer()
}

// Parent returns the parent name of the wrapped set.
func (g *Group) Parent() string {
	return g.set.Parent()
}
