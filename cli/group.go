package cli

// Group is the dispatch surface of a [CommandSet].
// Types wrapping a [CommandSet] implement it too, so they may be used anywhere a [CommandSet] is dispatched or run interactively.
type Group interface {
	AddCommand(key, shortUsage string, aliases ...string) *Command
	LookupCommand(key string) (*Command, bool)
	ResolveCommand(ctx *Context, args []string) (name string, cmd *Command, remaining []string, err error)
	Invoke(ctx *Context) error
	PrintUsage(format string, vals ...any)
	Printer() *Printer
}

// Context is the state of a single invocation.
// It's created for each dispatch, and discarded once the [Command] returns.
type Context struct {
	Group   Group    // Group is the [Group] being dispatched.
	Name    string   // Name is the resolved command name.
	Command *Command // Command is the resolved [Command], or nil before resolution.
	Args    []string // Args are the arguments remaining for the resolved Command.
}

// NewContext creates a [Context] for dispatching to the given [Group].
func NewContext(g Group) *Context {
	return &Context{Group: g}
}

// Printer returns the [Printer] of the context's [Group].
func (c *Context) Printer() *Printer {
	if c.Group == nil {
		return NewPrinter()
	}
	return c.Group.Printer()
}

// Resolution is the outcome of looking up a [Command] for a set of arguments.
// It's either matched, with a non-nil Command, or unmatched with a Reason.
type Resolution struct {
	Name    string
	Command *Command
	Args    []string
	Reason  error
}

// Matched reports whether a [Command] was found.
func (r Resolution) Matched() bool {
	return r.Command != nil
}

// Dispatch resolves args with the [Group] and invokes the result.
func Dispatch(g Group, args []string) error {
	ctx := NewContext(g)
	name, cmd, remaining, err := g.ResolveCommand(ctx, args)
	if err != nil {
		return err
	}
	ctx.Name, ctx.Command, ctx.Args = name, cmd, remaining
	return g.Invoke(ctx)
}
