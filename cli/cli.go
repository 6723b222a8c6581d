package cli

import (
	"errors"
	"fmt"
	flag "github.com/spf13/pflag"
	"os"
	"regexp"
	"slices"
	"strings"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUnknownOption  = errors.New("unknown option")
	HelpPatterns      = []string{"--help", "-h"} // HelpPatterns is a slice of flags that should trigger the output of usage information with the top-level [CommandSet].

	keyCleansePattern = regexp.MustCompile(`\s`)
)

// CommandFunc is a function that may be executed within a [Command].
type CommandFunc = func(flags *flag.FlagSet, printer *Printer) error

// Command is an executable function in a CLI.
// It should be linked to a [CommandSet] to establish a tree of commands available to the user.
type Command struct {
	CommandSet
	flags      *flag.FlagSet
	exec       CommandFunc
	key        string
	parent     string
	shortUsage string
	printer    *Printer
	aliases    []string

	sliceDefaults map[string][]string
	setSlices     map[string]bool
}

func cleanseKey(key string) string {
	return keyCleansePattern.ReplaceAllString(strings.ToLower(key), "")
}

func newCommand(key, parent, shortUsage string, printer *Printer) *Command {
	key = cleanseKey(key)
	fs := flag.NewFlagSet(key, flag.ContinueOnError)
	fs.BoolP("help", "h", false, "Prints this usage information")
	fs.SetInterspersed(false)
	cmd := &Command{flags: fs, key: key, parent: parent, shortUsage: shortUsage, printer: printer}
	cmd.CommandSet.printer = printer
	if len(parent) > 0 {
		cmd.CommandSet.parent = strings.Join([]string{parent, key}, " ")
	} else {
		cmd.CommandSet.parent = key
	}
	cmd.Usage("").Does(func(flags *flag.FlagSet, _ *Printer) error {
		flags.Usage()
		return nil
	})
	return cmd
}

// Does specifies the [CommandFunc] that should be executed by this [Command].
func (c *Command) Does(commandFunc CommandFunc) *Command {
	if commandFunc == nil {
		return c
	}
	c.exec = commandFunc
	return c
}

// Name returns the cleansed key used to select this [Command].
func (c *Command) Name() string {
	return c.key
}

// Aliases returns the sorted aliases registered for this [Command], if any.
func (c *Command) Aliases() []string {
	return slices.Clone(c.aliases)
}

// ShortUsage returns the one-line description given when the [Command] was added.
func (c *Command) ShortUsage() string {
	return c.shortUsage
}

// Parent retrieves the parent [Command] name.
func (c *Command) Parent() string {
	return c.parent
}

// CommandPath returns the reference chain for this [Command].
func (c *Command) CommandPath() string {
	if len(c.parent) == 0 {
		return c.key
	}
	return fmt.Sprintf("%s %s", c.parent, c.key)
}

// Flags returns the [flag.FlagSet] for this [Command].
func (c *Command) Flags() *flag.FlagSet {
	return c.flags
}

// Usage allows specifying a longer description of the [Command] that will be output when a [HelpPatterns] flag is passed.
//
// The short description, flag usages, and sub-command usages will be appended to this description.
func (c *Command) Usage(format string, args ...any) *Command {
	text := fmt.Sprintf(format, args...)
	if len(c.Parent()) > 0 && len(text) > 0 {
		text = c.Parent() + " " + text
	}
	if len(text) > 0 {
		text = `USAGE:
` + text
	}
	c.flags.Usage = func() {
		var buf strings.Builder
		if len(text) == 0 {
			buf.WriteString("\n" + c.shortUsage)
		} else {
			if !strings.HasSuffix(text, "\n") {
				text += "\n"
			}
			buf.WriteString(fmt.Sprintf(`%s

%s`, c.shortUsage, text))
		}
		buf.WriteString("\nFLAGS\n")
		buf.WriteString(c.flags.FlagUsages())
		if len(c.CommandSet.commands) > 0 {
			buf.WriteString("\nCOMMANDS\n")
			buf.WriteString(c.CommandUsages())
		}
		c.printer.Print(buf.String())
	}
	return c
}

// Exec executes the command with given arguments, parsing flags.
//
// If the first argument names a sub-command, then execution is handed to that sub-command instead.
// A [UsageError] returned from the [CommandFunc] causes the error and usage information to be printed before it's returned.
func (c *Command) Exec(args []string) error {
	if len(c.CommandSet.commands) > 0 {
		res, err := c.CommandSet.Lookup(args)
		if err == nil && res.Matched() {
			return c.CommandSet.Invoke(&Context{Group: &c.CommandSet, Name: res.Name, Command: res.Command, Args: res.Args})
		}
	}
	c.resetFlags()
	err := c.flags.Parse(args)
	c.restoreSliceDefaults()
	if err != nil {
		return err
	}
	if val, _ := c.flags.GetBool("help"); val {
		c.flags.Usage()
		return nil
	}
	if err := runGlobalPreExec(c, c.flags.Args()); err != nil {
		return err
	}
	err = c.exec(c.flags, c.Printer())
	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		c.printer.Println(err.Error())
		c.flags.Usage()
	}
	return err
}

// resetFlags returns flags set by an earlier Exec to their defaults, so values don't carry over between runs.
//
// A pflag slice value appends once it has been set, so slices set before are emptied here, and restored to their defaults by restoreSliceDefaults if they aren't set again.
// Map values (like StringToString) can't be emptied through [flag.Value], and keep keys from earlier runs.
func (c *Command) resetFlags() {
	if c.sliceDefaults == nil {
		c.sliceDefaults = map[string][]string{}
		c.setSlices = map[string]bool{}
	}
	c.flags.VisitAll(func(f *flag.Flag) {
		sv, isSlice := f.Value.(flag.SliceValue)
		if isSlice {
			if _, ok := c.sliceDefaults[f.Name]; !ok {
				c.sliceDefaults[f.Name] = slices.Clone(sv.GetSlice())
			}
			if c.setSlices[f.Name] {
				_ = sv.Replace([]string{})
			}
		} else if f.Changed {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
}

func (c *Command) restoreSliceDefaults() {
	c.flags.VisitAll(func(f *flag.Flag) {
		sv, ok := f.Value.(flag.SliceValue)
		if !ok {
			return
		}
		if f.Changed {
			c.setSlices[f.Name] = true
			return
		}
		if c.setSlices[f.Name] {
			_ = sv.Replace(slices.Clone(c.sliceDefaults[f.Name]))
		}
	})
}

// CommandSet is a group of [Command].
type CommandSet struct {
	commands             map[string]*Command
	aliases              map[string]*Command
	printer              *Printer
	parent               string
	ignoreUnknownOptions bool
}

var _ Group = (*CommandSet)(nil)

// NewCommandSet is used to set up a top level [CommandSet] as the root of a CLI's command structure.
//
// Note: the parent(s) passed to this function will be used to populate sub-command usage information.
// So they should only contain the commands used to invoke this [CommandSet].
func NewCommandSet(parent ...string) *CommandSet {
	var _parent string
	if len(parent) > 0 {
		_parent = strings.Join(parent, " ")
	}
	return &CommandSet{printer: NewPrinter(), parent: _parent}
}

// Parent retrieves the parent [CommandSet] name.
func (s *CommandSet) Parent() string {
	return s.parent
}

// IgnoreUnknownOptions controls what happens when the first argument looks like a flag.
// By default, [CommandSet.Lookup] rejects it with [ErrUnknownOption], since a [CommandSet] has no flags of its own.
// When ignored, the argument is treated like any other unmatched command key.
func (s *CommandSet) IgnoreUnknownOptions(ignore bool) *CommandSet {
	s.ignoreUnknownOptions = ignore
	return s
}

// IgnoresUnknownOptions reports the value set with [CommandSet.IgnoreUnknownOptions].
func (s *CommandSet) IgnoresUnknownOptions() bool {
	return s.ignoreUnknownOptions
}

// AddCommand adds a sub-command to this [CommandSet].
// The key parameter will be cleansed to remove spaces, and normalize to lower-case.
// Aliases may be added as a way to support shorter variants of the same [Command].
func (s *CommandSet) AddCommand(key, shortUsage string, aliases ...string) *Command {
	key = cleanseKey(key)
	cmd := newCommand(key, s.parent, shortUsage, s.Printer())
	if s.commands == nil {
		s.commands = map[string]*Command{}
	}
	s.commands[key] = cmd
	if len(aliases) > 0 {
		_aliases := make([]string, 0, len(aliases))
		for _, alias := range aliases {
			alias = cleanseKey(alias)
			if len(alias) == 0 {
				continue
			}
			if s.aliases == nil {
				s.aliases = map[string]*Command{}
			}
			s.aliases[alias] = cmd
			_aliases = append(_aliases, alias)
		}
		slices.Sort(_aliases)
		cmd.aliases = _aliases
	}
	return cmd
}

// LookupCommand finds a [Command] by key or alias, compared case-insensitive.
func (s *CommandSet) LookupCommand(key string) (*Command, bool) {
	key = strings.ToLower(key)
	if cmd, ok := s.commands[key]; ok {
		return cmd, true
	}
	cmd, ok := s.aliases[key]
	return cmd, ok
}

// Lookup attempts to match the first argument to a [Command].
//
// An unmatched [Resolution] is returned, with a nil error, when there are no arguments or the key is unknown.
// The error is only non-nil when the arguments are rejected outright, which happens for a leading flag unless [CommandSet.IgnoreUnknownOptions] is set.
func (s *CommandSet) Lookup(args []string) (Resolution, error) {
	if len(args) == 0 {
		return Resolution{Reason: fmt.Errorf("%w: no arguments", ErrUnknownCommand)}, nil
	}
	if isOption(args[0]) && !s.ignoreUnknownOptions {
		return Resolution{}, fmt.Errorf("%w: %s", ErrUnknownOption, args[0])
	}
	cmd, ok := s.LookupCommand(args[0])
	if !ok {
		return Resolution{Reason: fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])}, nil
	}
	return Resolution{Name: cmd.key, Command: cmd, Args: args[1:]}, nil
}

// ResolveCommand converts the result of [CommandSet.Lookup] into the command name, [Command], and remaining arguments.
// An unmatched [Resolution] is reported as its Reason.
func (s *CommandSet) ResolveCommand(_ *Context, args []string) (string, *Command, []string, error) {
	res, err := s.Lookup(args)
	if err != nil {
		return "", nil, nil, err
	}
	if !res.Matched() {
		return "", nil, nil, res.Reason
	}
	return res.Name, res.Command, res.Args, nil
}

// Invoke executes the [Command] resolved into the [Context] with its remaining arguments.
func (s *CommandSet) Invoke(ctx *Context) error {
	if ctx == nil || ctx.Command == nil {
		return fmt.Errorf("%w: nothing to invoke", ErrUnknownCommand)
	}
	return ctx.Command.Exec(ctx.Args)
}

// Printer returns the cached [Printer] for this [CommandSet].
func (s *CommandSet) Printer() *Printer {
	if s.printer == nil {
		s.printer = NewPrinter()
	}
	return s.printer
}

// Exec executes this [CommandSet].
// It's expected that the first 1+ arguments include the key/alias for a sub-command.
// If the first argument is one of [HelpPatterns], then usage information is printed instead.
func (s *CommandSet) Exec(args []string) error {
	if HelpRequested(args) {
		s.PrintUsage("")
		return nil
	}
	return Dispatch(s, args)
}

// RespondUsage will print usage information with the given [Printer] if one of [HelpPatterns] is given as the first argument.
// If usage information was printed, then true will be returned.
func (s *CommandSet) RespondUsage(format string, vals ...any) bool {
	if !HelpRequested(os.Args[1:]) {
		return false
	}
	s.PrintUsage(format, vals...)
	return true
}

// PrintUsage prints the parent name, an optional description, and the sub-command usages.
func (s *CommandSet) PrintUsage(format string, vals ...any) {
	text := fmt.Sprintf(format, vals...)
	if len(text) > 0 {
		text = strings.TrimSuffix("\n\n"+text, "\n")
	}
	usage := fmt.Sprintf(`%s%s

COMMANDS:
%s`, s.parent, text, s.CommandUsages())
	s.Printer().Print(usage)
}

// CommandUsages returns a string including the usage information for sub-commands in this [CommandSet].
//
// The sub-command keys will be sorted alphabetically before output.
func (s *CommandSet) CommandUsages() string {
	var (
		buf         strings.Builder
		cmds        []*Command
		keys        = make([]string, len(s.commands))
		withAliases = make([]string, len(s.commands))
		maxLen      int
		i           int
	)
	for key := range s.commands {
		keys[i] = key
		withAliases[i] = key
		i++
	}
	slices.Sort(keys)
	slices.Sort(withAliases)

	cmds = make([]*Command, len(keys))
	for i, key := range keys {
		cmd := s.commands[key]
		cmds[i] = cmd
		if len(cmd.aliases) > 0 {
			withAliases[i] = strings.Join(append([]string{key}, cmd.aliases...), ", ")
		}
		l := len(withAliases[i])
		if l > maxLen {
			maxLen = l
		}
	}
	fmtStr := fmt.Sprintf("  %%-%ds\t%%s\n", maxLen)
	for i, cmd := range cmds {
		buf.WriteString(fmt.Sprintf(fmtStr, withAliases[i], cmd.shortUsage))
	}
	return buf.String()
}

// HelpRequested reports whether the first argument is one of [HelpPatterns].
func HelpRequested(args []string) bool {
	return len(args) > 0 && slices.Contains(HelpPatterns, args[0])
}

func isOption(arg string) bool {
	return len(arg) > 1 && arg != "--" && strings.HasPrefix(arg, "-")
}
