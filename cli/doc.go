/*
Package cli provides an opinionated package for how a CLI with sub-commands can be structured.

There are a few reasonable (IMHO) policies for how this operates.

  - User-visible output should go to STDERR by default. This is supported with a configurable [Printer].
  - This package uses [pflag] for posix style flags.
  - Flags should NOT be interspersed by default. This makes flag and argument parsing much more consistent and predictable, but can be overridden.
  - Global flags are often confusing and not necessary. Flags apply to the command at hand, while global state may be configured through other means.
  - Sub-command aliases are often very convenient, so they're supported as additional, optional parameters to [CommandSet.AddCommand].

# Invocation

Invoking a CLI with sub-commands can always follow this form:

	CLI_NAME [SUB-COMMAND...] [FLAGS...] [ARGS...]

This consistency helps to build muscle memory for frequent CLI use, and a predictable user experience.
Just calling CLI_NAME will print usage information for the tool.

# Resolution

Dispatching arguments happens in two steps, both part of the [Group] interface.
[Group.ResolveCommand] picks the [Command] and the arguments it will be given, and [Group.Invoke] runs it.
[Dispatch] ties these together, and [CommandSet.Exec] calls it after checking for [HelpPatterns].

[CommandSet.Lookup] reports whether the first argument matched with a [Resolution], rather than an error.
This lets a wrapping [Group] decide what to do with unmatched input without guessing which errors mean "not found".

# Usage by default

Usage information can be incredibly helpful for understanding a tool's purpose and expectations.
That's why the '-h' and '--help' flags are set up by default, with input from the developer with the [Command.Usage] method.

Flag usage and sub-command usage is included in a usage template along with developer-provided usage information.

To display usage information from the root [CommandSet]'s perspective, use [CommandSet.RespondUsage].
This method will return true if the user requested root command usage.

A [UsageError] returned from a [Command] will be printed along with its usage information.

# Prioritizing Dev UX

Developers want nice things too, especially with tooling they rely on.
This is the motivation for interactive mode.

A [Shell] reads lines of input, splits them like a POSIX shell would, and runs the named [Command] in the same process.
If your CLI calls [Shell.RespondInteractive], then you're enabling the use of the [InteractiveFlag] (which can be changed) to enter this mode.
[InteractiveRequested] makes the same check on arguments that aren't taken from os.Args.

Each line passes through a [LineHandler], which can be replaced to change how unknown lines are treated.

To exit interactive mode, use one of the [InteractiveQuitCommands] at the prompt.

For more robust interactivity, I can recommend [tview] as a great tool for full TUI support.
It's easy to use, and quick to get productive.
I haven't tried many alternatives because this works well for me. YMMV.

[pflag]: https://github.com/spf13/pflag
[tview]: https://github.com/rivo/tview
*/
package cli
