/*
Package defaultgroup adds default command fallback to a [cli.CommandSet].

A [Group] wraps a [cli.CommandSet] and may designate one of its commands as the default.
When the first argument doesn't name a known command, the default command is run and given all of the arguments, including the first.
Named commands are always preferred, so the default never hides a command that was asked for.

	group := defaultgroup.New(cli.NewCommandSet("tool"))
	group.AddDefaultCommand("echo", "Prints its arguments")
	group.AddCommand("add", "Adds integers")

	// Runs echo with [hello world].
	_ = group.Exec([]string{"hello", "world"})

Unknown options are ignored by the wrapped set, so input like "-n 3" is also passed along to the default command's own flags.
Help flags given as the first argument still print the usage of the whole group.

A [Shell] applies the same policy to each line of an interactive session.
A line that doesn't start with a known command is run as if the default command's name was typed before it.
Help words and flags on a line of their own print the usage of the whole group, as in [cli.Shell].

A [Group] doesn't set up logging itself, it only emits debug events to the [slog.Logger] given with [WithLogger].
Metrics are available by calling [Group.RegisterMetrics].
*/
package defaultgroup
