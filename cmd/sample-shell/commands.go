package main

import (
	"github.com/saylorsolutions/defaultcmd/cli"
	"github.com/saylorsolutions/defaultcmd/defaultgroup"
	flag "github.com/spf13/pflag"
	"log/slog"
	"strconv"
	"strings"
)

// declareCommands adds the sample commands to the group, with echo as the default.
func declareCommands(group *defaultgroup.Group, logger *slog.Logger) {
	echo := group.AddDefaultCommand("echo", "Prints its arguments, used for anything that isn't a command")
	echo.Flags().IntP("count", "c", 1, "Number of times to print the arguments")
	echo.Flags().SetInterspersed(true)
	echo.Usage("echo [FLAGS] ARGS...")
	echo.Does(func(flags *flag.FlagSet, out *cli.Printer) error {
		count := cli.MustGet(flags.GetInt("count"))
		if count < 1 {
			return cli.NewUsageError("count must be at least 1, got %d", count)
		}
		line := strings.Join(flags.Args(), " ")
		for i := 0; i < count; i++ {
			out.Println(line)
		}
		return nil
	})

	add := group.AddCommand("add", "Adds two or more integers", "sum")
	add.Usage("add INT INT [INT...]")
	add.Does(func(flags *flag.FlagSet, out *cli.Printer) error {
		ints, err := cli.IntArgs(flags.Args(), 2)
		if err != nil {
			return cli.AsUsageError(err)
		}
		var sum int
		for _, i := range ints {
			sum += i
		}
		out.Println(strconv.Itoa(sum))
		return nil
	})

	nonDefault := group.AddCommand("non-default", "Only runs when named")
	nonDefault.Usage("non-default [NAME]")
	nonDefault.Does(func(flags *flag.FlagSet, _ *cli.Printer) error {
		name := "anonymous"
		if err := cli.MapArgs(flags.Args(), 0, &name); err != nil {
			return cli.AsUsageError(err)
		}
		logger.Info("Command called", "command", "non-default", "name", name)
		return nil
	})
}
