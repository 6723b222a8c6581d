/*
Package defaultcmd is a CLI toolkit where a command group can fall back to a default command.

Input that doesn't start with a known command is handed to the default command as its arguments, both when running once from the command line and for each line of an interactive shell.

  - [github.com/saylorsolutions/defaultcmd/cli] has the command sets, flag handling, usage output, and the interactive shell loop.
  - [github.com/saylorsolutions/defaultcmd/defaultgroup] adds the default command fallback on top of them.
  - [github.com/saylorsolutions/defaultcmd/config] and [github.com/saylorsolutions/defaultcmd/diag] set up configuration and logging for programs built with it.

See cmd/sample-shell for a complete program.
*/
package defaultcmd
