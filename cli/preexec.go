package cli

import "sync"

// PreExec is a function that may run before execution of a [Command].
// It's given the [Command] about to run, and its positional arguments after flag parsing.
type PreExec func(cmd *Command, args []string) error

var (
	preExecMux    sync.Mutex
	globalPreExec []PreExec
)

// AddGlobalPreExec registers a function that will be executed right before a [Command] runs.
// If an error is returned from a [PreExec], then the [Command] will not be executed, and the error will be returned from Exec instead.
// No [PreExec] is run when a [Command] only prints usage, or when its flags fail to parse.
//
// Passing a nil [PreExec] function to this function will panic.
func AddGlobalPreExec(fn PreExec) {
	if fn == nil {
		panic("nil pre-exec function")
	}
	preExecMux.Lock()
	defer preExecMux.Unlock()
	globalPreExec = append(globalPreExec, fn)
}

func runGlobalPreExec(cmd *Command, args []string) error {
	preExecMux.Lock()
	defer preExecMux.Unlock()
	for _, fn := range globalPreExec {
		if err := fn(cmd, args); err != nil {
			return err
		}
	}
	return nil
}
