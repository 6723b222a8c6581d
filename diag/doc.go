// Package diag sets up process-wide diagnostic logging with [log/slog].
//
// Libraries in this module only emit events to a [slog.Logger] they're given.
// Choosing handlers, levels, and destinations happens once, in main, with [Init].
package diag
