// Package cli defines the checkoff command tree.
//
// Running checkoff with no subcommand starts the TUI. The list, add,
// toggle, rename and rm subcommands drive the same syncer.Controller once
// and exit; every mutation is followed by the usual refresh so output
// reflects the server. Exit status is 0 on success, 1 when the server or
// network fails, and 2 for bad usage or configuration.
package cli
