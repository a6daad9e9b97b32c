// Package app is the composition root for checkoff.
//
// Setup turns configuration into a ready controller:
//
//	config.Load()      read ~/.config/checkoff/config.toml + environment
//	cfg.Validate()     a missing base URL stops here as *StartupError
//	api.NewClient()    HTTP gateway for the todos API
//	syncer.New()       controller owning state.Store and session.Session
//
// Run adds the terminal pieces on top: it redirects the standard logger to
// the configured log file (tea.LogToFile), loads view preferences, starts
// the optional background poller and blocks in ui.Run. The command line
// subcommands in package cli call Setup directly and never start the TUI.
//
// Startup failures are values, not panics: callers decide how to report a
// *StartupError. cmd/checkoff prints it and exits with status 2.
package app
