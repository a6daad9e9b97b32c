package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/checkoff/internal/app"
	"github.com/five82/checkoff/internal/config"
	"github.com/five82/checkoff/internal/prefs"
	"github.com/five82/checkoff/internal/syncer"
)

// BuildInfo is stamped into the binary at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	baseURL    string
	prefsPath  string
	poll       time.Duration
	verbose    bool
	build      BuildInfo
}

func (o *rootOptions) appOptions() app.Options {
	return app.Options{
		ConfigPath: o.configPath,
		BaseURL:    o.baseURL,
		PrefsPath:  o.prefsPath,
		PollEvery:  o.poll,
		Version:    o.build.Version,
	}
}

// New builds the checkoff command tree. Without a subcommand it runs the TUI.
func New(build BuildInfo) *cobra.Command {
	if build.Version == "" {
		build.Version = "dev"
	}
	opts := &rootOptions{build: build}

	cmd := &cobra.Command{
		Use:           "checkoff",
		Short:         "A terminal todo list backed by a remote todos API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts.appOptions())
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Config file path (default "+config.DefaultPath()+").")
	flags.StringVar(&opts.baseURL, "base-url", "", "Todos collection URL; overrides config and $CHECKOFF_API_BASE_URL.")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log requests to stderr.")
	cmd.Flags().StringVar(&opts.prefsPath, "prefs", "", "Preferences file path (default "+prefs.DefaultPath()+").")
	cmd.Flags().DurationVar(&opts.poll, "poll", 0, "Refresh the list in the background at this interval (0 disables).")

	addList(cmd, opts)
	addAdd(cmd, opts)
	addToggle(cmd, opts)
	addRename(cmd, opts)
	addRemove(cmd, opts)
	addVersion(cmd, opts)
	return cmd
}

// UsageError marks bad arguments or flags.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &UsageError{Err: err}
		}
		return nil
	}
}

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var usage *UsageError
	var startup *app.StartupError
	if errors.As(err, &usage) || errors.As(err, &startup) {
		return 2
	}
	return 1
}

// connect wires the core for a one-shot command. Request logging goes to
// stderr only with --verbose.
func connect(cmd *cobra.Command, opts *rootOptions) (*syncer.Controller, error) {
	if opts.verbose {
		log.SetOutput(cmd.ErrOrStderr())
	} else {
		log.SetOutput(io.Discard)
	}
	env, err := app.Setup(opts.appOptions())
	if err != nil {
		return nil, err
	}
	return env.Controller, nil
}

// settle turns the outcome of a controller call into a command error.
// Remote failures are reported with the message the store recorded; a
// mutation whose follow-up refresh failed still fails the command.
func settle(ctrl *syncer.Controller, err error) error {
	if err != nil && syncer.IsValidation(err) {
		return err
	}
	if msg := ctrl.Snapshot().Err; msg != "" {
		return errors.New(msg)
	}
	return err
}

func joinTitle(args []string) string {
	return strings.Join(args, " ")
}

// Execute runs the command tree and reports failures on stderr.
func Execute(ctx context.Context, build BuildInfo) int {
	cmd := New(build)
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel(), err)
	}
	return ExitCode(err)
}
