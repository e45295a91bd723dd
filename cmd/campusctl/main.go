// Package main is campusctl, a terminal client for the campus events API.
// Every command declares the access it needs and is checked by the same
// route gate the portal uses before any protected call is made.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"uwevents/internal/app"
	"uwevents/internal/platform/config"
	"uwevents/internal/platform/logger"
	"uwevents/internal/platform/tracer"
)

var (
	version = "dev"
	commit  = "none"
)

// Exit codes.
const (
	exitOK     = 0
	exitFailed = 1
	exitGate   = 2
	exitUsage  = 64
)

type opener func(ctx context.Context, cfg config.Config, log *slog.Logger) (*app.App, error)

func openApp(ctx context.Context, cfg config.Config, log *slog.Logger) (*app.App, error) {
	return app.New(ctx, cfg, app.WithLogger(log), app.WithTracer(tracer.NewOTel()))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, openApp)
	stop()
	os.Exit(code)
}

// run executes one command line and returns the process exit code.
func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer, open opener) int {
	c := &cli{in: in, out: out, errOut: errOut, open: open}
	defer c.close()

	root := c.rootCommand()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	fmt.Fprintf(errOut, "error: %v\n", err)

	var gateErr *gateError
	var usage usageError
	switch {
	case errors.As(err, &gateErr):
		return exitGate
	case errors.As(err, &usage):
		return exitUsage
	default:
		return exitFailed
	}
}

// cli carries the global flags and the lazily opened client graph.
type cli struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	open   opener

	apiURL      string
	storagePath string
	logLevel    string
	jsonOutput  bool

	app *app.App
}

// usageError marks a bad invocation rather than a failed call.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "campusctl",
		Short:         "Command-line client for the campus events platform",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{msg: err.Error()}
	})

	flags := root.PersistentFlags()
	flags.StringVar(&c.apiURL, "api-url", "", "API base URL (overrides CAMPUS_API_BASE_URL)")
	flags.StringVar(&c.storagePath, "storage", "", "local storage file (overrides CAMPUS_STORAGE_PATH)")
	flags.StringVar(&c.logLevel, "log-level", "warn", "log level written to stderr")
	flags.BoolVar(&c.jsonOutput, "json", false, "print JSON instead of tables")

	root.AddCommand(
		&cobra.Command{
			Use:   "version",
			Short: "Print the build version",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "campusctl %s (commit: %s)\n", version, commit)
			},
		},
	)
	root.AddCommand(c.sessionCommands()...)
	root.AddCommand(c.verifyCommand(), c.adminCommand(), c.promotionsCommand(), c.moderationCommand())
	root.AddCommand(c.memberCommand(), c.eventsCommand(), c.clubsCommand(), c.submissionsCommand(), c.newsletterCommand())
	return root
}

// client opens the client graph on first use so that help and version never
// touch storage.
func (c *cli) client(ctx context.Context) (*app.App, error) {
	if c.app != nil {
		return c.app, nil
	}
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	if c.apiURL != "" {
		cfg.APIBaseURL = c.apiURL
	}
	if c.storagePath != "" {
		cfg.StoragePath = c.storagePath
	}
	a, err := c.open(ctx, cfg, logger.NewWithWriter(c.errOut, c.logLevel))
	if err != nil {
		return nil, fmt.Errorf("open client: %w", err)
	}
	c.app = a
	return a, nil
}

func (c *cli) close() {
	if c.app != nil {
		_ = c.app.Close()
	}
}
