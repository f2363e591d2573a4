package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"lenovo-report/internal/components/chrono"
	"lenovo-report/internal/components/telemetry"
	"lenovo-report/internal/config"
	"lenovo-report/internal/report"
	"lenovo-report/internal/scrapers/lenovo"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

const (
	exitOk        = 0
	exitFailure   = 1
	exitNoSerial  = 2
	defaultConfig = "lenovo-report.json5"
)

// ExitError carries the process exit code out of a command. Err is nil when
// the failure was already shown to the user.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func exitCode(err error) int {
	if err == nil {
		return exitOk
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return exitFailure
}

type options struct {
	serial     string
	timeout    float64
	noColor    bool
	autosave   bool
	outDir     string
	configPath string
	verbose    bool
	dumpHttp   string
	mailTo     string
}

// dependencies swapped out by tests.
type environment struct {
	clock chrono.TimeAPI
	tel   telemetry.API
}

func newRootCmd(env environment) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "lenovo-report [-s <serial>]",
		Short:         "lenovo-report looks up the warranty and build of a Lenovo machine by serial number.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, env, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.serial, "serial", "s", "", "Serial number, you will be prompted when omitted.")
	flags.Float64Var(&opts.timeout, "timeout", config.DefaultTimeout.Seconds(), "HTTP timeout in seconds.")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colors and styles.")
	flags.BoolVar(&opts.autosave, "autosave", false, "Save the report and exit without showing the menu.")
	flags.StringVar(&opts.outDir, "out-dir", config.DefaultOutputDir, "Directory reports are saved to.")
	flags.StringVar(&opts.configPath, "config", defaultConfig, "Config file, a .local variant next to it overrides it.")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging.")
	flags.StringVar(&opts.dumpHttp, "dump-http", "", "Write every HTTP exchange to this directory (needs --verbose).")
	flags.StringVar(&opts.mailTo, "mail-to", "", "Mail the saved report to this address, needs smtp config.")

	return cmd
}

// ExecuteContext runs the CLI and returns the process exit code.
func ExecuteContext(ctx context.Context) int {
	cmd := newRootCmd(environment{
		clock: chrono.NewStandardTime(),
		tel:   telemetry.SlogAPI{},
	})
	return execute(ctx, cmd)
}

func execute(ctx context.Context, cmd *cobra.Command) int {
	err := cmd.ExecuteContext(ctx)
	var exitErr *ExitError
	if err != nil && (!errors.As(err, &exitErr) || exitErr.Err != nil) {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
	}
	return exitCode(err)
}

func loadConfig(cmd *cobra.Command, opts options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("timeout") {
		cfg.TimeoutSeconds = opts.timeout
	}
	if flags.Changed("out-dir") {
		cfg.OutputDir = opts.outDir
	}
	return cfg, nil
}

func runReport(cmd *cobra.Command, env environment, opts options) error {
	telemetry.InitSlog(opts.verbose, opts.noColor)

	out := cmd.OutOrStdout()
	in := newPrompter(cmd.InOrStdin(), out)
	console := report.Console{Out: out, Color: !opts.noColor}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return &ExitError{Code: exitFailure, Err: fmt.Errorf("failed to read config: %w", err)}
	}
	if opts.mailTo != "" && !cfg.Smtp.Configured() {
		return &ExitError{Code: exitFailure, Err: errors.New("--mail-to needs smtp.server and smtp.email_address in the config")}
	}

	serial := opts.serial
	if serial == "" {
		serial, err = in.Serial()
		if err != nil {
			return &ExitError{Code: exitFailure, Err: err}
		}
	}
	serial = lenovo.NormSerial(serial)
	if serial == "" {
		console.Println("ERROR: serial is required.", text.FgRed, text.Bold)
		return &ExitError{Code: exitNoSerial}
	}

	var dump telemetry.InstrumentOutput
	if opts.dumpHttp != "" {
		dump, err = telemetry.NewFilesystemOutput(opts.dumpHttp)
		if err != nil {
			return &ExitError{Code: exitFailure, Err: fmt.Errorf("failed to create http dump directory: %w", err)}
		}
	}

	client, err := lenovo.NewClient(lenovo.ClientOptions{
		BaseUrl:          cfg.BaseUrl,
		UserAgent:        cfg.UserAgent,
		Country:          cfg.Country,
		Language:         cfg.Language,
		Timeout:          cfg.Timeout(),
		CloudflareBypass: cfg.CloudflareBypass,
		HttpDump:         dump,
	}, env.tel)
	if err != nil {
		return &ExitError{Code: exitFailure, Err: err}
	}

	lookup, err := client.Lookup(cmd.Context(), serial)
	if err != nil {
		printLookupError(console, err)
		return &ExitError{Code: exitFailure}
	}

	now := env.clock.Now()
	console.Render(lookup, now)
	fmt.Fprintln(out)

	if !opts.autosave {
		action, err := in.Action()
		if err != nil {
			return &ExitError{Code: exitFailure, Err: err}
		}
		if action == actionQuit {
			console.Println("No action taken. Exiting.", text.FgYellow)
			return nil
		}
	}

	err = saveReport(cmd.Context(), console, cfg, opts, lookup, now)
	if err != nil {
		return &ExitError{Code: exitFailure, Err: err}
	}
	return nil
}

func printLookupError(console report.Console, err error) {
	var transportErr *lenovo.TransportError
	var malformedErr *lenovo.MalformedResponseError
	switch {
	case errors.As(err, &transportErr):
		console.Println("HTTP ERROR: "+transportErr.Error(), text.FgRed, text.Bold)
	case errors.As(err, &malformedErr):
		console.Println("ERROR: "+malformedErr.Error(), text.FgRed, text.Bold)
	default:
		console.Println("ERROR: "+err.Error(), text.FgRed, text.Bold)
	}
}

func saveReport(
	ctx context.Context,
	console report.Console,
	cfg config.Config,
	opts options,
	lookup lenovo.Lookup,
	now time.Time,
) error {
	reportText := report.Text(lookup, now)
	path, err := report.Save(cfg.OutputDir, reportText, lookup.Record, now)
	if err != nil {
		return err
	}
	console.Println("Saved: "+path, text.FgGreen)

	if opts.mailTo == "" {
		return nil
	}
	mailer, err := report.NewMailer(cfg.Smtp)
	if err != nil {
		return err
	}
	err = mailer.Send(ctx, opts.mailTo, lookup.Record, reportText, filepath.Base(path))
	if err != nil {
		return err
	}
	console.Println("Mailed: "+opts.mailTo, text.FgGreen)
	return nil
}
