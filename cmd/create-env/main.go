package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ejmvar/ey-cli/internal/config"
	"github.com/ejmvar/ey-cli/internal/environment"
	"github.com/ejmvar/ey-cli/internal/flags"
	"github.com/ejmvar/ey-cli/internal/logging"
	"github.com/ejmvar/ey-cli/internal/provision"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes create_env and returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(nil)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to load configuration: %v\n", err)
		return exitFailure
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize logger: %v\n", err)
		return exitFailure
	}
	defer func() {
		_ = logger.Sync()
	}()

	parser := flags.NewParser(
		flags.WithCommandName("ey_cli create_env"),
		flags.WithUsageWriter(stdout),
	)
	parsed, err := parser.Parse(args)
	if err != nil {
		return reportFlagError(stdout, stderr, err)
	}

	resolver := environment.New(stdout, environment.WithLogger(logger))
	envCfg, err := resolver.Resolve(parsed, environment.Defaults{
		EnvName:     cfg.EnvName,
		RubyVersion: cfg.RubyVersion,
	})
	if err != nil {
		logger.Error("failed to resolve environment options", zap.Error(err))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	format, err := provision.ParseFormat(cfg.OutputFormat)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	app, _ := parsed.Get(flags.App).AsString()
	req := provision.NewRequest(app, envCfg)
	req.Domains = parsed.List(flags.URL)

	var provisioner provision.Provisioner = provision.NewPlanWriter(stdout, format, logger)
	if err := provisioner.Create(ctx, req); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	return exitOK
}

// reportFlagError prints a parse failure. An unknown instance size shows the
// whole catalog on the user channel and ends with status 1; other failures
// are usage errors.
func reportFlagError(stdout, stderr io.Writer, err error) int {
	switch {
	case errors.Is(err, flags.ErrHelpRequested):
		return exitOK
	case flags.IsTerminal(err):
		var flagErr *flags.FlagError
		errors.As(err, &flagErr)
		fmt.Fprintf(stdout, "Unknown instance size: %s. Please, use one of the following list:\n", flagErr.Value)
		fmt.Fprintln(stdout, inspect(flagErr.Allowed))
		return exitFailure
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
}

func inspect(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
