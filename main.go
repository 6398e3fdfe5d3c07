package hsend

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/nojima/hsend/command"
	"github.com/nojima/hsend/exchange"
	"github.com/nojima/hsend/flags"
	"github.com/nojima/hsend/input"
	"github.com/nojima/hsend/output"
	"github.com/nojima/hsend/response"
	"github.com/nojima/hsend/session"
	"github.com/nojima/hsend/version"
	"github.com/pkg/errors"
)

// Exit statuses other than 0 and 1.
const (
	ExitTimeout     = 2
	ExitRedirection = 3
	ExitClientError = 4
	ExitServerError = 5
)

type Options struct {
	Args   []string // os.Args when nil
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (o *Options) fill() {
	if o.Args == nil {
		o.Args = os.Args
	}
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
}

// Main runs the command and returns the exit status. An error is returned
// only when nothing was printed about it yet.
func Main(options *Options) (int, error) {
	options.fill()

	// Parse flags
	args, flagSet, optionSet, err := flags.Parse(options.Args)
	if err != nil {
		if _, ok := errors.Cause(err).(*input.UsageError); ok {
			flagSet.PrintUsage(options.Stderr)
		}
		return 1, err
	}
	switch {
	case optionSet.ShowHelp:
		flagSet.PrintUsage(options.Stdout)
		return 0, nil
	case optionSet.ShowVersion:
		version.PrintVersion(options.Stdout)
		return 0, nil
	case optionSet.ShowLicense:
		version.PrintLicenses(options.Stdout)
		return 0, nil
	}

	// Read --data-file
	if optionSet.DataFile != "" {
		if optionSet.Spec.Body != "" {
			flagSet.PrintUsage(options.Stderr)
			return 1, errors.New("--data and --data-file cannot be used together")
		}
		body, err := input.ReadBody(optionSet.DataFile, options.Stdin)
		if err != nil {
			return 1, err
		}
		optionSet.Spec.Body = body
	}

	// Parse positional arguments
	spec, err := input.ParseArgs(args, &optionSet.Spec, &optionSet.InputOptions)
	if _, ok := errors.Cause(err).(*input.UsageError); ok {
		flagSet.PrintUsage(options.Stderr)
		return 1, err
	}
	if err != nil {
		return 1, err
	}

	writer := bufio.NewWriter(options.Stdout)
	defer writer.Flush()
	printer := output.NewPrinter(writer, &optionSet.OutputOptions)
	diagnostics := output.NewPrinter(options.Stderr, &optionSet.OutputOptions)

	if optionSet.DryRun {
		argv, err := command.Build(spec, &optionSet.CommandOptions)
		if err != nil {
			return 1, err
		}
		if err := printer.PrintCommand(argv); err != nil {
			return 1, err
		}
		return 0, nil
	}

	sender, err := exchange.NewSender(&optionSet.ExchangeOptions, &optionSet.CommandOptions)
	if err != nil {
		return 1, err
	}
	if curl, ok := sender.(*exchange.CurlSender); ok && optionSet.Verbose {
		curl.Trace = func(argv []string) {
			diagnostics.PrintCommand(argv)
		}
	}

	if err := printer.PrintRequest(spec, time.Now()); err != nil {
		return 1, err
	}
	writer.Flush()

	outcome, err := send(session.New(sender), spec)
	if err != nil {
		return 1, err
	}
	if outcome.Err != nil {
		if err := diagnostics.PrintError(outcome); err != nil {
			return 1, err
		}
		if outcome.Kind() == session.TimedOut {
			return ExitTimeout, nil
		}
		return 1, nil
	}

	resp := outcome.Response
	if optionSet.Filter != "" {
		resp, err = resp.Filter(optionSet.Filter)
		if err != nil {
			return 1, err
		}
	}

	if err := printer.PrintResponse(resp); err != nil {
		return 1, err
	}
	if optionSet.OutputOptions.OutputFile != "" {
		fileWriter := output.NewFileWriter(&optionSet.OutputOptions)
		if err := fileWriter.Write(resp); err != nil {
			return 1, err
		}
		fmt.Fprintf(options.Stderr, "Saved the response body to %s\n", fileWriter.Path())
	}

	if optionSet.CheckStatus {
		return exitStatus(resp), nil
	}
	return 0, nil
}

// send runs one request in the background and waits for it. An interrupt
// cancels the request; its outcome is still waited for.
func send(s *session.Session, spec *input.Spec) (*session.Outcome, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	outcomes, err := s.Start(ctx, spec)
	if err != nil {
		return nil, err
	}
	outcome := <-outcomes
	return &outcome, nil
}

func exitStatus(resp *response.Response) int {
	switch {
	case resp.StatusCode >= 300 && resp.StatusCode < 400:
		return ExitRedirection
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return ExitClientError
	case resp.StatusCode >= 500 && resp.StatusCode < 600:
		return ExitServerError
	default:
		return 0
	}
}
