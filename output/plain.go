package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nojima/hsend/command"
	"github.com/nojima/hsend/input"
	"github.com/nojima/hsend/response"
	"github.com/nojima/hsend/session"
	"github.com/pkg/errors"
)

// PlainPrinter writes the response as received, without formatting. It is
// meant for output that goes to a pipe or a file.
type PlainPrinter struct {
	writer  io.Writer
	options *Options
}

func NewPlainPrinter(writer io.Writer, options *Options) Printer {
	return &PlainPrinter{
		writer:  writer,
		options: options,
	}
}

func (p *PlainPrinter) PrintRequest(spec *input.Spec, at time.Time) error {
	if !p.options.PrintRequestLine {
		return nil
	}
	fmt.Fprintf(p.writer, "%s %s\n\n", spec.Method, command.BuildURL(spec))
	return nil
}

func (p *PlainPrinter) PrintCommand(argv []string) error {
	fmt.Fprintln(p.writer, command.Quote(argv))
	return nil
}

func (p *PlainPrinter) PrintResponse(resp *response.Response) error {
	if p.options.PrintResponseHeader {
		for _, line := range resp.HeaderLines {
			fmt.Fprintln(p.writer, line)
		}
		fmt.Fprintln(p.writer)
	}
	if p.options.PrintResponseBody {
		if _, err := io.Copy(p.writer, strings.NewReader(resp.BodyText)); err != nil {
			return errors.Wrap(err, "printing response body")
		}
	}
	return nil
}

func (p *PlainPrinter) PrintError(outcome *session.Outcome) error {
	fmt.Fprintf(p.writer, "%s: %s\n", outcome.Label(), errorMessage(outcome))
	return nil
}

func errorMessage(outcome *session.Outcome) string {
	if outcome.Err == nil {
		return ""
	}
	return errors.Cause(outcome.Err).Error()
}
