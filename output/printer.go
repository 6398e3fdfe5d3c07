package output

import (
	"io"
	"time"

	"github.com/nojima/hsend/input"
	"github.com/nojima/hsend/response"
	"github.com/nojima/hsend/session"
)

type Printer interface {
	PrintRequest(spec *input.Spec, at time.Time) error
	PrintCommand(argv []string) error
	PrintResponse(resp *response.Response) error
	PrintError(outcome *session.Outcome) error
}

// NewPrinter returns a PrettyPrinter when formatting is enabled and a
// PlainPrinter otherwise.
func NewPrinter(writer io.Writer, options *Options) Printer {
	if options.EnableFormat {
		return NewPrettyPrinter(PrettyPrinterConfig{
			Writer:      writer,
			EnableColor: options.EnableColor,
			Options:     options,
		})
	}
	return NewPlainPrinter(writer, options)
}
