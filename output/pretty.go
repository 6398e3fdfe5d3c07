package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"code.cloudfoundry.org/bytefmt"
	"github.com/logrusorgru/aurora"
	"github.com/nojima/hsend/command"
	"github.com/nojima/hsend/exchange"
	"github.com/nojima/hsend/input"
	"github.com/nojima/hsend/jsonfmt"
	"github.com/nojima/hsend/response"
	"github.com/nojima/hsend/session"
	"github.com/pkg/errors"
)

const ruleWidth = 45

type PrettyPrinter struct {
	writer        io.Writer
	aurora        aurora.Aurora
	enableColor   bool
	options       *Options
	headerPalette *HeaderPalette
	statusPalette *StatusPalette
	jsonPalette   *JSONPalette
}

type PrettyPrinterConfig struct {
	Writer      io.Writer
	EnableColor bool
	Options     *Options
}

type HeaderPalette struct {
	Proto          aurora.Color
	Status         aurora.Color
	FieldName      aurora.Color
	FieldValue     aurora.Color
	FieldSeparator aurora.Color
	Title          aurora.Color
	Rule           aurora.Color
}

var defaultHeaderPalette = HeaderPalette{
	Proto:          aurora.BlueFg,
	Status:         aurora.BrownFg | aurora.BoldFm,
	FieldName:      aurora.GrayFg,
	FieldValue:     aurora.CyanFg,
	FieldSeparator: aurora.GrayFg,
	Title:          aurora.BoldFm,
	Rule:           aurora.GrayFg,
}

// StatusPalette colors the status code by response.Class.
type StatusPalette struct {
	Success aurora.Color
	Failure aurora.Color
	Neutral aurora.Color
}

var defaultStatusPalette = StatusPalette{
	Success: aurora.GreenFg | aurora.BoldFm,
	Failure: aurora.RedFg | aurora.BoldFm,
	Neutral: aurora.BrownFg | aurora.BoldFm,
}

type JSONPalette struct {
	Name    aurora.Color
	String  aurora.Color
	Number  aurora.Color
	Boolean aurora.Color
	Null    aurora.Color
	Symbol  aurora.Color
}

var defaultJSONPalette = JSONPalette{
	Name:    aurora.BlueFg | aurora.BoldFm,
	String:  aurora.GreenFg,
	Number:  aurora.CyanFg,
	Boolean: aurora.MagentaFg,
	Null:    aurora.MagentaFg | aurora.BoldFm,
	Symbol:  aurora.GrayFg,
}

func NewPrettyPrinter(config PrettyPrinterConfig) Printer {
	options := config.Options
	if options == nil {
		options = &Options{
			PrintRequestLine:    true,
			PrintResponseHeader: true,
			PrintResponseBody:   true,
			HeaderLimit:         DefaultHeaderLimit,
		}
	}
	return &PrettyPrinter{
		writer:        config.Writer,
		aurora:        aurora.NewAurora(config.EnableColor),
		enableColor:   config.EnableColor,
		options:       options,
		headerPalette: &defaultHeaderPalette,
		statusPalette: &defaultStatusPalette,
		jsonPalette:   &defaultJSONPalette,
	}
}

func (p *PrettyPrinter) printTitle(title string) {
	fmt.Fprintln(p.writer, p.aurora.Colorize(title, p.headerPalette.Title))
	fmt.Fprintln(p.writer, p.aurora.Colorize(strings.Repeat("─", ruleWidth), p.headerPalette.Rule))
}

func (p *PrettyPrinter) printField(name, value string, valueColor aurora.Color) {
	fmt.Fprintf(p.writer, "%s%s %s\n",
		p.aurora.Colorize(name, p.headerPalette.FieldName),
		p.aurora.Colorize(":", p.headerPalette.FieldSeparator),
		p.aurora.Colorize(value, valueColor))
}

func (p *PrettyPrinter) PrintRequest(spec *input.Spec, at time.Time) error {
	if !p.options.PrintRequestLine {
		return nil
	}
	p.printTitle("REQUEST - " + at.Format("15:04:05"))
	fmt.Fprintf(p.writer, "%s %s\n\n",
		p.aurora.Colorize(string(spec.Method), p.headerPalette.Proto),
		p.aurora.Colorize(command.BuildURL(spec), p.headerPalette.FieldValue))
	return nil
}

func (p *PrettyPrinter) PrintCommand(argv []string) error {
	fmt.Fprintln(p.writer, p.aurora.Colorize(command.Quote(argv), p.headerPalette.FieldName))
	return nil
}

func (p *PrettyPrinter) PrintResponse(resp *response.Response) error {
	if p.options.PrintResponseHeader {
		p.printHead(resp)
	}
	if p.options.PrintResponseBody {
		return p.printBody(resp)
	}
	return nil
}

func (p *PrettyPrinter) statusColor(class response.Class) aurora.Color {
	switch class {
	case response.Success:
		return p.statusPalette.Success
	case response.Failure:
		return p.statusPalette.Failure
	default:
		return p.statusPalette.Neutral
	}
}

func (p *PrettyPrinter) printHead(resp *response.Response) {
	p.printTitle("RESPONSE")
	if resp.StatusCode != 0 {
		p.printField("Status", fmt.Sprint(resp.StatusCode), p.statusColor(resp.Class()))
		p.printField("Time", fmt.Sprintf("%.3fs", resp.DurationSeconds()), p.headerPalette.FieldValue)
	}
	p.printField("Size", bytefmt.ByteSize(uint64(len(resp.BodyText))), p.headerPalette.FieldValue)

	if len(resp.HeaderLines) > 0 {
		fmt.Fprintln(p.writer)
		fmt.Fprintln(p.writer, p.aurora.Colorize("Headers:", p.headerPalette.Title))
		shown := resp.HeaderLines
		if limit := p.options.HeaderLimit; limit > 0 && len(shown) > limit {
			shown = shown[:limit]
		}
		for _, line := range shown {
			p.printHeaderLine(line)
		}
		if rest := len(resp.HeaderLines) - len(shown); rest > 0 {
			fmt.Fprintf(p.writer, "  %s\n", p.aurora.Colorize(fmt.Sprintf("... (%d more)", rest), p.headerPalette.Rule))
		}
	}

	fmt.Fprintln(p.writer)
	fmt.Fprintln(p.writer, p.aurora.Colorize(fmt.Sprintf("✓ Completed in %.3fs", resp.DurationSeconds()), p.statusPalette.Success))
	fmt.Fprintln(p.writer)
}

func (p *PrettyPrinter) printHeaderLine(line string) {
	if strings.HasPrefix(line, "HTTP/") {
		fields := strings.SplitN(line, " ", 2)
		if len(fields) == 2 {
			fmt.Fprintf(p.writer, "  %s %s\n",
				p.aurora.Colorize(fields[0], p.headerPalette.Proto),
				p.aurora.Colorize(fields[1], p.headerPalette.Status))
			return
		}
	}
	i := strings.Index(line, ":")
	if i <= 0 {
		fmt.Fprintf(p.writer, "  %s\n", line)
		return
	}
	fmt.Fprintf(p.writer, "  %s%s %s\n",
		p.aurora.Colorize(line[:i], p.headerPalette.FieldName),
		p.aurora.Colorize(":", p.headerPalette.FieldSeparator),
		p.aurora.Colorize(strings.TrimSpace(line[i+1:]), p.headerPalette.FieldValue))
}

func (p *PrettyPrinter) printBody(resp *response.Response) error {
	switch resp.BodyKind {
	case response.NoBody:
		fmt.Fprintln(p.writer, p.aurora.Colorize("(No body in response)", p.headerPalette.Rule))
	case response.JSONBody:
		fmt.Fprintln(p.writer, p.colorizeJSON(resp.Display))
	default:
		text := resp.Display
		if p.enableColor {
			highlighted, ok, err := highlight(resp.Header("Content-Type"), text)
			if err != nil {
				return err
			}
			if ok {
				text = highlighted
			}
		}
		fmt.Fprintln(p.writer, text)
	}
	return nil
}

func (p *PrettyPrinter) colorizeJSON(display string) string {
	if !p.enableColor {
		return display
	}
	colored, err := jsonfmt.Format([]byte(display), &jsonfmt.Options{
		Colorize: func(kind jsonfmt.Kind, text string) string {
			return p.aurora.Colorize(text, p.jsonColor(kind)).String()
		},
	})
	if err != nil {
		return display
	}
	return colored
}

func (p *PrettyPrinter) jsonColor(kind jsonfmt.Kind) aurora.Color {
	switch kind {
	case jsonfmt.Name:
		return p.jsonPalette.Name
	case jsonfmt.String:
		return p.jsonPalette.String
	case jsonfmt.Number:
		return p.jsonPalette.Number
	case jsonfmt.Boolean:
		return p.jsonPalette.Boolean
	case jsonfmt.Null:
		return p.jsonPalette.Null
	default:
		return p.jsonPalette.Symbol
	}
}

func (p *PrettyPrinter) PrintError(outcome *session.Outcome) error {
	var message string
	switch outcome.Kind() {
	case session.TimedOut:
		message = "✗ Request timeout"
		var timeoutErr *exchange.TimeoutError
		if errors.As(outcome.Err, &timeoutErr) {
			message = fmt.Sprintf("✗ Request timeout (%s)", timeoutErr.Timeout)
		}
	default:
		message = fmt.Sprintf("✗ %s: %s", outcome.Label(), errorMessage(outcome))
	}
	fmt.Fprintln(p.writer, p.aurora.Colorize(message, p.statusPalette.Failure))
	return nil
}
