package session

import (
	"github.com/nojima/hsend/exchange"
	"github.com/nojima/hsend/input"
	"github.com/nojima/hsend/response"
	"github.com/pkg/errors"
)

type Kind int

const (
	Succeeded Kind = iota
	ValidationFailed
	TimedOut
	Failed
)

// Outcome is the result of one background send.
type Outcome struct {
	Spec     *input.Spec
	Response *response.Response
	Err      error
}

func (o *Outcome) Kind() Kind {
	if o.Err == nil {
		return Succeeded
	}
	switch errors.Cause(o.Err).(type) {
	case *input.ValidationError:
		return ValidationFailed
	case *exchange.TimeoutError:
		return TimedOut
	default:
		return Failed
	}
}

// Label is a short name of the outcome for status displays.
func (o *Outcome) Label() string {
	switch o.Kind() {
	case Succeeded:
		return "Complete"
	case ValidationFailed:
		return "Validation"
	case TimedOut:
		return "Timeout"
	default:
		return "Error"
	}
}
