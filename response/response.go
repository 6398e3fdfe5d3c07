package response

import (
	"strings"
	"time"
)

type BodyKind int

const (
	NoBody BodyKind = iota
	JSONBody
	TextBody
)

func (k BodyKind) String() string {
	switch k {
	case NoBody:
		return "none"
	case JSONBody:
		return "json"
	case TextBody:
		return "text"
	default:
		return "unknown"
	}
}

// Response is the structured result of one send.
type Response struct {
	StatusCode  int      // 0 when no status line was found
	HeaderLines []string // non-blank lines of the header section, in order
	BodyText    string   // raw text after the header/body separator

	BodyKind BodyKind
	Display  string // formatted JSON or trimmed text; empty for NoBody

	Duration time.Duration
}

func (r *Response) IsJSON() bool {
	return r.BodyKind == JSONBody
}

func (r *Response) HasBody() bool {
	return r.BodyKind != NoBody
}

func (r *Response) DurationSeconds() float64 {
	return r.Duration.Seconds()
}

func (r *Response) Class() Class {
	return ClassOf(r.StatusCode)
}

// Header returns the value of the last header line with the given name, or
// "" if there is none. Names are compared case-insensitively.
func (r *Response) Header(name string) string {
	value := ""
	for _, line := range r.HeaderLines {
		i := strings.Index(line, ":")
		if i <= 0 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(line[:i]), name) {
			value = strings.TrimSpace(line[i+1:])
		}
	}
	return value
}
