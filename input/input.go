package input

import (
	"strings"
)

// Spec is one outgoing request as assembled from flags, arguments and a
// request file. It is built once per send and must not be modified after it
// has been handed to a sender.
type Spec struct {
	Method      Method
	URL         string
	ContentType string
	Headers     []string // raw "Name: Value" lines
	Auth        Auth
	Body        string
	Params      []string // raw "key=value" lines
}

type Method string

const (
	MethodGet     = Method("GET")
	MethodPost    = Method("POST")
	MethodPut     = Method("PUT")
	MethodDelete  = Method("DELETE")
	MethodPatch   = Method("PATCH")
	MethodHead    = Method("HEAD")
	MethodOptions = Method("OPTIONS")
)

var Methods = []Method{
	MethodGet,
	MethodPost,
	MethodPut,
	MethodDelete,
	MethodPatch,
	MethodHead,
	MethodOptions,
}

// AllowsBody reports whether a body is sent with this method.
func (m Method) AllowsBody() bool {
	switch m {
	case MethodPost, MethodPut, MethodPatch:
		return true
	default:
		return false
	}
}

func (m Method) valid() bool {
	for _, known := range Methods {
		if m == known {
			return true
		}
	}
	return false
}

type AuthMode int

const (
	AuthNone AuthMode = iota
	AuthBearer
	AuthBasic
	AuthAPIKey
)

func (m AuthMode) String() string {
	switch m {
	case AuthNone:
		return "None"
	case AuthBearer:
		return "Bearer Token"
	case AuthBasic:
		return "Basic Auth"
	case AuthAPIKey:
		return "API Key"
	default:
		return "Unknown"
	}
}

// Auth holds the authentication settings. The meaning of Field1 and Field2
// depends on Mode: token for AuthBearer, username and password for AuthBasic,
// key for AuthAPIKey.
type Auth struct {
	Mode   AuthMode
	Field1 string
	Field2 string
}

// SplitLines splits a multi-line text field into lines.
func SplitLines(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// HeaderLines returns the trimmed lines that look like "Name: Value".
// Everything else is dropped.
func HeaderLines(lines []string) []string {
	return filterLines(lines, ":")
}

// ParamLines returns the trimmed lines that look like "key=value".
// Everything else is dropped.
func ParamLines(lines []string) []string {
	return filterLines(lines, "=")
}

func filterLines(lines []string, delimiter string) []string {
	var valid []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" && strings.Contains(line, delimiter) {
			valid = append(valid, line)
		}
	}
	return valid
}
