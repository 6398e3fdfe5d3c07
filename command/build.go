package command

import (
	"strings"

	"github.com/nojima/hsend/input"
)

// DefaultProgram is the HTTP client binary invoked when Options.Program is
// empty.
const DefaultProgram = "curl"

type Options struct {
	Program string
}

// Build returns the argv (program first) that performs the request described
// by spec. The client is asked to include response headers in its output.
//
// Arguments always come in this order: method, Content-Type, custom headers,
// auth, body, URL.
func Build(spec *input.Spec, options *Options) ([]string, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	program := DefaultProgram
	if options != nil && options.Program != "" {
		program = options.Program
	}

	argv := []string{program, "-i", "-X", string(spec.Method)}
	argv = append(argv, "-H", "Content-Type: "+spec.ContentType)
	for _, line := range input.HeaderLines(spec.Headers) {
		argv = append(argv, "-H", line)
	}
	argv = append(argv, buildAuthArgs(spec.Auth)...)
	if body, ok := Body(spec); ok {
		argv = append(argv, "-d", body)
	}
	argv = append(argv, BuildURL(spec))
	return argv, nil
}

func buildAuthArgs(auth input.Auth) []string {
	field1 := strings.TrimSpace(auth.Field1)
	if field1 == "" {
		return nil
	}
	switch auth.Mode {
	case input.AuthBearer:
		return []string{"-H", AuthorizationHeader + ": Bearer " + field1}
	case input.AuthBasic:
		return []string{"-u", field1 + ":" + strings.TrimSpace(auth.Field2)}
	case input.AuthAPIKey:
		return []string{"-H", APIKeyHeader + ": " + field1}
	default:
		return nil
	}
}

const (
	AuthorizationHeader = "Authorization"
	APIKeyHeader        = "X-API-Key"
)

// Body returns the trimmed body and whether it is sent at all. Bodies are
// only sent with POST, PUT and PATCH.
func Body(spec *input.Spec) (string, bool) {
	if !spec.Method.AllowsBody() {
		return "", false
	}
	body := strings.TrimSpace(spec.Body)
	if body == "" {
		return "", false
	}
	return body, true
}

// BuildURL appends the valid query parameter lines to the URL, in order.
// Lines are appended as typed; they are not re-encoded.
func BuildURL(spec *input.Spec) string {
	u := strings.TrimSpace(spec.URL)
	params := input.ParamLines(spec.Params)
	if len(params) == 0 {
		return u
	}
	separator := "?"
	if strings.Contains(u, "?") {
		separator = "&"
	}
	return u + separator + strings.Join(params, "&")
}
