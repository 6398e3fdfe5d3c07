package input

import (
	"regexp"
	"strings"

	"github.com/nojima/hsend/jsonfmt"
	"github.com/pkg/errors"
)

var (
	reMethod    = regexp.MustCompile(`^[a-zA-Z]+$`)
	emptyMethod = Method("")
)

// DefaultContentType is used when neither flags nor a request file set one.
const DefaultContentType = "application/json"

type Options struct {
	File       string // YAML request file, loaded before the flags are applied
	FormatBody bool
}

// ParseArgs merges the positional arguments ([METHOD] URL), the values given
// by flags and the request file into a single Spec.
//
// Positional arguments win over flags, and flags win over the request file.
// Header and parameter lines accumulate: lines from the file come first.
func ParseArgs(args []string, flagSpec *Spec, options *Options) (*Spec, error) {
	var argMethod string
	var argURL string
	switch len(args) {
	case 0:
	case 1:
		argURL = args[0]
	case 2:
		if !reMethod.MatchString(args[0]) {
			return nil, NewUsageError("METHOD must consist of alphabets: " + args[0])
		}
		argMethod = args[0]
		argURL = args[1]
	default:
		return nil, NewUsageError("too many arguments")
	}

	spec := &Spec{}
	if options.File != "" {
		loaded, err := LoadFile(options.File)
		if err != nil {
			return nil, err
		}
		spec = loaded
	}
	if flagSpec != nil {
		overlay(spec, flagSpec)
	}

	if argURL != "" {
		spec.URL = argURL
	}
	if argMethod != "" {
		spec.Method = Method(argMethod)
	}

	if spec.Method == emptyMethod {
		spec.Method = guessMethod(spec)
	} else {
		method, err := ParseMethod(string(spec.Method))
		if err != nil {
			return nil, err
		}
		spec.Method = method
	}
	if spec.ContentType == "" {
		spec.ContentType = DefaultContentType
	}

	if options.FormatBody && strings.TrimSpace(spec.Body) != "" {
		body, err := FormatBody(spec.Body)
		if err != nil {
			return nil, err
		}
		spec.Body = body
	}

	return spec, nil
}

func overlay(dst, src *Spec) {
	if src.Method != emptyMethod {
		dst.Method = src.Method
	}
	if src.URL != "" {
		dst.URL = src.URL
	}
	if src.ContentType != "" {
		dst.ContentType = src.ContentType
	}
	dst.Headers = append(dst.Headers, src.Headers...)
	dst.Params = append(dst.Params, src.Params...)
	switch {
	case src.Auth.Mode == AuthNone:
	case src.Auth.Field1 == "" && src.Auth.Field2 == "":
		// a mode without credentials keeps the credentials loaded so far
		dst.Auth.Mode = src.Auth.Mode
	default:
		dst.Auth = src.Auth
	}
	if src.Body != "" {
		dst.Body = src.Body
	}
}

func guessMethod(spec *Spec) Method {
	if strings.TrimSpace(spec.Body) == "" {
		return MethodGet
	}
	return MethodPost
}

// ParseMethod accepts any letter case.
func ParseMethod(s string) (Method, error) {
	method := Method(strings.ToUpper(strings.TrimSpace(s)))
	if !method.valid() {
		return emptyMethod, NewValidationError("method", "unsupported method: %s", s)
	}
	return method, nil
}

// ParseAuthMode accepts the short names (none, bearer, basic, apikey) as well
// as the display names returned by AuthMode.String.
func ParseAuthMode(s string) (AuthMode, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(normalized)
	switch normalized {
	case "", "none":
		return AuthNone, nil
	case "bearer", "bearertoken", "token":
		return AuthBearer, nil
	case "basic", "basicauth":
		return AuthBasic, nil
	case "apikey", "key":
		return AuthAPIKey, nil
	default:
		return AuthNone, NewValidationError("auth", "unknown auth type: %s", s)
	}
}

// ParseUserPassword splits "user[:password]". The password is empty when no
// colon is present.
func ParseUserPassword(s string) (user, password string, hasPassword bool) {
	i := strings.Index(s, ":")
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+1:], true
}

// FormatBody re-indents a JSON request body.
func FormatBody(body string) (string, error) {
	formatted, err := jsonfmt.Format([]byte(strings.TrimSpace(body)), nil)
	if err != nil {
		return "", errors.Wrap(err, "JSON error")
	}
	return formatted, nil
}
