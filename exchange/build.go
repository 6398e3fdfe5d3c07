package exchange

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/nojima/hsend/command"
	"github.com/nojima/hsend/input"
	"github.com/nojima/hsend/version"
	"github.com/pkg/errors"
)

// BuildHTTPRequest is the net/http counterpart of command.Build: the request
// it returns carries the same method, headers, credentials, body and URL as
// the curl command line built from the same spec.
func BuildHTTPRequest(ctx context.Context, spec *input.Spec) (*http.Request, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	u, err := url.Parse(command.BuildURL(spec))
	if err != nil {
		return nil, input.NewValidationError("url", "invalid URL: %v", err)
	}

	var body io.Reader
	if text, ok := command.Body(spec); ok {
		body = strings.NewReader(text)
	}

	r, err := http.NewRequestWithContext(ctx, string(spec.Method), u.String(), body)
	if err != nil {
		return nil, errors.Wrap(err, "building HTTP request")
	}
	r.Header = buildHTTPHeader(spec)
	if host := r.Header.Get("Host"); host != "" {
		r.Host = host
	}
	return r, nil
}

func buildHTTPHeader(spec *input.Spec) http.Header {
	header := make(http.Header)
	if spec.ContentType != "" {
		header.Set("Content-Type", spec.ContentType)
	}
	for _, line := range input.HeaderLines(spec.Headers) {
		i := strings.Index(line, ":")
		name := strings.TrimSpace(line[:i])
		if name == "" {
			continue
		}
		header.Add(name, strings.TrimSpace(line[i+1:]))
	}

	field1 := strings.TrimSpace(spec.Auth.Field1)
	if field1 != "" {
		switch spec.Auth.Mode {
		case input.AuthBearer:
			header.Add(command.AuthorizationHeader, "Bearer "+field1)
		case input.AuthBasic:
			credentials := field1 + ":" + strings.TrimSpace(spec.Auth.Field2)
			header.Set(command.AuthorizationHeader, "Basic "+base64.StdEncoding.EncodeToString([]byte(credentials)))
		case input.AuthAPIKey:
			header.Add(command.APIKeyHeader, field1)
		}
	}

	if header.Get("User-Agent") == "" {
		header.Set("User-Agent", version.UserAgent())
	}
	return header
}
