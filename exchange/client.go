package exchange

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/nojima/hsend/input"
	"github.com/nojima/hsend/response"
	"github.com/pkg/errors"
)

func BuildHTTPClient(options *Options) (*http.Client, error) {
	client := http.Client{
		// Do not follow redirects, like curl without -L
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
		Timeout: options.timeout(),
	}

	var transp http.RoundTripper
	if options.Transport == nil {
		transp = http.DefaultTransport.(*http.Transport).Clone()
	} else {
		transp = options.Transport
	}
	if httpTransport, ok := transp.(*http.Transport); ok {
		if httpTransport.TLSClientConfig == nil {
			httpTransport.TLSClientConfig = &tls.Config{}
		}
		httpTransport.TLSClientConfig.InsecureSkipVerify = options.SkipVerify
		if options.ForceHTTP1 {
			httpTransport.TLSClientConfig.NextProtos = []string{"http/1.1", "http/1.0"}
			httpTransport.TLSNextProto = make(map[string]func(string, *tls.Conn) http.RoundTripper)
		}
	}
	client.Transport = transp

	return &client, nil
}

// NativeSender sends requests with net/http. The response comes back with
// its headers already separated from the body, so it is converted field by
// field instead of being parsed from text.
type NativeSender struct {
	Client  *http.Client
	Timeout time.Duration
}

func (s *NativeSender) Send(ctx context.Context, spec *input.Spec) (*response.Response, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	timeout = effectiveTimeout(ctx, timeout)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	r, err := BuildHTTPRequest(ctx, spec)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := s.Client.Do(r)
	if err != nil {
		return nil, transportError(ctx, err, timeout)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(ctx, err, timeout)
	}
	return response.FromHTTP(resp, body, time.Since(start)), nil
}

func transportError(ctx context.Context, err error, timeout time.Duration) error {
	if ctx.Err() == context.DeadlineExceeded {
		return errors.WithStack(&TimeoutError{Timeout: timeout})
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errors.WithStack(&TimeoutError{Timeout: timeout})
	}
	return errors.WithStack(&ExecutionError{Err: errors.Wrap(err, "sending HTTP request")})
}
