package exchange

import (
	"context"

	"github.com/nojima/hsend/command"
	"github.com/nojima/hsend/input"
	"github.com/nojima/hsend/response"
)

// Sender performs the request described by a spec.
type Sender interface {
	Send(ctx context.Context, spec *input.Spec) (*response.Response, error)
}

// CurlSender builds a curl command line, runs it and parses what it prints.
type CurlSender struct {
	Runner  Runner
	Command command.Options

	// Trace, if set, is called with the command line before it runs.
	Trace func(argv []string)
}

func (s *CurlSender) Send(ctx context.Context, spec *input.Spec) (*response.Response, error) {
	argv, err := command.Build(spec, &s.Command)
	if err != nil {
		return nil, err
	}
	if s.Trace != nil {
		s.Trace(argv)
	}

	out, err := s.Runner.Run(ctx, argv)
	if err != nil {
		return nil, err
	}

	resp := response.Parse(out.Text)
	resp.Duration = out.Elapsed
	return resp, nil
}

// NewSender returns a NativeSender when options.Native is set and a
// CurlSender otherwise.
func NewSender(options *Options, commandOptions *command.Options) (Sender, error) {
	if options.Native {
		client, err := BuildHTTPClient(options)
		if err != nil {
			return nil, err
		}
		return &NativeSender{Client: client, Timeout: options.timeout()}, nil
	}

	sender := &CurlSender{
		Runner: &ProcessRunner{Timeout: options.timeout()},
	}
	if commandOptions != nil {
		sender.Command = *commandOptions
	}
	return sender, nil
}
