// Package session runs sends one at a time.
//
// A Session plays the part of the send button: it is disarmed while a send
// is in flight and re-armed when the send finishes, whatever the outcome.
package session

import (
	"context"
	"sync/atomic"

	"github.com/nojima/hsend/exchange"
	"github.com/nojima/hsend/input"
	"github.com/nojima/hsend/response"
	"github.com/pkg/errors"
)

// ErrBusy is returned when a send is attempted while another one is running.
var ErrBusy = errors.New("a request is already in flight")

type Session struct {
	sender   exchange.Sender
	inFlight atomic.Bool
}

func New(sender exchange.Sender) *Session {
	return &Session{sender: sender}
}

// Ready reports whether a send may start now.
func (s *Session) Ready() bool {
	return !s.inFlight.Load()
}

// Send performs one request and blocks until it is done.
func (s *Session) Send(ctx context.Context, spec *input.Spec) (*response.Response, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.inFlight.Store(false)
	return s.sender.Send(ctx, spec)
}

// Start performs one request in the background. The returned channel
// receives exactly one Outcome, after the session has been re-armed.
func (s *Session) Start(ctx context.Context, spec *input.Spec) (<-chan Outcome, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}

	outcome := make(chan Outcome, 1)
	go func() {
		resp, err := s.sender.Send(ctx, spec)
		s.inFlight.Store(false)
		outcome <- Outcome{Spec: spec, Response: resp, Err: err}
	}()
	return outcome, nil
}
