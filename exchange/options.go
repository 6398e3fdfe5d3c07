package exchange

import (
	"context"
	"net/http"
	"time"
)

// DefaultTimeout bounds one send when Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

type Options struct {
	Timeout time.Duration
	Native  bool // send with net/http instead of running curl

	// Used only by the native sender.
	SkipVerify bool
	ForceHTTP1 bool
	Transport  http.RoundTripper
}

func (o *Options) timeout() time.Duration {
	if o == nil || o.Timeout <= 0 {
		return DefaultTimeout
	}
	return o.Timeout
}

// effectiveTimeout returns the bound that fires first: timeout, or the time
// left until an earlier deadline of ctx.
func effectiveTimeout(ctx context.Context, timeout time.Duration) time.Duration {
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline).Round(time.Millisecond); remaining < timeout {
			return remaining
		}
	}
	return timeout
}
