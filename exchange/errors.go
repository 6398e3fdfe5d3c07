package exchange

import (
	"fmt"
	"time"
)

// TimeoutError is returned when a send did not finish within its bound.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timeout (%s)", e.Timeout)
}

// ExecutionError is any other failure of the HTTP client: the binary could
// not be started, the connection failed, and so on. A non-zero exit status of
// curl is not an ExecutionError.
type ExecutionError struct {
	Err error
}

func (e *ExecutionError) Error() string {
	return e.Err.Error()
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
