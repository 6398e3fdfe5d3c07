package response

// Class groups status codes for presentation.
type Class int

const (
	Neutral Class = iota // 1xx, 3xx and status 0
	Success              // 2xx
	Failure              // 4xx and 5xx
)

func ClassOf(statusCode int) Class {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return Success
	case statusCode >= 400 && statusCode < 600:
		return Failure
	default:
		return Neutral
	}
}

func (c Class) String() string {
	switch c {
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "neutral"
	}
}
