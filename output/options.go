package output

// DefaultHeaderLimit is how many response header lines are shown before the
// rest is summarized.
const DefaultHeaderLimit = 8

type Options struct {
	PrintRequestLine    bool
	PrintResponseHeader bool
	PrintResponseBody   bool

	EnableFormat bool
	EnableColor  bool

	HeaderLimit int // 0 shows every line

	OutputFile string
	Overwrite  bool
}
