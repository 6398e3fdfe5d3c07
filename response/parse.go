package response

import (
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nojima/hsend/jsonfmt"
)

// Checked in this order; the first one present in the output wins.
var separators = []string{"\r\n\r\n", "\n\n", "\r\r"}

var reStatus = regexp.MustCompile(`HTTP/[\d.]+ (\d{3,})`)

// Parse interprets the output of an HTTP client that prints response headers
// before the body. It accepts any input: a missing status line gives status 0
// and a body that is not JSON is kept as text.
func Parse(raw string) *Response {
	head, body := splitSections(raw)
	r := &Response{
		StatusCode:  parseStatusCode(head),
		HeaderLines: splitHeaderLines(head),
		BodyText:    body,
	}
	r.BodyKind, r.Display = classifyBody(body)
	return r
}

func splitSections(raw string) (string, string) {
	for _, separator := range separators {
		if i := strings.Index(raw, separator); i >= 0 {
			return raw[:i], raw[i+len(separator):]
		}
	}
	return raw, ""
}

func parseStatusCode(head string) int {
	m := reStatus.FindStringSubmatch(head)
	if m == nil {
		return 0
	}
	code, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return code
}

func splitHeaderLines(head string) []string {
	var lines []string
	for _, line := range strings.FieldsFunc(head, isLineBreak) {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func isLineBreak(r rune) bool {
	return r == '\n' || r == '\r'
}

func classifyBody(body string) (BodyKind, string) {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return NoBody, ""
	}
	if jsonfmt.Valid([]byte(trimmed)) {
		if formatted, err := FormatJSON(trimmed); err == nil {
			return JSONBody, formatted
		}
	}
	return TextBody, trimmed
}

// FormatJSON re-indents a JSON document with two spaces, keeping key order
// and non-ASCII characters.
func FormatJSON(text string) (string, error) {
	return jsonfmt.Format([]byte(text), nil)
}

// FromHTTP builds a Response from a structured HTTP response. The header
// lines start with the status line, followed by the fields sorted by name.
func FromHTTP(resp *http.Response, body []byte, elapsed time.Duration) *Response {
	lines := []string{resp.Proto + " " + resp.Status}
	names := make([]string, 0, len(resp.Header))
	for name := range resp.Header {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, value := range resp.Header[name] {
			lines = append(lines, name+": "+value)
		}
	}

	r := &Response{
		StatusCode:  resp.StatusCode,
		HeaderLines: lines,
		BodyText:    string(body),
		Duration:    elapsed,
	}
	r.BodyKind, r.Display = classifyBody(r.BodyText)
	return r
}
