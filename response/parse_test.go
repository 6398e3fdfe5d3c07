package response

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		title               string
		raw                 string
		expectedStatusCode  int
		expectedHeaderLines []string
		expectedBodyText    string
		expectedBodyKind    BodyKind
		expectedDisplay     string
	}{
		{
			title:              "CRLF with JSON body",
			raw:                "HTTP/1.1 404 Not Found\r\nContent-Type: application/json\r\n\r\n{\"error\":\"x\"}",
			expectedStatusCode: 404,
			expectedHeaderLines: []string{
				"HTTP/1.1 404 Not Found",
				"Content-Type: application/json",
			},
			expectedBodyText: `{"error":"x"}`,
			expectedBodyKind: JSONBody,
			expectedDisplay:  "{\n  \"error\": \"x\"\n}",
		},
		{
			title:               "LF with text body",
			raw:                 "HTTP/2 200\nserver: test\n\nhello world\n",
			expectedStatusCode:  200,
			expectedHeaderLines: []string{"HTTP/2 200", "server: test"},
			expectedBodyText:    "hello world\n",
			expectedBodyKind:    TextBody,
			expectedDisplay:     "hello world",
		},
		{
			title:               "CR only",
			raw:                 "HTTP/1.0 301 Moved\rLocation: /x\r\r<html></html>",
			expectedStatusCode:  301,
			expectedHeaderLines: []string{"HTTP/1.0 301 Moved", "Location: /x"},
			expectedBodyText:    "<html></html>",
			expectedBodyKind:    TextBody,
			expectedDisplay:     "<html></html>",
		},
		{
			title:               "CRLF wins over an earlier LF-LF",
			raw:                 "HTTP/1.1 200 OK\n\nfirst\r\n\r\nsecond",
			expectedStatusCode:  200,
			expectedHeaderLines: []string{"HTTP/1.1 200 OK", "first"},
			expectedBodyText:    "second",
			expectedBodyKind:    TextBody,
			expectedDisplay:     "second",
		},
		{
			title:               "No separator",
			raw:                 "curl: (6) Could not resolve host: nowhere.invalid\n",
			expectedStatusCode:  0,
			expectedHeaderLines: []string{"curl: (6) Could not resolve host: nowhere.invalid"},
			expectedBodyText:    "",
			expectedBodyKind:    NoBody,
		},
		{
			title:               "Separator is the last content",
			raw:                 "HTTP/1.1 204 No Content\r\nDate: today\r\n\r\n",
			expectedStatusCode:  204,
			expectedHeaderLines: []string{"HTTP/1.1 204 No Content", "Date: today"},
			expectedBodyText:    "",
			expectedBodyKind:    NoBody,
		},
		{
			title:               "Whitespace-only body",
			raw:                 "HTTP/1.1 200 OK\r\n\r\n  \n\t",
			expectedStatusCode:  200,
			expectedHeaderLines: []string{"HTTP/1.1 200 OK"},
			expectedBodyText:    "  \n\t",
			expectedBodyKind:    NoBody,
		},
		{
			title:               "Status code with less than three digits",
			raw:                 "HTTP/1.1 20 OK\r\n\r\n[]",
			expectedStatusCode:  0,
			expectedHeaderLines: []string{"HTTP/1.1 20 OK"},
			expectedBodyText:    "[]",
			expectedBodyKind:    JSONBody,
			expectedDisplay:     "[]",
		},
		{
			title:              "Interim response comes first",
			raw:                "HTTP/1.1 100 Continue\r\n\r\nHTTP/1.1 201 Created\r\n\r\n{}",
			expectedStatusCode: 100,
			expectedHeaderLines: []string{
				"HTTP/1.1 100 Continue",
			},
			expectedBodyText: "HTTP/1.1 201 Created\r\n\r\n{}",
			expectedBodyKind: TextBody,
			expectedDisplay:  "HTTP/1.1 201 Created\r\n\r\n{}",
		},
		{
			title:               "Two JSON values are text",
			raw:                 "HTTP/1.1 200 OK\r\n\r\n{\"a\":1}\n{\"a\":2}",
			expectedStatusCode:  200,
			expectedHeaderLines: []string{"HTTP/1.1 200 OK"},
			expectedBodyText:    "{\"a\":1}\n{\"a\":2}",
			expectedBodyKind:    TextBody,
			expectedDisplay:     "{\"a\":1}\n{\"a\":2}",
		},
		{
			title:            "Empty input",
			raw:              "",
			expectedBodyKind: NoBody,
		},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			// Exercise
			r := Parse(tt.raw)

			// Verify
			if r.StatusCode != tt.expectedStatusCode {
				t.Errorf("unexpected status code: expected=%v, actual=%v", tt.expectedStatusCode, r.StatusCode)
			}
			if diff := cmp.Diff(tt.expectedHeaderLines, r.HeaderLines); diff != "" {
				t.Errorf("unexpected header lines (-expected +actual):\n%s", diff)
			}
			if r.BodyText != tt.expectedBodyText {
				t.Errorf("unexpected body text: expected=%q, actual=%q", tt.expectedBodyText, r.BodyText)
			}
			if r.BodyKind != tt.expectedBodyKind {
				t.Errorf("unexpected body kind: expected=%v, actual=%v", tt.expectedBodyKind, r.BodyKind)
			}
			if r.Display != tt.expectedDisplay {
				t.Errorf("unexpected display: expected=%q, actual=%q", tt.expectedDisplay, r.Display)
			}
			if r.IsJSON() != (tt.expectedBodyKind == JSONBody) {
				t.Errorf("unexpected IsJSON: %v", r.IsJSON())
			}
		})
	}
}

func TestParse_HeaderLinesAreNotTruncated(t *testing.T) {
	var lines []string
	lines = append(lines, "HTTP/1.1 200 OK")
	for i := 0; i < 20; i++ {
		lines = append(lines, "X-Header: value")
	}
	r := Parse(strings.Join(lines, "\r\n") + "\r\n\r\nbody")
	if len(r.HeaderLines) != 21 {
		t.Errorf("unexpected number of header lines: expected=%d, actual=%d", 21, len(r.HeaderLines))
	}
}

func TestParse_JSONRoundTrip(t *testing.T) {
	body := `{"zzz": "hello \u26a1", "aaa": [3.14, true, false, "üç∫", 1e100], "123": {}, "": [], "html": "<a&b>", "üç£": null}`
	r := Parse("HTTP/1.1 200 OK\r\n\r\n" + body)
	if !r.IsJSON() {
		t.Fatalf("body should be detected as JSON")
	}

	var original, formatted interface{}
	if err := json.Unmarshal([]byte(body), &original); err != nil {
		t.Fatalf("failed to unmarshal original: %v", err)
	}
	if err := json.Unmarshal([]byte(r.Display), &formatted); err != nil {
		t.Fatalf("failed to unmarshal formatted: %v", err)
	}
	if !reflect.DeepEqual(original, formatted) {
		t.Errorf("formatted JSON differs: original=%v, formatted=%v", original, formatted)
	}
	if !strings.Contains(r.Display, `"hello ⚡"`) || !strings.Contains(r.Display, `"<a&b>"`) {
		t.Errorf("characters should not be escaped: %s", r.Display)
	}
}

func TestClassOf(t *testing.T) {
	testCases := []struct {
		statusCode int
		expected   Class
	}{
		{statusCode: 0, expected: Neutral},
		{statusCode: 100, expected: Neutral},
		{statusCode: 200, expected: Success},
		{statusCode: 299, expected: Success},
		{statusCode: 304, expected: Neutral},
		{statusCode: 404, expected: Failure},
		{statusCode: 503, expected: Failure},
	}
	for _, tt := range testCases {
		if actual := ClassOf(tt.statusCode); actual != tt.expected {
			t.Errorf("unexpected class: status=%d, expected=%v, actual=%v", tt.statusCode, tt.expected, actual)
		}
	}
}

func TestResponse_Header(t *testing.T) {
	r := Parse("HTTP/1.1 200 OK\r\ncontent-type: text/html\r\nX-Empty:\r\n\r\n")
	if actual := r.Header("Content-Type"); actual != "text/html" {
		t.Errorf("unexpected header value: expected=%s, actual=%s", "text/html", actual)
	}
	if actual := r.Header("X-Missing"); actual != "" {
		t.Errorf("unexpected header value: expected=empty, actual=%s", actual)
	}
}

func TestFromHTTP(t *testing.T) {
	// Setup
	resp := &http.Response{
		Proto:      "HTTP/1.1",
		Status:     "201 Created",
		StatusCode: 201,
		Header: http.Header{
			"X-Foo":        []string{"a", "b"},
			"Content-Type": []string{"application/json"},
		},
	}

	// Exercise
	r := FromHTTP(resp, []byte(`{"id":1}`), 1500*time.Millisecond)

	// Verify
	expectedLines := []string{
		"HTTP/1.1 201 Created",
		"Content-Type: application/json",
		"X-Foo: a",
		"X-Foo: b",
	}
	if diff := cmp.Diff(expectedLines, r.HeaderLines); diff != "" {
		t.Errorf("unexpected header lines (-expected +actual):\n%s", diff)
	}
	if r.StatusCode != 201 {
		t.Errorf("unexpected status code: expected=%v, actual=%v", 201, r.StatusCode)
	}
	if !r.IsJSON() || r.Display != "{\n  \"id\": 1\n}" {
		t.Errorf("unexpected body: kind=%v, display=%q", r.BodyKind, r.Display)
	}
	if r.DurationSeconds() != 1.5 {
		t.Errorf("unexpected duration: expected=%v, actual=%v", 1.5, r.DurationSeconds())
	}
}

func TestResponse_Filter(t *testing.T) {
	r := Parse("HTTP/1.1 200 OK\r\n\r\n" + `{"items": [{"name": "a", "on": true}, {"name": "b", "on": false}]}`)

	filtered, err := r.Filter("items[?on].name")
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}
	expected := "[\n  \"a\"\n]"
	if filtered.Display != expected {
		t.Errorf("unexpected display: expected=%q, actual=%q", expected, filtered.Display)
	}
	if filtered.BodyText != `["a"]` {
		t.Errorf("unexpected body text: expected=%q, actual=%q", `["a"]`, filtered.BodyText)
	}
	if r.Display == filtered.Display {
		t.Errorf("original response should not be modified")
	}

	if _, err := r.Filter("items[?"); err == nil {
		t.Errorf("invalid expression should be an error")
	}
	if _, err := Parse("HTTP/1.1 200 OK\r\n\r\nplain").Filter("a"); err == nil {
		t.Errorf("filtering a text body should be an error")
	}
}
