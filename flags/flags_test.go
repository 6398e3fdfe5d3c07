package flags

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/nojima/hsend/exchange"
	"github.com/nojima/hsend/input"
	"github.com/nojima/hsend/output"
	"github.com/pkg/errors"
)

func TestParse(t *testing.T) {
	args, _, optionSet, err := parse([]string{"hsend"}, terminalInfo{
		stdoutIsTerminal: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}

	if len(args) != 0 {
		t.Errorf("unexpected returned args: expected=[], actual=%v", args)
	}
	expectedOptionSet := &OptionSet{
		ExchangeOptions: exchange.Options{
			Timeout: 30 * time.Second,
		},
		OutputOptions: output.Options{
			PrintRequestLine:    true,
			PrintResponseHeader: true,
			PrintResponseBody:   true,
			EnableFormat:        true,
			EnableColor:         true,
			HeaderLimit:         output.DefaultHeaderLimit,
		},
	}
	if !reflect.DeepEqual(expectedOptionSet, optionSet) {
		t.Errorf("unexpected option set: expected=\n%+v\nactual=\n%+v", expectedOptionSet, optionSet)
	}
}

func TestParse_NotTerminal(t *testing.T) {
	_, _, optionSet, err := parse([]string{"hsend"}, terminalInfo{
		stdoutIsTerminal: false,
	})
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}

	expectedOutputOptions := output.Options{
		PrintResponseBody: true,
		HeaderLimit:       output.DefaultHeaderLimit,
	}
	if diff := cmp.Diff(expectedOutputOptions, optionSet.OutputOptions); diff != "" {
		t.Errorf("unexpected output options (-expected +actual):\n%s", diff)
	}
}

func TestParse_AllFlags(t *testing.T) {
	// Setup
	argv := []string{
		"hsend",
		"-X", "post",
		"-c", "text/plain",
		"-H", "X-A: 1",
		"-H", "X-B: 2",
		"-q", "page=1",
		"-d", "hello",
		"--bearer=tok",
		"--timeout=5",
		"-p", "hb",
		"--pretty=format",
		"--max-headers=0",
		"--native",
		"--http1",
		"--curl=/usr/local/bin/curl",
		"--filter=items[0]",
		"-o", "out.json",
		"--check-status",
		"-v",
		"http://example.com",
	}

	// Exercise
	args, _, optionSet, err := parse(argv, terminalInfo{stdoutIsTerminal: true})
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}

	// Verify
	if diff := cmp.Diff([]string{"http://example.com"}, args); diff != "" {
		t.Errorf("unexpected args (-expected +actual):\n%s", diff)
	}
	expectedSpec := input.Spec{
		Method:      input.Method("post"),
		ContentType: "text/plain",
		Headers:     []string{"X-A: 1", "X-B: 2"},
		Params:      []string{"page=1"},
		Body:        "hello",
		Auth:        input.Auth{Mode: input.AuthBearer, Field1: "tok"},
	}
	if diff := cmp.Diff(expectedSpec, optionSet.Spec); diff != "" {
		t.Errorf("unexpected spec (-expected +actual):\n%s", diff)
	}
	if optionSet.ExchangeOptions.Timeout != 5*time.Second {
		t.Errorf("unexpected timeout: expected=%v, actual=%v", 5*time.Second, optionSet.ExchangeOptions.Timeout)
	}
	if !optionSet.ExchangeOptions.Native || !optionSet.ExchangeOptions.ForceHTTP1 {
		t.Errorf("unexpected exchange options: %+v", optionSet.ExchangeOptions)
	}
	if optionSet.CommandOptions.Program != "/usr/local/bin/curl" {
		t.Errorf("unexpected program: %s", optionSet.CommandOptions.Program)
	}
	expectedOutputOptions := output.Options{
		PrintResponseHeader: true,
		PrintResponseBody:   true,
		EnableFormat:        true,
		HeaderLimit:         0,
		OutputFile:          "out.json",
	}
	if diff := cmp.Diff(expectedOutputOptions, optionSet.OutputOptions); diff != "" {
		t.Errorf("unexpected output options (-expected +actual):\n%s", diff)
	}
	if optionSet.Filter != "items[0]" || !optionSet.CheckStatus || !optionSet.Verbose || optionSet.DryRun {
		t.Errorf("unexpected option set: %+v", optionSet)
	}
}

func TestParse_Error(t *testing.T) {
	testCases := []struct {
		title        string
		args         []string
		isUsageError bool
	}{
		{title: "Unknown flag", args: []string{"hsend", "--no-such-flag"}, isUsageError: true},
		{title: "Invalid --print", args: []string{"hsend", "--print=x"}},
		{title: "Invalid --pretty", args: []string{"hsend", "--pretty=sometimes"}},
		{title: "Invalid --timeout", args: []string{"hsend", "--timeout=soon"}},
		{title: "Negative --max-headers", args: []string{"hsend", "--max-headers=-1"}},
		{title: "Two kinds of credentials", args: []string{"hsend", "--bearer=a", "--api-key=b"}, isUsageError: true},
		{title: "--ask-password without --user", args: []string{"hsend", "--ask-password"}, isUsageError: true},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			_, _, _, err := parse(tt.args, terminalInfo{})
			if err == nil {
				t.Fatalf("error expected")
			}
			if _, ok := errors.Cause(err).(*input.UsageError); ok != tt.isUsageError {
				t.Errorf("unexpected error type: isUsageError=%v, err=%+v", tt.isUsageError, err)
			}
		})
	}
}

func TestParse_AskPassword(t *testing.T) {
	// Setup
	original := askPasswordFunc
	defer func() { askPasswordFunc = original }()
	var askedFor string
	askPasswordFunc = func(user string) (string, error) {
		askedFor = user
		return "s3cret", nil
	}

	// Exercise
	_, _, optionSet, err := parse([]string{"hsend", "--user=alice", "--ask-password"}, terminalInfo{})
	if err != nil {
		t.Fatalf("unexpected error: err=%+v", err)
	}

	// Verify
	if askedFor != "alice" {
		t.Errorf("unexpected user: expected=%s, actual=%s", "alice", askedFor)
	}
	expected := input.Auth{Mode: input.AuthBasic, Field1: "alice", Field2: "s3cret"}
	if optionSet.Spec.Auth != expected {
		t.Errorf("unexpected auth: expected=%+v, actual=%+v", expected, optionSet.Spec.Auth)
	}
}

func TestParseAuth(t *testing.T) {
	testCases := []struct {
		title    string
		bearer   string
		user     string
		apiKey   string
		authType string
		expected input.Auth
	}{
		{title: "None", expected: input.Auth{}},
		{title: "Bearer", bearer: "tok", expected: input.Auth{Mode: input.AuthBearer, Field1: "tok"}},
		{title: "Basic with password", user: "alice:pw", expected: input.Auth{Mode: input.AuthBasic, Field1: "alice", Field2: "pw"}},
		{title: "Basic without password", user: "alice", expected: input.Auth{Mode: input.AuthBasic, Field1: "alice"}},
		{title: "Password contains colon", user: "alice:a:b", expected: input.Auth{Mode: input.AuthBasic, Field1: "alice", Field2: "a:b"}},
		{title: "API key", apiKey: "k", expected: input.Auth{Mode: input.AuthAPIKey, Field1: "k"}},
		{title: "Explicit matching type", apiKey: "k", authType: "API Key", expected: input.Auth{Mode: input.AuthAPIKey, Field1: "k"}},
		{title: "Type only", authType: "bearer", expected: input.Auth{Mode: input.AuthBearer}},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			auth, err := parseAuth(tt.bearer, tt.user, tt.apiKey, tt.authType)
			if err != nil {
				t.Fatalf("unexpected error: err=%+v", err)
			}
			if auth != tt.expected {
				t.Errorf("unexpected auth: expected=%+v, actual=%+v", tt.expected, auth)
			}
		})
	}

	if _, err := parseAuth("tok", "", "", "basic"); err == nil {
		t.Errorf("conflicting --auth-type should be an error")
	}
}

func TestParseDurationOrSeconds(t *testing.T) {
	testCases := []struct {
		title    string
		value    string
		expected time.Duration
	}{
		{title: "Seconds", value: "30", expected: 30 * time.Second},
		{title: "Fractional seconds", value: "1.5", expected: 1500 * time.Millisecond},
		{title: "Duration", value: "250ms", expected: 250 * time.Millisecond},
	}
	for _, tt := range testCases {
		t.Run(tt.title, func(t *testing.T) {
			d, err := parseDurationOrSeconds(tt.value)
			if err != nil {
				t.Fatalf("unexpected error: err=%+v", err)
			}
			if d != tt.expected {
				t.Errorf("unexpected duration: expected=%v, actual=%v", tt.expected, d)
			}
		})
	}
}
