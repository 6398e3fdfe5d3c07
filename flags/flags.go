package flags

import (
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/nojima/hsend/command"
	"github.com/nojima/hsend/exchange"
	"github.com/nojima/hsend/input"
	"github.com/nojima/hsend/output"
	"github.com/pborman/getopt"
	"github.com/pkg/errors"
)

var reNumber = regexp.MustCompile(`^[0-9.]+$`)

type FlagSet interface {
	Args() []string
	PrintUsage(w io.Writer)
}

type OptionSet struct {
	InputOptions    input.Options
	Spec            input.Spec // values given by flags, merged by input.ParseArgs
	DataFile        string
	CommandOptions  command.Options
	ExchangeOptions exchange.Options
	OutputOptions   output.Options

	Filter      string
	DryRun      bool
	Verbose     bool
	CheckStatus bool
	ShowHelp    bool
	ShowVersion bool
	ShowLicense bool
}

type terminalInfo struct {
	stdoutIsTerminal bool
}

// lineList collects the values of a repeatable flag.
type lineList []string

func (l *lineList) Set(value string, option getopt.Option) error {
	*l = append(*l, value)
	return nil
}

func (l *lineList) String() string {
	return strings.Join(*l, ", ")
}

// Parse parses the command line. args[0] is the program name. The returned
// FlagSet is usable for printing usage even when an error is returned.
func Parse(args []string) ([]string, FlagSet, *OptionSet, error) {
	return parse(args, terminalInfo{
		stdoutIsTerminal: isatty.IsTerminal(os.Stdout.Fd()),
	})
}

func parse(args []string, terminalInfo terminalInfo) ([]string, FlagSet, *OptionSet, error) {
	optionSet := &OptionSet{}
	var method string
	var headers, params lineList
	var bearer, user, apiKey, authType string
	var askPassword bool
	printFlag := "\000" // "\000" is a special value that indicates user did not specified --print
	prettyFlag := "\000"
	timeout := "30s"
	maxHeaders := strconv.Itoa(output.DefaultHeaderLimit)

	flagSet := getopt.New()
	flagSet.SetParameters("[METHOD] URL")
	flagSet.StringVarLong(&method, "method", 'X', "request method (GET, POST, PUT, PATCH, DELETE, HEAD, OPTIONS)")
	flagSet.StringVarLong(&optionSet.Spec.ContentType, "content-type", 'c', "value of the Content-Type header (default: application/json)")
	flagSet.VarLong(&headers, "header", 'H', "add a header line 'Name: Value' (repeatable)")
	flagSet.VarLong(&params, "param", 'q', "add a query parameter key=value (repeatable)")
	flagSet.StringVarLong(&optionSet.Spec.Body, "data", 'd', "request body")
	flagSet.StringVarLong(&optionSet.DataFile, "data-file", 0, "read the request body from a file ('-' reads stdin)")
	flagSet.StringVarLong(&optionSet.InputOptions.File, "file", 'f', "load the request from a YAML file")
	flagSet.StringVarLong(&bearer, "bearer", 0, "authenticate with a bearer token")
	flagSet.StringVarLong(&user, "user", 0, "authenticate with basic auth (USER[:PASSWORD])")
	flagSet.StringVarLong(&apiKey, "api-key", 0, "send an API key in the X-API-Key header")
	flagSet.StringVarLong(&authType, "auth-type", 0, "auth mode (none, bearer, basic, apikey)")
	flagSet.BoolVarLong(&askPassword, "ask-password", 0, "prompt for the basic auth password")
	flagSet.BoolVarLong(&optionSet.InputOptions.FormatBody, "format-body", 0, "re-indent the JSON request body before sending")
	flagSet.StringVarLong(&printFlag, "print", 'p', "specifies what the output should contain (Hhb)")
	flagSet.StringVarLong(&prettyFlag, "pretty", 0, "controls output formatting (all, format, none)")
	flagSet.StringVarLong(&timeout, "timeout", 0, "Timeout seconds that you allow the whole operation to take")
	flagSet.BoolVarLong(&optionSet.ExchangeOptions.Native, "native", 0, "send with the built-in HTTP client instead of curl")
	flagSet.BoolVarLong(&optionSet.ExchangeOptions.SkipVerify, "skip-verify", 0, "skip verifying server certificate (native client only)")
	flagSet.BoolVarLong(&optionSet.ExchangeOptions.ForceHTTP1, "http1", 0, "force HTTP/1.1 (native client only)")
	flagSet.StringVarLong(&optionSet.CommandOptions.Program, "curl", 0, "path of the curl binary")
	flagSet.BoolVarLong(&optionSet.DryRun, "dry-run", 'n', "print the curl command and exit")
	flagSet.BoolVarLong(&optionSet.Verbose, "verbose", 'v', "print the curl command before running it")
	flagSet.StringVarLong(&optionSet.Filter, "filter", 0, "JMESPath expression applied to a JSON response body")
	flagSet.StringVarLong(&maxHeaders, "max-headers", 0, "response header lines to show (0 shows all)")
	flagSet.StringVarLong(&optionSet.OutputOptions.OutputFile, "output", 'o', "save the response body to the file")
	flagSet.BoolVarLong(&optionSet.OutputOptions.Overwrite, "overwrite", 0, "overwrite the file given by --output")
	flagSet.BoolVarLong(&optionSet.CheckStatus, "check-status", 0, "exit with 3, 4 or 5 on a 3xx, 4xx or 5xx response")
	flagSet.BoolVarLong(&optionSet.ShowHelp, "help", 'h', "print usage and exit")
	flagSet.BoolVarLong(&optionSet.ShowVersion, "version", 0, "print version and exit")
	flagSet.BoolVarLong(&optionSet.ShowLicense, "license", 0, "print license information and exit")
	if err := flagSet.Getopt(args, nil); err != nil {
		return nil, flagSet, nil, input.NewUsageError(err.Error())
	}

	optionSet.Spec.Method = input.Method(method)
	optionSet.Spec.Headers = headers
	optionSet.Spec.Params = params

	// Parse auth flags
	auth, err := parseAuth(bearer, user, apiKey, authType)
	if err != nil {
		return nil, flagSet, nil, err
	}
	if askPassword {
		if auth.Mode != input.AuthBasic {
			return nil, flagSet, nil, input.NewUsageError("--ask-password requires --user")
		}
		password, err := askPasswordFunc(auth.Field1)
		if err != nil {
			return nil, flagSet, nil, err
		}
		auth.Field2 = password
	}
	optionSet.Spec.Auth = auth

	// Parse --print
	if err := parsePrintFlag(printFlag, terminalInfo, &optionSet.OutputOptions); err != nil {
		return nil, flagSet, nil, err
	}

	// Parse --pretty
	if err := parsePrettyFlag(prettyFlag, terminalInfo, &optionSet.OutputOptions); err != nil {
		return nil, flagSet, nil, err
	}

	// Parse --timeout
	d, err := parseDurationOrSeconds(timeout)
	if err != nil {
		return nil, flagSet, nil, err
	}
	optionSet.ExchangeOptions.Timeout = d

	// Parse --max-headers
	limit, err := strconv.Atoi(maxHeaders)
	if err != nil || limit < 0 {
		return nil, flagSet, nil, errors.Errorf("Value of --max-headers must be a non-negative integer: %v", maxHeaders)
	}
	optionSet.OutputOptions.HeaderLimit = limit

	return flagSet.Args(), flagSet, optionSet, nil
}

// askPasswordFunc is replaced in tests.
var askPasswordFunc = askPassword

func parseAuth(bearer, user, apiKey, authType string) (input.Auth, error) {
	var auth input.Auth
	given := 0
	if bearer != "" {
		auth = input.Auth{Mode: input.AuthBearer, Field1: bearer}
		given++
	}
	if user != "" {
		name, password, _ := input.ParseUserPassword(user)
		auth = input.Auth{Mode: input.AuthBasic, Field1: name, Field2: password}
		given++
	}
	if apiKey != "" {
		auth = input.Auth{Mode: input.AuthAPIKey, Field1: apiKey}
		given++
	}
	if given > 1 {
		return input.Auth{}, input.NewUsageError("only one of --bearer, --user and --api-key may be given")
	}

	if authType != "" {
		mode, err := input.ParseAuthMode(authType)
		if err != nil {
			return input.Auth{}, err
		}
		if given == 1 && mode != auth.Mode {
			return input.Auth{}, input.NewUsageError("--auth-type " + authType + " conflicts with the given credentials")
		}
		auth.Mode = mode
	}
	return auth, nil
}

func parsePrintFlag(printFlag string, terminalInfo terminalInfo, outputOptions *output.Options) error {
	if printFlag == "\000" {
		// --print is not specified
		if terminalInfo.stdoutIsTerminal {
			outputOptions.PrintRequestLine = true
			outputOptions.PrintResponseHeader = true
			outputOptions.PrintResponseBody = true
		} else {
			outputOptions.PrintResponseBody = true
		}
	} else {
		for _, c := range printFlag {
			switch c {
			case 'H':
				outputOptions.PrintRequestLine = true
			case 'h':
				outputOptions.PrintResponseHeader = true
			case 'b':
				outputOptions.PrintResponseBody = true
			default:
				return errors.Errorf("Invalid char in --print value (must be consist of Hhb): %c", c)
			}
		}
	}
	return nil
}

func parsePrettyFlag(prettyFlag string, terminalInfo terminalInfo, outputOptions *output.Options) error {
	switch prettyFlag {
	case "\000":
		outputOptions.EnableFormat = terminalInfo.stdoutIsTerminal
		outputOptions.EnableColor = terminalInfo.stdoutIsTerminal
	case "all":
		outputOptions.EnableFormat = true
		outputOptions.EnableColor = true
	case "format":
		outputOptions.EnableFormat = true
	case "none":
	default:
		return errors.Errorf("Value of --pretty must be all, format or none: %v", prettyFlag)
	}
	return nil
}

func parseDurationOrSeconds(timeout string) (time.Duration, error) {
	if reNumber.MatchString(timeout) {
		timeout += "s"
	}
	d, err := time.ParseDuration(timeout)
	if err != nil {
		return time.Duration(0), errors.Errorf("Value of --timeout must be a number or duration string: %v", timeout)
	}
	return d, nil
}
