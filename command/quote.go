package command

import (
	"regexp"
	"strings"
)

var reShellSafe = regexp.MustCompile(`^[-a-zA-Z0-9_./:=@%+,]+$`)

// Quote renders argv as a line that can be pasted into a POSIX shell.
func Quote(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = quoteArg(arg)
	}
	return strings.Join(quoted, " ")
}

func quoteArg(arg string) string {
	if reShellSafe.MatchString(arg) {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}
