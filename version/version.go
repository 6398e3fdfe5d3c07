package version

import (
	"fmt"
	"io"
)

// Name is the program name used in the version line and the User-Agent.
const Name = "hsend"

type Version struct {
	major int
	minor int
	patch int
}

func (v *Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.major, v.minor, v.patch)
}

// Current returns current version of hsend
func Current() *Version {
	return &Version{major: 0, minor: 3, patch: 1}
}

// UserAgent is sent by the native sender unless a User-Agent header is given.
func UserAgent() string {
	return Name + "/" + Current().String()
}

// PrintVersion writes the line shown by --version.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "%s %s\n", Name, Current())
}
