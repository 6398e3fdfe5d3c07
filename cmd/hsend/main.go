package main

import (
	"fmt"
	"os"

	"github.com/nojima/hsend"
)

func main() {
	code, err := hsend.Main(&hsend.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	}
	os.Exit(code)
}
