package main

import (
	"fmt"
	"os"

	"github.com/kbukum/sporeplan/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		for _, line := range errorLines(err) {
			fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+line))
		}
		os.Exit(errors.ExitCode(err))
	}
}
