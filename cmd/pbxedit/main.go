package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/mattn/go-isatty"
)

// Version information - set at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ExitError carries the process exit code for a failed run.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// streams are the process's standard files, swapped out in tests.
type streams struct {
	in           io.Reader
	out          io.Writer
	err          io.Writer
	inIsTerminal func() bool
}

func main() {
	s := streams{
		in:  os.Stdin,
		out: os.Stdout,
		err: os.Stderr,
		inIsTerminal: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}
	os.Exit(run(os.Args[1:], s))
}

// run executes the command line and returns the exit code.
func run(args []string, s streams) int {
	cmd := newRootCmd(s)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(s.err, "pbxedit: %v\n", err)
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		return 1
	}
	return 0
}

func versionString() string {
	return fmt.Sprintf("pbxedit %s (%s, %s, %s)", version, commit[:min(7, len(commit))], date, runtime.Version())
}
