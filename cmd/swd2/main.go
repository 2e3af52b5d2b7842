// Package main is the swd2 command line tool for the SteamWorld Dig 2
// translation tables.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// exitError carries the exit code for errors that are not usage errors.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func failure(err error) error {
	return &exitError{code: exitFailure, err: err}
}

// Operation errors that have already been logged.
var (
	errOperationFailed = errors.New("operation failed")
	errBatchIncomplete = errors.New("not every file was processed")
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	a := newApp(stdout, stderr)
	defer a.close()

	cmd := a.rootCommand()
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return exitOK
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if !errors.Is(err, errOperationFailed) && !errors.Is(err, errBatchIncomplete) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return ee.code
	}
	fmt.Fprintf(stderr, "Error: %v\nRun 'swd2 --help' for usage.\n", err)
	return exitUsage
}
