package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	// ErrAppNameIsEmpty is returned if Log.AppName was not defined.
	ErrAppNameIsEmpty = errors.New("config Log.AppName can not be empty")

	// ErrServiceNameIsEmpty is returned if Log.ServiceName was not defined.
	ErrServiceNameIsEmpty = errors.New("config Log.ServiceName can not be empty")
)

// writeFailureOut receives the events zerolog could not deliver to its writers.
var writeFailureOut io.Writer = os.Stderr

// ErrorHandler reports a failed log write. Init installs it as zerolog.ErrorHandler,
// so a full disk or a closed log file shows up on stderr instead of vanishing.
func ErrorHandler(err error) {
	_, _ = fmt.Fprintf(writeFailureOut, "visa-admin logger: write failed: %v\n", err)
}
