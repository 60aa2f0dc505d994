// Command report-docx renders a report (template and context, JSON or YAML)
// into a .docx document.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
)

// ExitError is an error carrying the process exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, os.Stdin, os.Stdout, os.Stderr, os.Args[1:])
	if err == nil {
		return
	}

	code := 1
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.Code
	}

	color.New(color.FgRed).Fprintln(os.Stderr, err)
	stop()
	os.Exit(code)
}

// run executes the command with args, for easier testing.
func run(ctx context.Context, in io.Reader, outW, errW io.Writer, args []string) error {
	cmd := newRootCommand(in, outW, errW)
	cmd.SetArgs(args)

	return cmd.ExecuteContext(ctx)
}
