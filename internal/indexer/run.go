package indexer

import (
	"context"
	"fmt"
	"strings"

	"gopagefind/internal/system"
)

// ExecError is a failed indexer invocation: the command, its arguments, the
// combined output, and the non-zero exit code.
type ExecError struct {
	Command  string
	Args     []string
	Output   string
	ExitCode int
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("pagefind exited with code %d: %s %s",
		e.ExitCode, e.Command, strings.Join(e.Args, " "))
}

// Runner executes a resolved invocation exactly once with combined
// stdout/stderr capture. No retries, no timeout.
type Runner struct {
	Sys system.System
}

// Run invokes the command and returns its captured output. A non-zero exit
// comes back as an *ExecError carrying the full invocation context.
func (r Runner) Run(ctx context.Context, exe string, args []string) (string, error) {
	res, err := r.Sys.Run(ctx, exe, args...)
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", &ExecError{
			Command:  exe,
			Args:     args,
			Output:   string(res.Output),
			ExitCode: res.ExitCode,
		}
	}
	return string(res.Output), nil
}
