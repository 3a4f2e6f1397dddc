package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoEnvironments         = errors.New("no environments to bootstrap")
	ErrBootstrapIncomplete    = errors.New("some environments failed to bootstrap")
	ErrInvalidIdentity        = errors.New("invalid caller identity payload")
	ErrUnknownPolicy          = errors.New("unknown failure policy")
	ErrUnknownIdentitySource  = errors.New("unknown identity source")
	ErrBootstrapBucketMissing = errors.New("bootstrap bucket not found")
)

// CommandError reports an external command that ran and exited non-zero.
type CommandError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	stderr := strings.TrimSpace(e.Stderr)
	if stderr == "" {
		return fmt.Sprintf("command %q exited with status %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("command %q exited with status %d: %s", e.Command, e.ExitCode, stderr)
}

// IsCommandError reports whether err carries a non-zero process exit.
func IsCommandError(err error) bool {
	var cmdErr *CommandError
	return errors.As(err, &cmdErr)
}
