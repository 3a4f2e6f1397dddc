package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/diillson/cdk-bootstrap-go/internal/domain/entity"
	"github.com/diillson/cdk-bootstrap-go/internal/domain/repository"
	"github.com/diillson/cdk-bootstrap-go/internal/shared/types"
)

// ExecRunner implementa o CommandRunner usando os/exec.
type ExecRunner struct {
	// Dir is the working directory; empty means the current one.
	Dir string
	// Env is appended to the inherited process environment.
	Env []string
}

// NewCommandRunner cria um CommandRunner que executa processos do host.
func NewCommandRunner() repository.CommandRunner {
	return &ExecRunner{}
}

// Run executes cmd without a shell and waits for it to exit.
func (r *ExecRunner) Run(ctx context.Context, cmd entity.Command) (entity.CommandResult, error) {
	if cmd.Name == "" {
		return entity.CommandResult{}, errors.New("empty command")
	}

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = r.Dir
	if len(r.Env) > 0 {
		c.Env = append(os.Environ(), r.Env...)
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	result := entity.CommandResult{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: stderr.String(),
	}
	if err == nil {
		return result, nil
	}

	// Cancelamento do contexto também produz ExitError; reporta como interrupção.
	if ctxErr := ctx.Err(); ctxErr != nil {
		result.ExitCode = -1
		return result, fmt.Errorf("running %s: %w", cmd.String(), ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, &types.CommandError{
			Command:  cmd.String(),
			ExitCode: result.ExitCode,
			Stderr:   result.Stderr,
		}
	}

	result.ExitCode = -1
	return result, fmt.Errorf("running %s: %w", cmd.String(), err)
}
