package repository

import (
	"context"

	"github.com/diillson/cdk-bootstrap-go/internal/domain/entity"
)

// CommandRunner executes external programs.
//
// A process that runs and exits non-zero yields a *types.CommandError.
// Any other error means the process could not be run or was interrupted.
type CommandRunner interface {
	Run(ctx context.Context, cmd entity.Command) (entity.CommandResult, error)
}
