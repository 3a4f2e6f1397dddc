package shell

import (
	"context"

	"github.com/diillson/cdk-bootstrap-go/internal/domain/entity"
	"github.com/diillson/cdk-bootstrap-go/internal/domain/repository"
)

// CLIIdentityRepository resolves the caller identity through the AWS CLI.
type CLIIdentityRepository struct {
	runner repository.CommandRunner
}

// NewIdentityRepository cria um IdentityRepository baseado no `aws` CLI.
func NewIdentityRepository(runner repository.CommandRunner) repository.IdentityRepository {
	return &CLIIdentityRepository{runner: runner}
}

// GetCallerIdentity runs `aws sts get-caller-identity` and parses its JSON output.
func (r *CLIIdentityRepository) GetCallerIdentity(ctx context.Context, profile string) (entity.Identity, error) {
	result, err := r.runner.Run(ctx, entity.IdentityCommand(profile))
	if err != nil {
		return entity.Identity{}, err
	}
	return entity.ParseIdentity([]byte(result.Stdout))
}
