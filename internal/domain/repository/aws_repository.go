package repository

import (
	"context"

	"github.com/diillson/cdk-bootstrap-go/internal/domain/entity"
)

// AWSRepository defines the interface for AWS API interactions.
type AWSRepository interface {
	IdentityRepository

	// Region Operations
	GetAccessibleRegions(ctx context.Context, profile string) ([]string, error)

	// Bootstrap verification
	BootstrapBucketExists(ctx context.Context, env entity.Environment, qualifier string) (bool, error)
}
