package repository

import (
	"context"

	"github.com/diillson/cdk-bootstrap-go/internal/domain/entity"
)

// IdentityRepository resolves the caller identity for a profile ("" is the default chain).
type IdentityRepository interface {
	GetCallerIdentity(ctx context.Context, profile string) (entity.Identity, error)
}
