package input

import (
	"context"

	"github.com/Raghavaaa/lindia-b/internal/domain/entity"
)

type Verifier interface {
	Verify(ctx context.Context) (*entity.VerificationReport, error)
}

type IntegrationValidator interface {
	Validate(ctx context.Context) (*entity.IntegrationReport, error)
}

type Deployer interface {
	Deploy(ctx context.Context) (*entity.DeploymentOutcome, error)
}
