package deployment

import (
	"context"

	"github.com/Raghavaaa/lindia-b/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockVerifier implements input.Verifier for testing
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context) (*entity.VerificationReport, error) {
	args := m.Called(ctx)
	report, _ := args.Get(0).(*entity.VerificationReport)
	return report, args.Error(1)
}

// MockIntegrator implements input.IntegrationValidator for testing
type MockIntegrator struct {
	mock.Mock
}

func (m *MockIntegrator) Validate(ctx context.Context) (*entity.IntegrationReport, error) {
	args := m.Called(ctx)
	report, _ := args.Get(0).(*entity.IntegrationReport)
	return report, args.Error(1)
}
