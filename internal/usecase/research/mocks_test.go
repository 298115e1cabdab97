package research

import (
	"context"
	"time"

	"github.com/Raghavaaa/lindia-b/internal/application/port/output"

	"github.com/stretchr/testify/mock"
)

// MockLLM implements output.LLMPort for testing
type MockLLM struct {
	mock.Mock
}

func (m *MockLLM) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*output.ChatResponse)
	return resp, args.Error(1)
}

// MockEnhancer implements output.QueryEnhancer for testing
type MockEnhancer struct {
	mock.Mock
}

func (m *MockEnhancer) Enhance(ctx context.Context, query string) (string, error) {
	args := m.Called(ctx, query)
	return args.String(0), args.Error(1)
}

// MockEngine implements output.InferencePort for testing
type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Infer(ctx context.Context, req output.InferenceRequest) (*output.InferenceResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*output.InferenceResponse)
	return resp, args.Error(1)
}

// MockMetrics implements output.MetricsPort for testing
type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) ObserveUpstream(service string, outcome output.Outcome, elapsed time.Duration) {
	m.Called(service, outcome, elapsed)
}

func (m *MockMetrics) CountAnswer(route, modelUsed string) {
	m.Called(route, modelUsed)
}
