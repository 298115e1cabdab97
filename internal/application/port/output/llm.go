package output

import (
	"context"

	"github.com/Raghavaaa/lindia-b/internal/domain/entity"
)

type LLMPort interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

type ChatRequest struct {
	Messages    []entity.Message
	MaxTokens   int
	Temperature float32
}

type ChatResponse struct {
	Message entity.Message
	Model   string
}

// QueryEnhancer rewrites a query with extra legal context before it is sent to the LLM.
type QueryEnhancer interface {
	Enhance(ctx context.Context, query string) (string, error)
}

// InferencePort is the generic AI engine that answers a query directly.
type InferencePort interface {
	Infer(ctx context.Context, req InferenceRequest) (*InferenceResponse, error)
}

type InferenceRequest struct {
	Query    string `json:"query"`
	Context  string `json:"context"`
	TenantID string `json:"tenant_id"`
}

// InferenceResponse carries the engine fields as sent. Nil means the key was
// absent; a present but empty value is kept.
type InferenceResponse struct {
	Answer *string
	Model  *string
}

// AnswerOr returns the answer, or def when the engine omitted it.
func (r *InferenceResponse) AnswerOr(def string) string {
	if r.Answer == nil {
		return def
	}
	return *r.Answer
}

// ModelOr returns the model, or def when the engine omitted it.
func (r *InferenceResponse) ModelOr(def string) string {
	if r.Model == nil {
		return def
	}
	return *r.Model
}

// EngineProbe exposes the AI engine health endpoint for the integration validators.
type EngineProbe interface {
	InferencePort
	Health(ctx context.Context) error
	Endpoint() string
}
