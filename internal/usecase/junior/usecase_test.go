package junior

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Raghavaaa/lindia-b/internal/application/port/output"
	"github.com/Raghavaaa/lindia-b/internal/domain/entity"
	"github.com/Raghavaaa/lindia-b/internal/infrastructure/llm/aiengine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Infer(ctx context.Context, req output.InferenceRequest) (*output.InferenceResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*output.InferenceResponse)
	return resp, args.Error(1)
}

func stringPtr(s string) *string {
	return &s
}

type recordingMetrics struct {
	answers []string
}

func (r *recordingMetrics) ObserveUpstream(string, output.Outcome, time.Duration) {}

func (r *recordingMetrics) CountAnswer(route, modelUsed string) {
	r.answers = append(r.answers, route+":"+modelUsed)
}

func TestAsk(t *testing.T) {
	const q = " What is Section 420 IPC? "

	tests := []struct {
		name string
		resp *output.InferenceResponse
		err  error
		want entity.JuniorAnswer
	}{
		{
			name: "engine answer",
			resp: &output.InferenceResponse{Answer: stringPtr("Cheating."), Model: stringPtr("lindia-7b")},
			want: entity.JuniorAnswer{Query: q, Answer: "Cheating.", ModelUsed: "lindia-7b", Confidence: 0.9},
		},
		{
			name: "engine answer without fields",
			resp: &output.InferenceResponse{},
			want: entity.JuniorAnswer{Query: q, Answer: "No response", ModelUsed: "AI Legal Junior", Confidence: 0.9},
		},
		{
			name: "engine answer with empty fields",
			resp: &output.InferenceResponse{Answer: stringPtr(""), Model: stringPtr("")},
			want: entity.JuniorAnswer{Query: q, Answer: "", ModelUsed: "", Confidence: 0.9},
		},
		{
			name: "non-200",
			err:  &output.StatusError{Service: "ai_engine", Code: 503},
			want: entity.JuniorAnswer{Query: q, Answer: "AI engine error: 503", ModelUsed: "Error", Confidence: 0.0},
		},
		{
			name: "transport error",
			err:  errors.New("dial tcp: connection refused"),
			want: entity.JuniorAnswer{
				Query:      q,
				Answer:     "Legal analysis for: " + q + ". This involves legal considerations requiring comprehensive analysis.",
				ModelUsed:  "Fallback",
				Confidence: 0.8,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &MockEngine{}
			metrics := &recordingMetrics{}
			ctx := context.Background()

			engine.On("Infer", ctx, output.InferenceRequest{
				Query:    q,
				Context:  "AI Legal Junior Assistant",
				TenantID: "demo",
			}).Return(tt.resp, tt.err).Once()

			uc := New(engine, nil, metrics)
			got := uc.Ask(ctx, entity.QueryRequest{Query: q})

			assert.Equal(t, tt.want, got)
			assert.Equal(t, []string{"junior:" + tt.want.ModelUsed}, metrics.answers)
			engine.AssertExpectations(t)
		})
	}
}

func TestAsk_UsesClientID(t *testing.T) {
	engine := &MockEngine{}
	ctx := context.Background()
	engine.On("Infer", ctx, mock.MatchedBy(func(req output.InferenceRequest) bool {
		return req.TenantID == "firm-42"
	})).Return(&output.InferenceResponse{Answer: stringPtr("ok")}, nil).Once()

	got := New(engine, nil, nil).Ask(ctx, entity.QueryRequest{Query: "q", ClientID: "firm-42"})

	assert.Equal(t, "ok", got.Answer)
	engine.AssertExpectations(t)
}

func TestAsk_EngineBodies(t *testing.T) {
	const q = "What is FIR?"
	fallbackAnswer := entity.JuniorAnswer{
		Query:      q,
		Answer:     "Legal analysis for: What is FIR?. This involves legal considerations requiring comprehensive analysis.",
		ModelUsed:  "Fallback",
		Confidence: 0.8,
	}

	tests := []struct {
		body string
		want entity.JuniorAnswer
	}{
		{`null`, fallbackAnswer},
		{`[]`, fallbackAnswer},
		{`"text"`, fallbackAnswer},
		{`{"answer":""}`, entity.JuniorAnswer{Query: q, Answer: "", ModelUsed: "AI Legal Junior", Confidence: 0.9}},
		{`{"model":"lindia-7b"}`, entity.JuniorAnswer{Query: q, Answer: "No response", ModelUsed: "lindia-7b", Confidence: 0.9}},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			uc := New(aiengine.NewAdapter(aiengine.DefaultConfig(srv.URL)), nil, nil)
			assert.Equal(t, tt.want, uc.Ask(context.Background(), entity.QueryRequest{Query: q}))
		})
	}
}
