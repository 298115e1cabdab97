package junior

import (
	"context"
	"fmt"

	"github.com/Raghavaaa/lindia-b/internal/application/port/input"
	"github.com/Raghavaaa/lindia-b/internal/application/port/output"
	"github.com/Raghavaaa/lindia-b/internal/domain/entity"
)

var _ input.JuniorService = (*UseCase)(nil)

const (
	route = "junior"

	engineConfidence   = 0.9
	fallbackConfidence = 0.8
)

// UseCase forwards junior questions to the AI engine as-is.
type UseCase struct {
	engine  output.InferencePort
	logger  output.LoggerPort
	metrics output.MetricsPort
}

func New(engine output.InferencePort, logger output.LoggerPort, metrics output.MetricsPort) *UseCase {
	if logger == nil {
		logger = output.NopLogger{}
	}
	if metrics == nil {
		metrics = output.NopMetrics{}
	}
	return &UseCase{
		engine:  engine,
		logger:  logger.WithField("route", route),
		metrics: metrics,
	}
}

func (uc *UseCase) Ask(ctx context.Context, req entity.QueryRequest) entity.JuniorAnswer {
	answer := uc.ask(ctx, req)
	uc.metrics.CountAnswer(route, answer.ModelUsed)
	return answer
}

func (uc *UseCase) ask(ctx context.Context, req entity.QueryRequest) entity.JuniorAnswer {
	resp, err := uc.engine.Infer(ctx, output.InferenceRequest{
		Query:    req.Query,
		Context:  entity.JuniorContext,
		TenantID: req.Tenant(),
	})
	if err != nil {
		if code, ok := output.StatusCode(err); ok {
			uc.logger.Warn("AI engine rejected junior query", "status", code)
			return entity.JuniorAnswer{
				Query:      req.Query,
				Answer:     fmt.Sprintf("AI engine error: %d", code),
				ModelUsed:  entity.ModelError,
				Confidence: 0.0,
			}
		}
		uc.logger.Warn("AI engine unavailable, serving fallback", "error", err)
		return entity.JuniorAnswer{
			Query:      req.Query,
			Answer:     fmt.Sprintf("Legal analysis for: %s. This involves legal considerations requiring comprehensive analysis.", req.Query),
			ModelUsed:  entity.ModelFallback,
			Confidence: fallbackConfidence,
		}
	}

	return entity.JuniorAnswer{
		Query:      req.Query,
		Answer:     resp.AnswerOr("No response"),
		ModelUsed:  resp.ModelOr(entity.ModelJunior),
		Confidence: engineConfidence,
	}
}
