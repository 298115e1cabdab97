package research

import (
	"context"
	"errors"
	"strings"

	"github.com/Raghavaaa/lindia-b/internal/application/port/input"
	"github.com/Raghavaaa/lindia-b/internal/application/port/output"
	"github.com/Raghavaaa/lindia-b/internal/domain/entity"
	"github.com/Raghavaaa/lindia-b/internal/infrastructure/prompts"
	"github.com/Raghavaaa/lindia-b/internal/usecase/fallback"
)

var _ input.ResearchService = (*UseCase)(nil)

const (
	route = "research"

	defaultMaxTokens = 4000
	chainTemperature = 0.3

	chainConfidence  = 0.95
	engineConfidence = 0.9

	emptyQueryResponse = "Please provide a valid legal research query."
	noResponse         = "No response"
)

type Config struct {
	// LLM answers the enhanced query. Nil disables the enhancement chain.
	LLM      output.LLMPort
	Enhancer output.QueryEnhancer
	Engine   output.InferencePort
	Fallback *fallback.Generator
	Logger   output.LoggerPort
	Metrics  output.MetricsPort
	// MaxTokens caps the DeepSeek answer. Zero means 4000.
	MaxTokens int
}

// UseCase answers research queries through the InLegalBERT and DeepSeek
// chain, then the AI engine, then the static fallback analysis.
type UseCase struct {
	llm       output.LLMPort
	enhancer  output.QueryEnhancer
	engine    output.InferencePort
	fallback  *fallback.Generator
	logger    output.LoggerPort
	metrics   output.MetricsPort
	maxTokens int
}

func New(cfg Config) *UseCase {
	log := cfg.Logger
	if log == nil {
		log = output.NopLogger{}
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = output.NopMetrics{}
	}
	gen := cfg.Fallback
	if gen == nil {
		gen = fallback.New(log)
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &UseCase{
		llm:       cfg.LLM,
		enhancer:  cfg.Enhancer,
		engine:    cfg.Engine,
		fallback:  gen,
		logger:    log.WithField("route", route),
		metrics:   metrics,
		maxTokens: maxTokens,
	}
}

func (uc *UseCase) Research(ctx context.Context, req entity.QueryRequest) entity.ResearchAnswer {
	answer := uc.research(ctx, req)
	uc.metrics.CountAnswer(route, answer.ModelUsed)
	return answer
}

func (uc *UseCase) research(ctx context.Context, req entity.QueryRequest) entity.ResearchAnswer {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return entity.ResearchAnswer{
			Query:      "",
			AIResponse: emptyQueryResponse,
			ModelUsed:  entity.ModelError,
			Confidence: 0.0,
		}
	}

	if text, ok := uc.runChain(ctx, query); ok {
		return entity.ResearchAnswer{
			Query:      query,
			AIResponse: text,
			ModelUsed:  entity.ModelEnhancedChain,
			Confidence: chainConfidence,
		}
	}

	if answer, ok := uc.askEngine(ctx, query, req.Tenant()); ok {
		return answer
	}

	return uc.fallback.Generate(query)
}

// runChain enhances the query and submits it to the LLM. It reports false
// when the chain is disabled or produced no answer.
func (uc *UseCase) runChain(ctx context.Context, query string) (string, bool) {
	if uc.llm == nil {
		uc.logger.Debug("Enhancement chain disabled, DeepSeek key not configured")
		return "", false
	}

	enhanced := uc.enhance(ctx, query)

	prompt, err := prompts.GenerateResearchPrompt(enhanced)
	if err != nil {
		uc.logger.Error("Failed to build research prompt", "error", err)
		return "", false
	}

	resp, err := uc.llm.Chat(ctx, output.ChatRequest{
		Messages: []entity.Message{
			{Role: entity.RoleSystem, Content: strings.TrimSpace(prompts.ResearchSystemPrompt)},
			{Role: entity.RoleUser, Content: prompt},
		},
		MaxTokens:   uc.maxTokens,
		Temperature: chainTemperature,
	})
	if err != nil {
		uc.logger.Warn("DeepSeek request failed", "error", err)
		return "", false
	}
	if resp.Message.Content == "" {
		uc.logger.Warn("DeepSeek returned an empty answer")
		return "", false
	}

	uc.logger.Info("Enhancement chain answered", "model", resp.Model)
	return resp.Message.Content, true
}

func (uc *UseCase) enhance(ctx context.Context, query string) string {
	if uc.enhancer == nil {
		return query
	}

	enhanced, err := uc.enhancer.Enhance(ctx, query)
	switch {
	case errors.Is(err, output.ErrMissingAPIKey):
		uc.logger.Debug("InLegalBERT key not configured, using original query")
		return query
	case err != nil:
		uc.logger.Warn("InLegalBERT enhancement failed, using original query", "error", err)
		return query
	case enhanced == "":
		return query
	}
	return enhanced
}

func (uc *UseCase) askEngine(ctx context.Context, query, tenant string) (entity.ResearchAnswer, bool) {
	if uc.engine == nil {
		return entity.ResearchAnswer{}, false
	}

	resp, err := uc.engine.Infer(ctx, output.InferenceRequest{
		Query:    query,
		Context:  entity.ResearchContext,
		TenantID: tenant,
	})
	if err != nil {
		uc.logger.Warn("AI engine call failed", "error", err)
		return entity.ResearchAnswer{}, false
	}

	return entity.ResearchAnswer{
		Query:      query,
		AIResponse: resp.AnswerOr(noResponse),
		ModelUsed:  resp.ModelOr(entity.ModelResearchAssistant),
		Confidence: engineConfidence,
	}, true
}
