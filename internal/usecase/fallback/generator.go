package fallback

import (
	"strings"
	"time"

	"github.com/Raghavaaa/lindia-b/internal/application/port/output"
	"github.com/Raghavaaa/lindia-b/internal/domain/entity"
	"github.com/Raghavaaa/lindia-b/internal/infrastructure/prompts"
)

const (
	topicConfidence   = 0.85
	generalConfidence = 0.8
)

type Topic string

const (
	TopicMurderBail           Topic = "murder_bail"
	TopicPropertyRegistration Topic = "property_registration"
	TopicGeneral              Topic = "general"
)

// Generator produces the static research analysis served when every
// network path has failed.
type Generator struct {
	now    func() time.Time
	logger output.LoggerPort
}

func New(logger output.LoggerPort) *Generator {
	if logger == nil {
		logger = output.NopLogger{}
	}
	return &Generator{
		now:    time.Now,
		logger: logger,
	}
}

// WithClock replaces the time source used for the general analysis date.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

func SelectTopic(query string) Topic {
	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "murder") && strings.Contains(q, "bail"):
		return TopicMurderBail
	case strings.Contains(q, "property") &&
		(strings.Contains(q, "registration") || strings.Contains(q, "register")):
		return TopicPropertyRegistration
	default:
		return TopicGeneral
	}
}

func (g *Generator) Generate(query string) entity.ResearchAnswer {
	answer := entity.ResearchAnswer{
		Query:     query,
		ModelUsed: entity.ModelDynamicResearch,
	}

	topic := SelectTopic(query)
	switch topic {
	case TopicMurderBail:
		answer.AIResponse = prompts.MurderBailAnalysis
		answer.Confidence = topicConfidence
	case TopicPropertyRegistration:
		answer.AIResponse = prompts.PropertyRegistrationAnalysis
		answer.Confidence = topicConfidence
	default:
		text, err := prompts.GenerateGeneralAnalysis(query, g.now())
		if err != nil {
			g.logger.Error("Failed to render general analysis", "error", err)
			text = "# COMPREHENSIVE LEGAL ANALYSIS: " + query
		}
		answer.AIResponse = text
		answer.Confidence = generalConfidence
	}

	g.logger.Debug("Serving fallback analysis", "topic", topic)
	return answer
}
