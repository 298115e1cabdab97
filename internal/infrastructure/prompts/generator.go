package prompts

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/tmc/langchaingo/prompts"
)

// AnalysisDateLayout renders dates as dd/mm/yyyy, HH:MM:SS.
const AnalysisDateLayout = "02/01/2006, 15:04:05"

var researchPrompt = prompts.NewPromptTemplate(
	strings.TrimSpace(ResearchPromptTemplate),
	[]string{"enhanced_query"},
)

// GenerateResearchPrompt embeds the enhanced query into the legal research prompt.
func GenerateResearchPrompt(enhancedQuery string) (string, error) {
	out, err := researchPrompt.Format(map[string]any{
		"enhanced_query": enhancedQuery,
	})
	if err != nil {
		return "", fmt.Errorf("format research prompt: %w", err)
	}
	return out, nil
}

type GeneralAnalysisData struct {
	Query        string
	AnalysisDate string
}

var generalAnalysis = template.Must(template.New("general").Parse(GeneralAnalysisTemplate))

// GenerateGeneralAnalysis renders the general-purpose fallback analysis for query.
func GenerateGeneralAnalysis(query string, at time.Time) (string, error) {
	data := GeneralAnalysisData{
		Query:        query,
		AnalysisDate: at.Format(AnalysisDateLayout),
	}

	var buf bytes.Buffer
	if err := generalAnalysis.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
