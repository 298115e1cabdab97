package prompts

import (
	_ "embed"
)

//go:embed system.txt
var ResearchSystemPrompt string

//go:embed research.txt
var ResearchPromptTemplate string

//go:embed fallback/murder_bail.md
var MurderBailAnalysis string

//go:embed fallback/property_registration.md
var PropertyRegistrationAnalysis string

//go:embed fallback/general.md.tmpl
var GeneralAnalysisTemplate string
