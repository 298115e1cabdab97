package entity

// Model labels reported in the model_used field.
const (
	ModelEnhancedChain     = "InLegalBERT + DeepSeek API"
	ModelResearchAssistant = "AI Research Assistant"
	ModelJunior            = "AI Legal Junior"
	ModelDynamicResearch   = "Dynamic Legal Research Engine"
	ModelFallback          = "Fallback"
	ModelError             = "Error"
)

const DefaultClientID = "demo"

// Upstream context strings sent to the AI engine.
const (
	JuniorContext   = "AI Legal Junior Assistant"
	ResearchContext = "Legal Research Assistant - Comprehensive Analysis"
)

type QueryRequest struct {
	Query    string `json:"query"`
	ClientID string `json:"client_id"`
}

// Tenant returns the client id, defaulting to DefaultClientID.
func (r QueryRequest) Tenant() string {
	if r.ClientID == "" {
		return DefaultClientID
	}
	return r.ClientID
}

type JuniorAnswer struct {
	Query      string  `json:"query"`
	Answer     string  `json:"answer"`
	ModelUsed  string  `json:"model_used"`
	Confidence float64 `json:"confidence"`
}

type ResearchAnswer struct {
	Query      string  `json:"query"`
	AIResponse string  `json:"ai_response"`
	ModelUsed  string  `json:"model_used"`
	Confidence float64 `json:"confidence"`
}
