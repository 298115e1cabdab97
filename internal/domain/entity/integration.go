package entity

import "time"

// StepResult is one probe of a component validator. Message and Warning
// only shape console output; the JSON report carries Valid and Fields.
type StepResult struct {
	Name    string
	Valid   bool
	Fields  Fields
	Message string
	Warning bool
}

func (s StepResult) MarshalJSON() ([]byte, error) {
	fields := make(Fields, 0, len(s.Fields)+1)
	fields = append(fields, Field{Key: "valid", Value: s.Valid})
	fields = append(fields, s.Fields...)
	return marshalOrdered(fields)
}

type Component string

const (
	ComponentFrontend Component = "Frontend"
	ComponentAIEngine Component = "AI Engine"
	ComponentDatabase Component = "Database"
)

type ComponentResult struct {
	Component Component
	Overall   CheckStatus
	Steps     []StepResult
	Summary   string
	Reason    string
}

func (c ComponentResult) Step(name string) (StepResult, bool) {
	for _, s := range c.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return StepResult{}, false
}

func (c ComponentResult) MarshalJSON() ([]byte, error) {
	fields := Fields{{Key: "overall", Value: c.Overall}}
	for _, s := range c.Steps {
		fields = append(fields, Field{Key: s.Name, Value: s})
	}
	if c.Summary != "" {
		fields = append(fields, Field{Key: "summary", Value: c.Summary})
	}
	if c.Reason != "" {
		fields = append(fields, Field{Key: "reason", Value: c.Reason})
	}
	return marshalOrdered(fields)
}

type IntegrationReport struct {
	Timestamp time.Time       `json:"timestamp"`
	Frontend  ComponentResult `json:"frontend"`
	AIEngine  ComponentResult `json:"ai_engine"`
	Database  ComponentResult `json:"database"`

	ReportPath string `json:"-"`
}

func (r *IntegrationReport) Components() []ComponentResult {
	return []ComponentResult{r.Frontend, r.AIEngine, r.Database}
}

// AllPassed ignores components that are not applicable.
func (r *IntegrationReport) AllPassed() bool {
	for _, c := range r.Components() {
		if c.Overall == StatusFail {
			return false
		}
	}
	return true
}
