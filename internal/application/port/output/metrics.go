package output

import "time"

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeStatus  Outcome = "bad_status"
	OutcomeError   Outcome = "error"
	OutcomeSkipped Outcome = "skipped"
)

type MetricsPort interface {
	ObserveUpstream(service string, outcome Outcome, elapsed time.Duration)
	CountAnswer(route, modelUsed string)
}

// NopMetrics discards all observations.
type NopMetrics struct{}

func (NopMetrics) ObserveUpstream(string, Outcome, time.Duration) {}
func (NopMetrics) CountAnswer(string, string)                     {}
