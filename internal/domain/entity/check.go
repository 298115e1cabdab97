package entity

import (
	"encoding/json"
	"time"
)

type CheckStatus string

const (
	StatusPass          CheckStatus = "pass"
	StatusFail          CheckStatus = "fail"
	StatusNotApplicable CheckStatus = "N/A"
	StatusNotConfigured CheckStatus = "not configured"
	StatusNoTests       CheckStatus = "no tests found"
)

// StatusOf maps a boolean outcome to pass or fail.
func StatusOf(ok bool) CheckStatus {
	if ok {
		return StatusPass
	}
	return StatusFail
}

// OK reports whether the status does not block a push.
func (s CheckStatus) OK() bool {
	return s != StatusFail && s != ""
}

// MarshalJSON writes pass and fail as JSON booleans and every other status as a string.
func (s CheckStatus) MarshalJSON() ([]byte, error) {
	switch s {
	case StatusPass:
		return []byte("true"), nil
	case StatusFail, "":
		return []byte("false"), nil
	default:
		return json.Marshal(string(s))
	}
}

func (s *CheckStatus) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*s = StatusOf(b)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = CheckStatus(str)
	return nil
}

type CheckName string

const (
	CheckLinting     CheckName = "Syntax & Linting"
	CheckTypeSafety  CheckName = "Type Safety"
	CheckTests       CheckName = "Test Suite"
	CheckBuild       CheckName = "Build Integrity"
	CheckAPIHealth   CheckName = "API Health"
	CheckDependency  CheckName = "Dependency Audit"
	CheckEnvironment CheckName = "Environment Validation"
	CheckUI          CheckName = "UI Consistency"
)

type CheckResult struct {
	Name    CheckName
	Overall CheckStatus
	Fields  Fields
	Error   string
}

func (r CheckResult) Passed() bool {
	return r.Overall == StatusPass || r.Overall == StatusNotApplicable
}

func (r CheckResult) MarshalJSON() ([]byte, error) {
	fields := make(Fields, 0, len(r.Fields)+2)
	fields = append(fields, Field{Key: "overall", Value: r.Overall})
	fields = append(fields, r.Fields...)
	if r.Error != "" {
		fields = append(fields, Field{Key: "error", Value: r.Error})
	}
	return marshalOrdered(fields)
}

// CheckResults marshals as an object keyed by check name, in run order.
type CheckResults []CheckResult

func (c CheckResults) MarshalJSON() ([]byte, error) {
	fields := make(Fields, 0, len(c))
	for _, r := range c {
		fields = append(fields, Field{Key: string(r.Name), Value: r})
	}
	return marshalOrdered(fields)
}

type OverallStatus string

const (
	StatusSafeToPush    OverallStatus = "SAFE_TO_PUSH"
	StatusHoldForReview OverallStatus = "HOLD_FOR_REVIEW"
	StatusUnknown       OverallStatus = "UNKNOWN"
)

const UnknownCommit = "UNKNOWN"

type VerificationReport struct {
	RunID         string        `json:"run_id"`
	CommitHash    string        `json:"commit_hash"`
	Timestamp     time.Time     `json:"timestamp"`
	Checks        CheckResults  `json:"checks"`
	ChangedFiles  []string      `json:"changed_files"`
	OverallStatus OverallStatus `json:"overall_status"`
	PassedChecks  int           `json:"passed_checks"`
	TotalChecks   int           `json:"total_checks"`

	TextReportPath string `json:"-"`
	JSONReportPath string `json:"-"`
}

func (r *VerificationReport) AllPassed() bool {
	return r.TotalChecks > 0 && r.PassedChecks == r.TotalChecks
}
