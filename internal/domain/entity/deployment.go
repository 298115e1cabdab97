package entity

import "time"

type CommitInfo struct {
	Hash    string `json:"hash"`
	Author  string `json:"author,omitempty"`
	Email   string `json:"email,omitempty"`
	Date    string `json:"date,omitempty"`
	Message string `json:"message,omitempty"`
}

const (
	IntegrationCompleted = "COMPLETED"
	IntegrationPartial   = "PARTIAL"
	IntegrationSkipped   = "SKIPPED"
)

type DeploymentRecord struct {
	DeploymentID      string        `json:"deployment_id"`
	Timestamp         time.Time     `json:"timestamp"`
	CommitHash        string        `json:"commit_hash"`
	CommitInfo        CommitInfo    `json:"commit_info"`
	BuildNumber       int           `json:"build_number"`
	VVStatus          OverallStatus `json:"vv_status"`
	Status            OverallStatus `json:"status"`
	VVPassed          bool          `json:"vv_passed"`
	ReportFile        string        `json:"report_file"`
	IntegrationStatus string        `json:"integration_status"`
}

type RollbackLog struct {
	Timestamp  time.Time `json:"timestamp"`
	FromCommit string    `json:"from_commit"`
	ToCommit   string    `json:"to_commit"`
	Reason     string    `json:"reason"`
}

type DeploymentOutcome struct {
	Record         DeploymentRecord
	Approved       bool
	Tag            string
	TagCreated     bool
	SafeCommit     string
	RollbackLogRef string
}
