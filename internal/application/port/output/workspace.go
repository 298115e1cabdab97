package output

import (
	"context"

	"github.com/Raghavaaa/lindia-b/internal/domain/entity"
)

// Workspace gives read access to the project tree. Paths are slash separated
// and relative to the project root.
type Workspace interface {
	Root() string
	Abs(rel string) string
	Exists(rel string) bool
	IsDir(rel string) bool
	Size(rel string) (int64, error)
	ReadFile(rel string) ([]byte, error)
	Glob(pattern string) ([]string, error)
	// Files unions the matches of include and drops those matching exclude.
	Files(include, exclude []string) ([]string, error)
	InspectHTML(rel string) (*HTMLSummary, error)
}

type HTMLSummary struct {
	Title       string
	Scripts     int
	HasRootNode bool
}

type SchemaInspector interface {
	FileSize(path string) (int64, error)
	Tables(ctx context.Context, path string) ([]string, error)
}

type GitPort interface {
	HeadCommit(ctx context.Context) (string, error)
	ChangedFiles(ctx context.Context) ([]string, error)
	CommitInfo(ctx context.Context, hash string) (entity.CommitInfo, error)
	CreateTag(ctx context.Context, name, hash, message string) error
}

type ReportStore interface {
	SaveVerification(ctx context.Context, report *entity.VerificationReport, text string) (textPath, jsonPath string, err error)
	SaveIntegration(ctx context.Context, report *entity.IntegrationReport) (string, error)
	LoadHistory(ctx context.Context) ([]entity.DeploymentRecord, error)
	AppendHistory(ctx context.Context, record entity.DeploymentRecord) error
	SaveRollback(ctx context.Context, log entity.RollbackLog) (string, error)
}
