package output

import (
	"context"

	"github.com/Raghavaaa/lindia-b/internal/domain/entity"
)

type CheckPort interface {
	Name() entity.CheckName
	Run(ctx context.Context) (entity.CheckResult, error)
}

type CheckRegistry interface {
	Register(check CheckPort)
	Get(name entity.CheckName) (CheckPort, bool)
	All() []CheckPort
}

// CommandRunner executes an external command in dir.
type CommandRunner interface {
	Run(ctx context.Context, dir string, command string) CommandResult
}

type CommandResult struct {
	Success bool
	Stdout  string
	Stderr  string
}
