package verification

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/Raghavaaa/lindia-b/internal/application/port/output"
	"github.com/Raghavaaa/lindia-b/internal/domain/entity"
)

const stderrExcerptLen = 200

// Deps is what every pre-deployment check reads from: the checklist, the
// project tree and a way to run commands in it.
type Deps struct {
	Checklist entity.Checklist
	Workspace output.Workspace
	Runner    output.CommandRunner
	Reporter  output.Reporter
}

// RegisterDefaultChecks adds the eight checks in report order.
func RegisterDefaultChecks(registry output.CheckRegistry, deps Deps) {
	registry.Register(NewLintCheck(deps))
	registry.Register(NewTypeCheck(deps))
	registry.Register(NewTestCheck(deps))
	registry.Register(NewBuildCheck(deps))
	registry.Register(NewAPICheck(deps))
	registry.Register(NewAuditCheck(deps))
	registry.Register(NewEnvironmentCheck(deps))
	registry.Register(NewUICheck(deps))
}

func (d Deps) frontendDir() string {
	return d.Checklist.Frontend.Dir
}

func (d Deps) hasFrontend() bool {
	return d.Workspace.IsDir(d.frontendDir())
}

func (d Deps) frontendFile(name string) string {
	return path.Join(d.frontendDir(), name)
}

// runIn runs command in the project directory rel. ran is false when the
// command is not configured.
func (d Deps) runIn(ctx context.Context, rel, command string) (res output.CommandResult, ran bool) {
	if strings.TrimSpace(command) == "" {
		return output.CommandResult{}, false
	}
	return d.Runner.Run(ctx, d.Workspace.Abs(rel), command), true
}

// commandStatus turns a command outcome into pass, fail or N/A plus the
// output worth showing when it failed.
func commandStatus(res output.CommandResult, ran bool) (entity.CheckStatus, string) {
	if !ran {
		return entity.StatusNotApplicable, ""
	}
	if res.Success {
		return entity.StatusPass, ""
	}
	return entity.StatusFail, failureOutput(res)
}

func failureOutput(res output.CommandResult) string {
	if s := strings.TrimSpace(res.Stderr); s != "" {
		return s
	}
	return strings.TrimSpace(res.Stdout)
}

func excerpt(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// sourceFiles lists the backend sources the static checks scan.
func (d Deps) sourceFiles() ([]string, error) {
	backend := d.Checklist.Backend
	files, err := d.Workspace.Files(backend.SourceGlobs, backend.SourceExcludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("scan sources: %w", err)
	}
	return files, nil
}
