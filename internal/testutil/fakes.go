// Package testutil holds in-memory stand-ins for the V&V ports shared by the
// use case tests.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/Raghavaaa/lindia-b/internal/application/port/output"
	"github.com/Raghavaaa/lindia-b/internal/domain/entity"
	"github.com/Raghavaaa/lindia-b/internal/infrastructure/fsscan"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const WorkspaceRoot = "/srv/lindia-b"

// MemWorkspace builds a workspace over an in-memory tree. Keys are paths
// relative to the project root.
func MemWorkspace(t *testing.T, files map[string]string) *fsscan.Workspace {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fsys, name, []byte(content), 0o644))
	}
	return fsscan.NewWorkspace(fsys, WorkspaceRoot)
}

// Reporter records every line it is asked to print.
type Reporter struct {
	mu    sync.Mutex
	Lines []string
}

var _ output.Reporter = (*Reporter)(nil)

func (r *Reporter) add(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Lines = append(r.Lines, line)
}

func (r *Reporter) Header(title string)  { r.add("== " + title) }
func (r *Reporter) Section(title string) { r.add("## " + title) }

func (r *Reporter) Check(name string, ok bool, details string) {
	mark := "FAIL"
	if ok {
		mark = "OK"
	}
	r.add(strings.TrimSpace(fmt.Sprintf("%s %s %s", mark, name, details)))
}

func (r *Reporter) Info(format string, args ...any)    { r.add(fmt.Sprintf(format, args...)) }
func (r *Reporter) Success(format string, args ...any) { r.add(fmt.Sprintf(format, args...)) }
func (r *Reporter) Warn(format string, args ...any)    { r.add("WARN " + fmt.Sprintf(format, args...)) }
func (r *Reporter) Fail(format string, args ...any)    { r.add(fmt.Sprintf(format, args...)) }
func (r *Reporter) Print(text string)                  { r.add(text) }

// Output joins everything recorded so far.
func (r *Reporter) Output() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.Join(r.Lines, "\n")
}

type RunCall struct {
	Dir     string
	Command string
}

// Runner answers commands from a table. Commands missing from the table
// succeed with empty output.
type Runner struct {
	mu      sync.Mutex
	Results map[string]output.CommandResult
	Calls   []RunCall
}

var _ output.CommandRunner = (*Runner)(nil)

func NewRunner(results map[string]output.CommandResult) *Runner {
	if results == nil {
		results = map[string]output.CommandResult{}
	}
	return &Runner{Results: results}
}

func (r *Runner) Run(_ context.Context, dir string, command string) output.CommandResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, RunCall{Dir: dir, Command: command})
	if res, ok := r.Results[command]; ok {
		return res
	}
	return output.CommandResult{Success: true}
}

// Ran reports whether command was run at least once.
func (r *Runner) Ran(command string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.Calls {
		if c.Command == command {
			return true
		}
	}
	return false
}

// Git is a fixed repository view that records created tags.
type Git struct {
	Head     string
	HeadErr  error
	Changed  []string
	Commits  map[string]entity.CommitInfo
	TagErr   error
	mu       sync.Mutex
	Tags     map[string]string
	TagNotes map[string]string
}

var _ output.GitPort = (*Git)(nil)

func (g *Git) HeadCommit(context.Context) (string, error) {
	if g.HeadErr != nil {
		return "", g.HeadErr
	}
	return g.Head, nil
}

func (g *Git) ChangedFiles(context.Context) ([]string, error) {
	return g.Changed, nil
}

func (g *Git) CommitInfo(_ context.Context, hash string) (entity.CommitInfo, error) {
	if info, ok := g.Commits[hash]; ok {
		return info, nil
	}
	return entity.CommitInfo{}, fmt.Errorf("commit %s not found", hash)
}

func (g *Git) CreateTag(_ context.Context, name, hash, message string) error {
	if g.TagErr != nil {
		return g.TagErr
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Tags == nil {
		g.Tags, g.TagNotes = map[string]string{}, map[string]string{}
	}
	g.Tags[name] = hash
	g.TagNotes[name] = message
	return nil
}
