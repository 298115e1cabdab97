package verification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Raghavaaa/lindia-b/internal/application/service"
	"github.com/Raghavaaa/lindia-b/internal/domain/entity"
	"github.com/Raghavaaa/lindia-b/internal/infrastructure/report"
	"github.com/Raghavaaa/lindia-b/internal/testutil"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type funcCheck struct {
	name entity.CheckName
	run  func() (entity.CheckResult, error)
}

func (f funcCheck) Name() entity.CheckName { return f.name }

func (f funcCheck) Run(context.Context) (entity.CheckResult, error) { return f.run() }

func passing(name entity.CheckName) funcCheck {
	return funcCheck{name: name, run: func() (entity.CheckResult, error) {
		return entity.CheckResult{Overall: entity.StatusPass, Fields: entity.Fields{{Key: "backend", Value: entity.StatusPass}}}, nil
	}}
}

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func newUseCase(t *testing.T, git *testutil.Git, checks ...funcCheck) (*UseCase, afero.Fs, *testutil.Reporter) {
	t.Helper()
	registry := service.NewCheckRegistry()
	for _, c := range checks {
		registry.Register(c)
	}
	fsys := afero.NewMemMapFs()
	rep := &testutil.Reporter{}
	uc := New(Config{
		Registry: registry,
		Git:      git,
		Store:    report.NewStore(report.Config{Fs: fsys, Dir: "/srv/lindia-b"}).WithClock(func() time.Time { return fixedNow }),
		Reporter: rep,
	}).WithClock(func() time.Time { return fixedNow })
	uc.newID = func() string { return "run-1" }
	return uc, fsys, rep
}

func TestVerify_AllPassed(t *testing.T) {
	git := &testutil.Git{Head: "0123456789abcdef", Changed: []string{"cmd/server/main.go"}}
	uc, fsys, rep := newUseCase(t, git, passing(entity.CheckLinting), passing(entity.CheckBuild))

	r, err := uc.Verify(context.Background())
	require.NoError(t, err)

	assert.Equal(t, entity.StatusSafeToPush, r.OverallStatus)
	assert.True(t, r.AllPassed())
	assert.Equal(t, 2, r.PassedChecks)
	assert.Equal(t, "run-1", r.RunID)
	assert.Equal(t, "/srv/lindia-b/vv_report_20250314_092653.txt", r.TextReportPath)
	assert.Contains(t, rep.Output(), "## CHECK 1: Syntax & Linting")
	assert.Contains(t, rep.Output(), "VERIFICATION PASSED")

	data, err := afero.ReadFile(fsys, "vv_report_20250314_092653.json")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "0123456789abcdef", doc["commit_hash"])
	assert.Equal(t, "SAFE_TO_PUSH", doc["overall_status"])
	checks := doc["checks"].(map[string]any)
	assert.Equal(t, true, checks["Syntax & Linting"].(map[string]any)["overall"])

	text, err := afero.ReadFile(fsys, "vv_report_20250314_092653.txt")
	require.NoError(t, err)
	assert.Contains(t, string(text), "  - cmd/server/main.go")
	assert.Contains(t, string(text), "  ✅ PASS - Build Integrity")
}

func TestVerify_CrashedChecksAreRecorded(t *testing.T) {
	git := &testutil.Git{HeadErr: errors.New("not a git repository")}
	panicking := funcCheck{name: entity.CheckUI, run: func() (entity.CheckResult, error) {
		panic("index out of range")
	}}
	erroring := funcCheck{name: entity.CheckAPIHealth, run: func() (entity.CheckResult, error) {
		return entity.CheckResult{}, errors.New("router unavailable")
	}}
	uc, _, rep := newUseCase(t, git, passing(entity.CheckLinting), erroring, panicking)

	r, err := uc.Verify(context.Background())
	require.NoError(t, err)

	assert.Equal(t, entity.UnknownCommit, r.CommitHash)
	assert.Equal(t, []string{}, r.ChangedFiles)
	assert.Equal(t, entity.StatusHoldForReview, r.OverallStatus)
	assert.Equal(t, 1, r.PassedChecks)
	assert.Equal(t, 3, r.TotalChecks)

	require.Len(t, r.Checks, 3)
	assert.Equal(t, entity.CheckAPIHealth, r.Checks[1].Name)
	assert.Equal(t, "router unavailable", r.Checks[1].Error)
	assert.Equal(t, entity.StatusFail, r.Checks[2].Overall)
	assert.Equal(t, "index out of range", r.Checks[2].Error)
	assert.Contains(t, rep.Output(), "Push blocked")
}

func TestVerify_NotApplicableCountsAsPassed(t *testing.T) {
	na := funcCheck{name: entity.CheckUI, run: func() (entity.CheckResult, error) {
		return entity.CheckResult{Overall: entity.StatusNotApplicable}, nil
	}}
	uc, _, _ := newUseCase(t, &testutil.Git{Head: "abc"}, na)

	r, err := uc.Verify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.StatusSafeToPush, r.OverallStatus)
}

func TestRenderText(t *testing.T) {
	r := &entity.VerificationReport{
		RunID:         "run-1",
		CommitHash:    "abc123",
		Timestamp:     fixedNow,
		ChangedFiles:  []string{"go.mod"},
		OverallStatus: entity.StatusHoldForReview,
		PassedChecks:  0,
		TotalChecks:   1,
		Checks: entity.CheckResults{{
			Name:    entity.CheckAPIHealth,
			Overall: entity.StatusFail,
			Fields: entity.Fields{
				{Key: "endpoints_passed", Value: 1},
				{Key: "found", Value: []string{"/health"}},
			},
			Error: "boom",
		}},
	}

	text := RenderText(r)
	assert.Contains(t, text, "LINDIA PRE-DEPLOYMENT QA REPORT")
	assert.Contains(t, text, "Commit Hash: abc123\n")
	assert.Contains(t, text, "  Passed: 0/1\n")
	assert.Contains(t, text, "  ❌ FAIL - API Health\n")
	assert.Contains(t, text, "      found: [/health]\n")
	assert.Contains(t, text, "      error: boom\n")
	assert.Contains(t, text, "DEPLOYMENT RECOMMENDATION:\n  HOLD_FOR_REVIEW\n")
}
