package report

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Raghavaaa/lindia-b/internal/domain/entity"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixed = time.Date(2025, time.June, 1, 14, 5, 9, 0, time.UTC)

func newMemStore() (*Store, afero.Fs) {
	fsys := afero.NewMemMapFs()
	return NewStore(Config{Fs: fsys, Dir: "/proj"}).WithClock(func() time.Time { return fixed }), fsys
}

func TestSaveVerification(t *testing.T) {
	s, fsys := newMemStore()
	report := &entity.VerificationReport{
		RunID:      "run-1",
		CommitHash: "abc123",
		Timestamp:  fixed,
		Checks: entity.CheckResults{
			{Name: entity.CheckAPIHealth, Overall: entity.StatusPass, Fields: entity.Fields{{Key: "endpoints_tested", Value: 4}}},
			{Name: entity.CheckUI, Overall: entity.StatusNotApplicable},
		},
		ChangedFiles:  []string{"main.go"},
		OverallStatus: entity.StatusSafeToPush,
		PassedChecks:  2,
		TotalChecks:   2,
	}

	txt, js, err := s.SaveVerification(context.Background(), report, "REPORT")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/proj", "vv_report_20250601_140509.txt"), txt)
	assert.Equal(t, filepath.Join("/proj", "vv_report_20250601_140509.json"), js)

	text, err := afero.ReadFile(fsys, "vv_report_20250601_140509.txt")
	require.NoError(t, err)
	assert.Equal(t, "REPORT", string(text))

	data, err := afero.ReadFile(fsys, "vv_report_20250601_140509.json")
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "SAFE_TO_PUSH", decoded["overall_status"])
	assert.Equal(t, "abc123", decoded["commit_hash"])
	assert.Equal(t, map[string]any{
		"API Health":     map[string]any{"overall": true, "endpoints_tested": float64(4)},
		"UI Consistency": map[string]any{"overall": "N/A"},
	}, decoded["checks"])
}

func TestSaveIntegrationAndRollback(t *testing.T) {
	s, fsys := newMemStore()
	ctx := context.Background()

	path, err := s.SaveIntegration(ctx, &entity.IntegrationReport{
		Timestamp: fixed,
		Frontend:  entity.ComponentResult{Component: entity.ComponentFrontend, Overall: entity.StatusNotApplicable, Reason: "Frontend not present"},
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/proj", "integration_validation_20250601_140509.json"), path)
	ok, err := afero.Exists(fsys, "integration_validation_20250601_140509.json")
	require.NoError(t, err)
	assert.True(t, ok)

	path, err = s.SaveRollback(ctx, entity.RollbackLog{
		Timestamp:  fixed,
		FromCommit: "bad",
		ToCommit:   "good",
		Reason:     "V&V validation failed",
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/proj", "rollback_log_20250601_140509.json"), path)

	data, err := afero.ReadFile(fsys, "rollback_log_20250601_140509.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"timestamp":"2025-06-01T14:05:09Z","from_commit":"bad","to_commit":"good","reason":"V&V validation failed"}`, string(data))
}

func TestHistory(t *testing.T) {
	s, fsys := newMemStore()
	ctx := context.Background()

	history, err := s.LoadHistory(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)

	require.NoError(t, s.AppendHistory(ctx, entity.DeploymentRecord{DeploymentID: "deploy_1", BuildNumber: 1, Status: entity.StatusSafeToPush}))
	require.NoError(t, s.AppendHistory(ctx, entity.DeploymentRecord{DeploymentID: "deploy_2", BuildNumber: 2, Status: entity.StatusHoldForReview}))

	history, err = s.LoadHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "deploy_1", history[0].DeploymentID)
	assert.Equal(t, entity.StatusHoldForReview, history[1].Status)

	require.NoError(t, afero.WriteFile(fsys, HistoryFile, []byte("{not json"), 0o644))
	history, err = s.LoadHistory(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestAppendHistory_ConcurrentOnDisk(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(Config{Dir: dir})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			assert.NoError(t, s.AppendHistory(ctx, entity.DeploymentRecord{BuildNumber: n}))
		}(i)
	}
	wg.Wait()

	history, err := s.LoadHistory(ctx)
	require.NoError(t, err)
	assert.Len(t, history, 8)
}
