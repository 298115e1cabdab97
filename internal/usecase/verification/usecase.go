package verification

import (
	"context"
	"fmt"
	"time"

	"github.com/Raghavaaa/lindia-b/internal/application/port/input"
	"github.com/Raghavaaa/lindia-b/internal/application/port/output"
	"github.com/Raghavaaa/lindia-b/internal/domain/entity"

	"github.com/google/uuid"
)

var _ input.Verifier = (*UseCase)(nil)

type Config struct {
	Registry output.CheckRegistry
	Git      output.GitPort
	Store    output.ReportStore
	Reporter output.Reporter
	Logger   output.LoggerPort
}

// UseCase runs every registered check against the current commit, writes
// the text and JSON reports and decides whether the push may proceed.
type UseCase struct {
	registry output.CheckRegistry
	git      output.GitPort
	store    output.ReportStore
	reporter output.Reporter
	logger   output.LoggerPort
	now      func() time.Time
	newID    func() string
}

func New(cfg Config) *UseCase {
	log := cfg.Logger
	if log == nil {
		log = output.NopLogger{}
	}
	return &UseCase{
		registry: cfg.Registry,
		git:      cfg.Git,
		store:    cfg.Store,
		reporter: cfg.Reporter,
		logger:   log,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

func (uc *UseCase) Verify(ctx context.Context) (*entity.VerificationReport, error) {
	report := &entity.VerificationReport{
		RunID:        uc.newID(),
		CommitHash:   uc.commit(ctx),
		Timestamp:    uc.now(),
		ChangedFiles: uc.changedFiles(ctx),
	}

	uc.reporter.Header("LINDIA PRE-DEPLOYMENT V&V SYSTEM")
	uc.reporter.Info("Commit: %s", shortHash(report.CommitHash))
	uc.reporter.Info("Timestamp: %s", report.Timestamp.Format(time.RFC3339))
	uc.reporter.Info("Changed files: %d", len(report.ChangedFiles))

	checks := uc.registry.All()
	for i, check := range checks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		uc.reporter.Section(fmt.Sprintf("CHECK %d: %s", i+1, check.Name()))
		result := uc.runCheck(ctx, check)
		report.Checks = append(report.Checks, result)
		if result.Passed() {
			report.PassedChecks++
		}
	}
	report.TotalChecks = len(checks)
	report.OverallStatus = entity.StatusHoldForReview
	if report.AllPassed() {
		report.OverallStatus = entity.StatusSafeToPush
	}

	uc.logger.Info("Verification finished",
		"run_id", report.RunID,
		"commit", report.CommitHash,
		"passed", report.PassedChecks,
		"total", report.TotalChecks,
		"status", report.OverallStatus,
	)

	uc.reporter.Header("📋 PRE-DEPLOYMENT QA REPORT")
	text := RenderText(report)
	uc.reporter.Print(text)

	textPath, jsonPath, err := uc.store.SaveVerification(ctx, report, text)
	if err != nil {
		return report, fmt.Errorf("save verification report: %w", err)
	}
	report.TextReportPath, report.JSONReportPath = textPath, jsonPath
	uc.reporter.Success("📄 Report saved to: %s", textPath)
	uc.reporter.Success("📊 JSON report saved to: %s", jsonPath)

	if report.AllPassed() {
		uc.reporter.Success("\n✅ VERIFICATION PASSED - Safe to push")
	} else {
		uc.reporter.Fail("\n❌ VERIFICATION FAILED - Push blocked")
		uc.reporter.Warn("Push blocked by V&V system. Fix issues before proceeding.")
	}
	return report, nil
}

// runCheck never lets a broken check abort the run: errors and panics are
// recorded as a failed result.
func (uc *UseCase) runCheck(ctx context.Context, check output.CheckPort) (result entity.CheckResult) {
	name := check.Name()
	defer func() {
		if r := recover(); r != nil {
			uc.logger.Error("Check panicked", "check", name, "panic", r)
			result = crashed(name, fmt.Sprint(r))
			uc.reporter.Fail("❌ %s check crashed: %v", name, r)
		}
	}()

	res, err := check.Run(ctx)
	if err != nil {
		uc.logger.Warn("Check failed to run", "check", name, "error", err)
		uc.reporter.Fail("❌ %s check crashed: %v", name, err)
		return crashed(name, err.Error())
	}
	res.Name = name
	return res
}

func crashed(name entity.CheckName, msg string) entity.CheckResult {
	return entity.CheckResult{Name: name, Overall: entity.StatusFail, Error: msg}
}

func (uc *UseCase) commit(ctx context.Context) string {
	hash, err := uc.git.HeadCommit(ctx)
	if err != nil {
		uc.logger.Warn("Could not resolve HEAD", "error", err)
		return entity.UnknownCommit
	}
	return hash
}

func (uc *UseCase) changedFiles(ctx context.Context) []string {
	files, err := uc.git.ChangedFiles(ctx)
	if err != nil {
		uc.logger.Warn("Could not list changed files", "error", err)
	}
	if files == nil {
		files = []string{}
	}
	return files
}

func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
