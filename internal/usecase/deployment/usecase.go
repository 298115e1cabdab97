package deployment

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Raghavaaa/lindia-b/internal/application/port/input"
	"github.com/Raghavaaa/lindia-b/internal/application/port/output"
	"github.com/Raghavaaa/lindia-b/internal/domain/entity"
)

var _ input.Deployer = (*UseCase)(nil)

const (
	idStampLayout  = "20060102_150405"
	tagDateLayout  = "20060102"
	rollbackReason = "V&V validation failed"
)

type Config struct {
	Verifier input.Verifier
	// Integrator is optional; without it the integration stage is skipped.
	Integrator input.IntegrationValidator
	Git        output.GitPort
	Store      output.ReportStore
	Reporter   output.Reporter
	Logger     output.LoggerPort
}

// UseCase gates a deployment on the V&V run: it records every attempt in
// the deployment history, tags approved commits and prepares a rollback to
// the last safe commit when the gate fails. The rollback itself is left to
// the operator.
type UseCase struct {
	verifier   input.Verifier
	integrator input.IntegrationValidator
	git        output.GitPort
	store      output.ReportStore
	reporter   output.Reporter
	logger     output.LoggerPort
	now        func() time.Time
}

func New(cfg Config) *UseCase {
	log := cfg.Logger
	if log == nil {
		log = output.NopLogger{}
	}
	return &UseCase{
		verifier:   cfg.Verifier,
		integrator: cfg.Integrator,
		git:        cfg.Git,
		store:      cfg.Store,
		reporter:   cfg.Reporter,
		logger:     log,
		now:        time.Now,
	}
}

func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

func (uc *UseCase) Deploy(ctx context.Context) (*entity.DeploymentOutcome, error) {
	uc.reporter.Header("🚀 LINDIA AUTOMATED DEPLOYMENT WORKFLOW")

	commit := entity.UnknownCommit
	if hash, err := uc.git.HeadCommit(ctx); err != nil {
		uc.logger.Warn("Could not resolve HEAD", "error", err)
	} else {
		commit = hash
	}
	uc.reporter.Info("Current commit: %s", short(commit))

	history, err := uc.store.LoadHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("load deployment history: %w", err)
	}
	build := len(history) + 1
	uc.reporter.Info("Build number: %d", build)

	passed, status, reportFile := uc.verify(ctx)
	integration := uc.integrate(ctx)

	now := uc.now()
	record := entity.DeploymentRecord{
		DeploymentID:      "deploy_" + now.Format(idStampLayout),
		Timestamp:         now,
		CommitHash:        commit,
		CommitInfo:        uc.commitInfo(ctx, commit),
		BuildNumber:       build,
		VVStatus:          status,
		Status:            status,
		VVPassed:          passed,
		ReportFile:        reportFile,
		IntegrationStatus: integration,
	}
	if err := uc.store.AppendHistory(ctx, record); err != nil {
		return nil, fmt.Errorf("record deployment: %w", err)
	}
	uc.logger.Info("Deployment recorded",
		"deployment_id", record.DeploymentID,
		"commit", commit,
		"build", build,
		"status", status,
		"integration", integration,
	)

	outcome := &entity.DeploymentOutcome{Record: record, Approved: passed}
	if passed {
		uc.approve(ctx, outcome)
		return outcome, nil
	}

	uc.reporter.Fail("\n❌ DEPLOYMENT REJECTED")
	if safe := lastSafeCommit(append(history, record)); safe != "" {
		outcome.SafeCommit = safe
		uc.reporter.Warn("Last safe commit found: %s", short(safe))
		path, err := uc.prepareRollback(ctx, commit, safe)
		if err != nil {
			return outcome, err
		}
		outcome.RollbackLogRef = path
	} else {
		uc.reporter.Warn("No previous safe commit found")
		uc.reporter.Warn("Fix validation issues before proceeding")
	}
	uc.reporter.Fail("\n❌ HOLD FOR REVIEW")
	return outcome, nil
}

func (uc *UseCase) verify(ctx context.Context) (bool, entity.OverallStatus, string) {
	uc.reporter.Header("RUNNING VERIFICATION & VALIDATION")
	report, err := uc.verifier.Verify(ctx)
	if report == nil {
		uc.logger.Error("Verification did not complete", "error", err)
		uc.reporter.Fail("❌ V&V run failed: %v", err)
		return false, entity.StatusUnknown, ""
	}
	if err != nil {
		uc.logger.Warn("Verification report not saved", "error", err)
	}
	return report.AllPassed(), report.OverallStatus, report.JSONReportPath
}

// integrate never blocks a deployment; it only labels the record.
func (uc *UseCase) integrate(ctx context.Context) string {
	uc.reporter.Header("RUNNING INTEGRATION VALIDATION")
	if uc.integrator == nil {
		uc.reporter.Warn("Integration validators not configured - skipping")
		return entity.IntegrationSkipped
	}
	report, err := uc.integrator.Validate(ctx)
	if err != nil {
		uc.logger.Warn("Integration validation failed to run", "error", err)
		return entity.IntegrationPartial
	}
	if report.AllPassed() {
		return entity.IntegrationCompleted
	}
	return entity.IntegrationPartial
}

func (uc *UseCase) commitInfo(ctx context.Context, hash string) entity.CommitInfo {
	info, err := uc.git.CommitInfo(ctx, hash)
	if err != nil {
		uc.logger.Debug("Commit info unavailable", "commit", hash, "error", err)
		return entity.CommitInfo{Hash: hash}
	}
	return info
}

func (uc *UseCase) approve(ctx context.Context, outcome *entity.DeploymentOutcome) {
	record := outcome.Record
	uc.reporter.Success("\n✅ DEPLOYMENT APPROVED")

	date := record.Timestamp.Format(tagDateLayout)
	tag := fmt.Sprintf("release_verified_%s_%d", date, record.BuildNumber)
	message := fmt.Sprintf("Verified release: %s build %d", date, record.BuildNumber)
	uc.reporter.Info("\n🏷️  Creating version tag: %s", tag)
	outcome.Tag = tag
	if err := uc.git.CreateTag(ctx, tag, record.CommitHash, message); err != nil {
		uc.logger.Warn("Tag creation failed", "tag", tag, "error", err)
		uc.reporter.Warn("Tag creation failed or already exists")
	} else {
		outcome.TagCreated = true
		uc.reporter.Success("✅ Tag created: %s", tag)
	}

	uc.reporter.Success("\n📋 Deployment Record:")
	uc.reporter.Info("   ID: %s", record.DeploymentID)
	uc.reporter.Info("   Status: %s", record.Status)
	uc.reporter.Info("   Build: %d", record.BuildNumber)
	uc.reporter.Success("\n✅ SAFE TO PUSH")
	uc.reporter.Success("This commit has been verified and tagged.")
}

// prepareRollback writes the rollback log and prints the commands an
// operator would run. Nothing is reset or pushed.
func (uc *UseCase) prepareRollback(ctx context.Context, from, to string) (string, error) {
	uc.reporter.Header("INITIATING AUTO-ROLLBACK")
	uc.reporter.Warn("Rolling back to: %s", short(to))

	info := uc.commitInfo(ctx, to)
	uc.reporter.Info("   Commit: %s", orNA(info.Message))
	uc.reporter.Info("   Author: %s", orNA(info.Author))
	uc.reporter.Info("   Date: %s", orNA(info.Date))

	path, err := uc.store.SaveRollback(ctx, entity.RollbackLog{
		Timestamp:  uc.now(),
		FromCommit: from,
		ToCommit:   to,
		Reason:     rollbackReason,
	})
	if err != nil {
		return "", fmt.Errorf("save rollback log: %w", err)
	}
	uc.reporter.Info("\n📝 Rollback log saved: %s", filepath.Base(path))

	uc.reporter.Warn("To complete rollback, run:")
	uc.reporter.Print("    git reset --hard " + to)
	uc.reporter.Print("    git push --force origin main")
	return path, nil
}

func lastSafeCommit(history []entity.DeploymentRecord) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Status == entity.StatusSafeToPush {
			return history[i].CommitHash
		}
	}
	return ""
}

func short(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
