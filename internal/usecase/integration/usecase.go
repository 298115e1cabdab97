package integration

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Raghavaaa/lindia-b/internal/application/port/input"
	"github.com/Raghavaaa/lindia-b/internal/application/port/output"
	"github.com/Raghavaaa/lindia-b/internal/domain/entity"

	"golang.org/x/sync/errgroup"
)

var _ input.IntegrationValidator = (*UseCase)(nil)

// ComponentValidator checks one deployed component. Validation problems are
// part of the result, never an error.
type ComponentValidator interface {
	Component() entity.Component
	Validate(ctx context.Context) entity.ComponentResult
}

type Config struct {
	Validators []ComponentValidator
	Store      output.ReportStore
	Reporter   output.Reporter
	Logger     output.LoggerPort
}

// UseCase runs the component validators concurrently and reports them in
// the order they were configured.
type UseCase struct {
	validators []ComponentValidator
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
		validators: cfg.Validators,
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

func (uc *UseCase) Validate(ctx context.Context) (*entity.IntegrationReport, error) {
	uc.reporter.Header("LINDIA INTEGRATION VALIDATION SUITE")
	report := &entity.IntegrationReport{Timestamp: uc.now()}

	results := make([]entity.ComponentResult, len(uc.validators))
	g, gctx := errgroup.WithContext(ctx)
	for i, v := range uc.validators {
		i, v := i, v
		g.Go(func() error {
			start := time.Now()
			results[i] = v.Validate(gctx)
			uc.logger.Debug("Validator finished",
				"component", v.Component(),
				"overall", results[i].Overall,
				"elapsed", time.Since(start),
			)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("integration validation: %w", err)
	}

	for _, res := range results {
		uc.print(res)
		switch res.Component {
		case entity.ComponentFrontend:
			report.Frontend = res
		case entity.ComponentAIEngine:
			report.AIEngine = res
		case entity.ComponentDatabase:
			report.Database = res
		}
	}
	uc.summarize(results)

	path, err := uc.store.SaveIntegration(ctx, report)
	if err != nil {
		return report, fmt.Errorf("save integration report: %w", err)
	}
	report.ReportPath = path
	uc.reporter.Success("\n📊 Report saved to: %s", path)

	if report.AllPassed() {
		uc.reporter.Success("\n✅ ALL INTEGRATIONS VALIDATED")
	} else {
		uc.reporter.Fail("\n❌ INTEGRATION VALIDATION FAILED")
	}
	uc.logger.Info("Integration validation finished", "passed", report.AllPassed(), "report", path)
	return report, nil
}

func (uc *UseCase) print(res entity.ComponentResult) {
	uc.reporter.Header(strings.ToUpper(string(res.Component)) + " INTEGRATION VALIDATION")
	if res.Overall == entity.StatusNotApplicable {
		uc.reporter.Warn("%s", res.Reason)
		return
	}
	for _, step := range res.Steps {
		uc.reporter.Section(stepTitle(step.Name))
		if step.Warning {
			uc.reporter.Warn("%s", step.Message)
			continue
		}
		uc.reporter.Check(step.Message, step.Valid, "")
	}
}

func (uc *UseCase) summarize(results []entity.ComponentResult) {
	uc.reporter.Header("INTEGRATION VALIDATION SUMMARY")
	for _, res := range results {
		switch {
		case res.Overall == entity.StatusNotApplicable:
			uc.reporter.Info("⊘  %s: Not applicable", res.Component)
		case res.Overall.OK():
			uc.reporter.Success("✅ %s: PASSED", res.Component)
			uc.reporter.Info("   %s", res.Summary)
		default:
			uc.reporter.Fail("❌ %s: FAILED", res.Component)
			uc.reporter.Info("   %s", res.Summary)
		}
	}
}

func stepTitle(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		switch w {
		case "api", "ai":
			words[i] = strings.ToUpper(w)
		default:
			if w != "" {
				words[i] = strings.ToUpper(w[:1]) + w[1:]
			}
		}
	}
	return strings.Join(words, " ")
}
