package verification

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/Raghavaaa/lindia-b/internal/application/port/output"
	"github.com/Raghavaaa/lindia-b/internal/domain/entity"
)

var (
	_ output.CheckPort = (*LintCheck)(nil)
	_ output.CheckPort = (*TypeCheck)(nil)
	_ output.CheckPort = (*TestCheck)(nil)
	_ output.CheckPort = (*BuildCheck)(nil)
	_ output.CheckPort = (*AuditCheck)(nil)
)

var vulnerabilityCount = regexp.MustCompile(`(\d+) vulnerabilities`)

// LintCheck runs the backend linter and, when a frontend exists, its lint
// script. A frontend without a working lint script is not configured rather
// than failing.
type LintCheck struct{ Deps }

func NewLintCheck(d Deps) *LintCheck { return &LintCheck{d} }

func (c *LintCheck) Name() entity.CheckName { return entity.CheckLinting }

func (c *LintCheck) Run(ctx context.Context) (entity.CheckResult, error) {
	res, ran := c.runIn(ctx, ".", c.Checklist.Backend.Lint)
	backend, details := commandStatus(res, ran)
	c.Reporter.Check("Backend linting", backend.OK(), details)

	frontend := entity.StatusNotApplicable
	if c.hasFrontend() {
		res, ran := c.runIn(ctx, c.frontendDir(), c.Checklist.Frontend.Lint)
		if ran && res.Success {
			frontend = entity.StatusPass
			c.Reporter.Check("Frontend linting", true, "")
		} else {
			frontend = entity.StatusNotConfigured
			c.Reporter.Warn("Frontend linting not configured")
		}
	}

	return entity.CheckResult{
		Overall: entity.StatusOf(backend.OK() && frontend.OK()),
		Fields: entity.Fields{
			{Key: "backend", Value: backend},
			{Key: "frontend", Value: frontend},
		},
	}, nil
}

type TypeCheck struct{ Deps }

func NewTypeCheck(d Deps) *TypeCheck { return &TypeCheck{d} }

func (c *TypeCheck) Name() entity.CheckName { return entity.CheckTypeSafety }

func (c *TypeCheck) Run(ctx context.Context) (entity.CheckResult, error) {
	res, ran := c.runIn(ctx, ".", c.Checklist.Backend.TypeCheck)
	backend, details := commandStatus(res, ran)
	c.Reporter.Check("Backend type checking", backend.OK(), details)

	frontend := entity.StatusNotApplicable
	var frontendErrors string
	if c.hasFrontend() {
		res, ran := c.runIn(ctx, c.frontendDir(), c.Checklist.Frontend.TypeCheck)
		frontend, frontendErrors = commandStatus(res, ran)
		frontendErrors = excerpt(frontendErrors, stderrExcerptLen)
		c.Reporter.Check("Frontend TypeScript", frontend.OK(), frontendErrors)
	}

	fields := entity.Fields{
		{Key: "backend", Value: backend},
		{Key: "frontend", Value: frontend},
	}
	if frontendErrors != "" {
		fields.Set("frontend_errors", frontendErrors)
	}
	return entity.CheckResult{
		Overall: entity.StatusOf(backend.OK() && frontend.OK()),
		Fields:  fields,
	}, nil
}

// TestCheck runs the unit suite and, when its directory exists, the
// integration suite. Integration results are informational.
type TestCheck struct{ Deps }

func NewTestCheck(d Deps) *TestCheck { return &TestCheck{d} }

func (c *TestCheck) Name() entity.CheckName { return entity.CheckTests }

func (c *TestCheck) Run(ctx context.Context) (entity.CheckResult, error) {
	backend := c.Checklist.Backend

	res, ran := c.runIn(ctx, ".", backend.Test)
	unit, details := commandStatus(res, ran)
	if unit == entity.StatusFail && c.reportsNoTests(res) {
		unit, details = entity.StatusNoTests, ""
	}
	switch unit {
	case entity.StatusNoTests:
		c.Reporter.Check("Unit tests (no tests found)", true, "")
	default:
		c.Reporter.Check("Unit tests", unit.OK(), details)
	}

	integration := entity.StatusNotApplicable
	if backend.IntegrationTestDir != "" && c.Workspace.IsDir(backend.IntegrationTestDir) {
		res, ran := c.runIn(ctx, ".", backend.IntegrationTest)
		integration, details = commandStatus(res, ran)
		if integration == entity.StatusFail && c.reportsNoTests(res) {
			integration = entity.StatusNoTests
		}
		if integration == entity.StatusFail {
			c.Reporter.Warn("Integration tests failed: %s", excerpt(details, stderrExcerptLen))
		} else {
			c.Reporter.Check("Integration tests", true, "")
		}
	}

	return entity.CheckResult{
		Overall: entity.StatusOf(unit.OK()),
		Fields: entity.Fields{
			{Key: "unit_tests", Value: unit},
			{Key: "integration_tests", Value: integration},
		},
	}, nil
}

func (c *TestCheck) reportsNoTests(res output.CommandResult) bool {
	out := strings.ToLower(res.Stdout + "\n" + res.Stderr)
	for _, marker := range c.Checklist.Backend.NoTestsMarkers {
		if marker != "" && strings.Contains(out, strings.ToLower(marker)) {
			return true
		}
	}
	return false
}

type BuildCheck struct{ Deps }

func NewBuildCheck(d Deps) *BuildCheck { return &BuildCheck{d} }

func (c *BuildCheck) Name() entity.CheckName { return entity.CheckBuild }

func (c *BuildCheck) Run(ctx context.Context) (entity.CheckResult, error) {
	res, ran := c.runIn(ctx, ".", c.Checklist.Backend.Build)
	backend, details := commandStatus(res, ran)
	c.Reporter.Check("Backend build", backend.OK(), details)

	frontend := entity.StatusNotApplicable
	if c.Workspace.Exists(c.frontendFile("package.json")) {
		res, ran := c.runIn(ctx, c.frontendDir(), c.Checklist.Frontend.Build)
		frontend, details = commandStatus(res, ran)
		c.Reporter.Check("Frontend build", frontend.OK(), details)
	}

	return entity.CheckResult{
		Overall: entity.StatusOf(backend.OK() && frontend.OK()),
		Fields: entity.Fields{
			{Key: "backend", Value: backend},
			{Key: "frontend", Value: frontend},
		},
	}, nil
}

// AuditCheck audits backend and frontend dependencies. Only a backend audit
// failure or a parsed frontend vulnerability count fails it.
type AuditCheck struct{ Deps }

func NewAuditCheck(d Deps) *AuditCheck { return &AuditCheck{d} }

func (c *AuditCheck) Name() entity.CheckName { return entity.CheckDependency }

func (c *AuditCheck) Run(ctx context.Context) (entity.CheckResult, error) {
	backend := entity.StatusNotApplicable
	if c.Workspace.Exists(c.Checklist.Backend.Manifest) {
		res, ran := c.runIn(ctx, ".", c.Checklist.Backend.Audit)
		var details string
		backend, details = commandStatus(res, ran)
		c.Reporter.Check("Backend dependencies", backend.OK(), details)
	}

	frontend := entity.StatusNotApplicable
	vulnerabilities := 0
	if c.Workspace.Exists(c.frontendFile("package.json")) {
		res, ran := c.runIn(ctx, c.frontendDir(), c.Checklist.Frontend.Audit)
		frontend, _ = commandStatus(res, ran)
		if frontend == entity.StatusFail {
			vulnerabilities = parseVulnerabilities(res.Stdout)
		}
		c.Reporter.Check("Frontend dependencies", vulnerabilities == 0,
			strconv.Itoa(vulnerabilities)+" high severity vulnerabilities")
	}

	return entity.CheckResult{
		Overall: entity.StatusOf(backend.OK() && vulnerabilities == 0),
		Fields: entity.Fields{
			{Key: "backend", Value: backend},
			{Key: "frontend", Value: frontend},
			{Key: "vulnerabilities", Value: vulnerabilities},
		},
	}, nil
}

func parseVulnerabilities(out string) int {
	m := vulnerabilityCount.FindStringSubmatch(out)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
