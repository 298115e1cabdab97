package verification

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/Raghavaaa/lindia-b/internal/application/port/output"
	"github.com/Raghavaaa/lindia-b/internal/domain/entity"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	_ output.CheckPort = (*APICheck)(nil)
	_ output.CheckPort = (*EnvironmentCheck)(nil)
	_ output.CheckPort = (*UICheck)(nil)
)

// APICheck looks for the expected endpoints among the path literals in the
// backend sources. A nested route counts when both its prefix and its
// remainder appear as literals, as with chi's r.Route("/api/v1", ...).
type APICheck struct{ Deps }

func NewAPICheck(d Deps) *APICheck { return &APICheck{d} }

func (c *APICheck) Name() entity.CheckName { return entity.CheckAPIHealth }

func (c *APICheck) Run(_ context.Context) (entity.CheckResult, error) {
	api := c.Checklist.API

	sources, err := c.sourceFiles()
	if err != nil {
		return entity.CheckResult{}, err
	}
	literals := make(map[string]struct{})
	for _, file := range sources {
		data, err := c.Workspace.ReadFile(file)
		if err != nil {
			return entity.CheckResult{}, fmt.Errorf("read %s: %w", file, err)
		}
		for _, lit := range PathLiterals(string(data)) {
			literals[normalizeRoute(lit)] = struct{}{}
		}
	}

	found := make([]string, 0, len(api.Endpoints))
	for _, ep := range api.Endpoints {
		if routeDeclared(normalizeRoute(ep), literals) {
			found = append(found, ep)
		}
	}

	ok := len(found) >= api.MinEndpoints
	c.Reporter.Check(fmt.Sprintf("API endpoints defined: %d/%d", len(found), len(api.Endpoints)), ok, strings.Join(found, ", "))

	return entity.CheckResult{
		Overall: entity.StatusOf(ok),
		Fields: entity.Fields{
			{Key: "endpoints_tested", Value: len(api.Endpoints)},
			{Key: "endpoints_passed", Value: len(found)},
			{Key: "found", Value: found},
			{Key: "files_scanned", Value: len(sources)},
		},
	}, nil
}

var pathLiteral = regexp.MustCompile("[\"'`](/[^\"'`\\s]*)[\"'`]")

// PathLiterals returns the quoted strings in src that start with a slash.
func PathLiterals(src string) []string {
	matches := pathLiteral.FindAllStringSubmatch(src, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

func routeDeclared(route string, literals map[string]struct{}) bool {
	if _, ok := literals[route]; ok {
		return true
	}
	for i := 1; i < len(route); i++ {
		if route[i] != '/' {
			continue
		}
		_, prefix := literals[route[:i]]
		_, rest := literals[route[i:]]
		if prefix && rest {
			return true
		}
	}
	return false
}

func normalizeRoute(r string) string {
	if r == "" || r == "/" {
		return "/"
	}
	return "/" + strings.Trim(r, "/")
}

// EnvironmentCheck requires an env file and scans backend sources for
// credentials assigned inline.
type EnvironmentCheck struct{ Deps }

func NewEnvironmentCheck(d Deps) *EnvironmentCheck { return &EnvironmentCheck{d} }

func (c *EnvironmentCheck) Name() entity.CheckName { return entity.CheckEnvironment }

func (c *EnvironmentCheck) Run(_ context.Context) (entity.CheckResult, error) {
	env := c.Checklist.Environment

	envFiles := make([]string, 0, len(env.EnvFiles))
	for _, f := range env.EnvFiles {
		if c.Workspace.Exists(f) {
			envFiles = append(envFiles, f)
		}
	}
	hasEnv := len(envFiles) > 0
	c.Reporter.Check("Environment file exists", hasEnv, strings.Join(envFiles, ", "))

	sources, err := c.sourceFiles()
	if err != nil {
		return entity.CheckResult{}, err
	}

	findings := make([]string, 0)
	for _, file := range sources {
		data, err := c.Workspace.ReadFile(file)
		if err != nil {
			return entity.CheckResult{}, fmt.Errorf("read %s: %w", file, err)
		}
		for _, pattern := range FindSecrets(string(data), env.SecretPatterns, env.SafeAccessors, env.Window) {
			findings = append(findings, pattern+" in "+file)
		}
	}
	clean := len(findings) == 0
	if clean {
		c.Reporter.Check("No hardcoded secrets", true, "")
	} else {
		c.Reporter.Check("Potential hardcoded secrets", false, strings.Join(findings, "; "))
	}

	fields := entity.Fields{
		{Key: "env_file_exists", Value: entity.StatusOf(hasEnv)},
		{Key: "env_files", Value: envFiles},
		{Key: "no_hardcoded_secrets", Value: entity.StatusOf(clean)},
		{Key: "files_scanned", Value: len(sources)},
	}
	if !clean {
		fields.Set("secrets_found", findings)
	}
	return entity.CheckResult{
		Overall: entity.StatusOf(hasEnv && clean),
		Fields:  fields,
	}, nil
}

// FindSecrets returns the patterns that occur in content, case-insensitively,
// without one of the accessors within window bytes of the match.
func FindSecrets(content string, patterns, accessors []string, window int) []string {
	lower := strings.ToLower(content)
	var hits []string
	for _, pattern := range patterns {
		p := strings.ToLower(pattern)
		if p == "" {
			continue
		}
		for offset := 0; ; {
			idx := strings.Index(lower[offset:], p)
			if idx < 0 {
				break
			}
			start := offset + idx
			end := min(start+window, len(lower))
			if !containsAny(lower[start:end], accessors) {
				hits = append(hits, pattern)
				break
			}
			offset = start + len(p)
		}
	}
	return hits
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}

// UICheck counts frontend components.
type UICheck struct{ Deps }

func NewUICheck(d Deps) *UICheck { return &UICheck{d} }

func (c *UICheck) Name() entity.CheckName { return entity.CheckUI }

func (c *UICheck) Run(_ context.Context) (entity.CheckResult, error) {
	if !c.hasFrontend() {
		c.Reporter.Warn("No frontend directory, skipping UI check")
		return notApplicableUI(), nil
	}

	pattern := c.frontendFile(c.Checklist.Frontend.Components)
	base, _ := doublestar.SplitPattern(pattern)
	if !c.Workspace.IsDir(base) {
		c.Reporter.Warn("No %s directory, skipping UI check", path.Base(base))
		return notApplicableUI(), nil
	}

	components, err := c.Workspace.Glob(pattern)
	if err != nil {
		return entity.CheckResult{}, fmt.Errorf("scan components: %w", err)
	}
	ok := len(components) > 0
	c.Reporter.Check(fmt.Sprintf("React components found: %d", len(components)), ok, "")

	return entity.CheckResult{
		Overall: entity.StatusOf(ok),
		Fields: entity.Fields{
			{Key: "components_valid", Value: entity.StatusOf(ok)},
			{Key: "components", Value: len(components)},
		},
	}, nil
}

func notApplicableUI() entity.CheckResult {
	return entity.CheckResult{
		Overall: entity.StatusNotApplicable,
		Fields:  entity.Fields{{Key: "components_valid", Value: entity.StatusNotApplicable}},
	}
}
