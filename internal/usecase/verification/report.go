package verification

import (
	"fmt"
	"strings"

	"github.com/Raghavaaa/lindia-b/internal/domain/entity"
)

const reportRuleWidth = 80

// RenderText formats a finished run as the plain text QA report.
func RenderText(r *entity.VerificationReport) string {
	rule := strings.Repeat("=", reportRuleWidth)
	var b strings.Builder

	fmt.Fprintf(&b, "%s\nLINDIA PRE-DEPLOYMENT QA REPORT\n%s\n", rule, rule)
	fmt.Fprintf(&b, "Commit Hash: %s\n", r.CommitHash)
	fmt.Fprintf(&b, "Timestamp: %s\n", r.Timestamp.Format("2006-01-02T15:04:05.000000"))
	fmt.Fprintf(&b, "Run ID: %s\n", r.RunID)
	fmt.Fprintf(&b, "Status: %s\n\n", r.OverallStatus)

	b.WriteString("CHANGED FILES:\n")
	for _, f := range r.ChangedFiles {
		fmt.Fprintf(&b, "  - %s\n", f)
	}

	fmt.Fprintf(&b, "\nV&V CHECK RESULTS:\n  Passed: %d/%d\n\n", r.PassedChecks, r.TotalChecks)
	for _, c := range r.Checks {
		status := "❌ FAIL"
		if c.Passed() {
			status = "✅ PASS"
		}
		fmt.Fprintf(&b, "  %s - %s\n", status, c.Name)
		for _, f := range c.Fields {
			fmt.Fprintf(&b, "      %s: %s\n", f.Key, formatValue(f.Value))
		}
		if c.Error != "" {
			fmt.Fprintf(&b, "      error: %s\n", c.Error)
		}
	}

	fmt.Fprintf(&b, "\nDEPLOYMENT RECOMMENDATION:\n  %s\n\n%s", r.OverallStatus, rule)
	return b.String()
}

func formatValue(v any) string {
	switch val := v.(type) {
	case entity.CheckStatus:
		return string(val)
	case []string:
		return "[" + strings.Join(val, ", ") + "]"
	default:
		return fmt.Sprint(val)
	}
}
