package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Raghavaaa/lindia-b/internal/application/port/output"

	"github.com/fatih/color"
)

var _ output.Reporter = (*Reporter)(nil)

const ruleWidth = 80

// Reporter prints V&V progress to a terminal.
type Reporter struct {
	w       io.Writer
	header  *color.Color
	section *color.Color
	pass    *color.Color
	fail    *color.Color
	warn    *color.Color
	info    *color.Color
	dim     *color.Color
}

func NewReporter(w io.Writer, noColor bool) *Reporter {
	if w == nil {
		w = os.Stdout
	}
	r := &Reporter{
		w:       w,
		header:  color.New(color.FgMagenta, color.Bold),
		section: color.New(color.FgBlue),
		pass:    color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
		info:    color.New(color.FgCyan),
		dim:     color.New(color.Faint),
	}
	if noColor {
		for _, c := range []*color.Color{r.header, r.section, r.pass, r.fail, r.warn, r.info, r.dim} {
			c.DisableColor()
		}
	}
	return r
}

func (r *Reporter) Header(title string) {
	rule := strings.Repeat("=", ruleWidth)
	r.header.Fprintf(r.w, "\n%s\n%s\n%s\n\n", rule, center(title, ruleWidth), rule)
}

func (r *Reporter) Section(title string) {
	r.section.Fprintf(r.w, "\n🔍 %s\n", title)
}

func (r *Reporter) Check(name string, ok bool, details string) {
	if ok {
		r.pass.Fprintf(r.w, "✅ %s\n", name)
	} else {
		r.fail.Fprintf(r.w, "❌ %s\n", name)
	}
	if details != "" {
		r.dim.Fprintf(r.w, "   %s\n", truncate(details, 500))
	}
}

func (r *Reporter) Info(format string, args ...any) {
	r.info.Fprintf(r.w, format+"\n", args...)
}

func (r *Reporter) Success(format string, args ...any) {
	r.pass.Fprintf(r.w, format+"\n", args...)
}

func (r *Reporter) Warn(format string, args ...any) {
	r.warn.Fprintf(r.w, "⚠️  "+format+"\n", args...)
}

func (r *Reporter) Fail(format string, args ...any) {
	r.fail.Fprintf(r.w, format+"\n", args...)
}

func (r *Reporter) Print(text string) {
	fmt.Fprintln(r.w, text)
}

func center(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}

func truncate(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
