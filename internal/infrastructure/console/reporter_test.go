package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReporter_PlainOutput(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, true)

	r.Header("PRE-DEPLOYMENT QA REPORT")
	r.Section("CHECK 5: API Health")
	r.Check("API Endpoints Defined (3/4)", true, "Found: /health, /, /api/v1/junior")
	r.Check("Backend Build", false, "")
	r.Warn("No environment files found in %s", "frontend")
	r.Info("Commit: %s", "abc12345")
	r.Print("raw text")

	out := buf.String()
	assert.NotContains(t, out, "\x1b[")
	assert.Contains(t, out, strings.Repeat("=", 80))
	assert.Contains(t, out, strings.Repeat(" ", 28)+"PRE-DEPLOYMENT QA REPORT")
	assert.Contains(t, out, "🔍 CHECK 5: API Health\n")
	assert.Contains(t, out, "✅ API Endpoints Defined (3/4)\n   Found: /health, /, /api/v1/junior\n")
	assert.Contains(t, out, "❌ Backend Build\n")
	assert.Contains(t, out, "⚠️  No environment files found in frontend\n")
	assert.Contains(t, out, "Commit: abc12345\n")
	assert.True(t, strings.HasSuffix(out, "raw text\n"))
}

func TestCenter(t *testing.T) {
	assert.Equal(t, "  ab  ", center("ab", 6))
	assert.Equal(t, "toolong", center("toolong", 3))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("  abc ", 5))
	assert.Equal(t, "ab...", truncate("abcdef", 2))
}
