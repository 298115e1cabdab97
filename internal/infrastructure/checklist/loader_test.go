package checklist

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cl, err := Defaults()
	require.NoError(t, err)
	require.NoError(t, Validate(cl))

	assert.Equal(t, 120*time.Second, cl.CommandTimeout)
	assert.Equal(t, "go.mod", cl.Backend.Manifest)
	assert.Equal(t, "npx tsc --noEmit --skipLibCheck", cl.Frontend.TypeCheck)
	assert.Equal(t, "npm audit --audit-level=high", cl.Frontend.Audit)
	assert.Equal(t, []string{"/health", "/", "/api/v1/junior", "/api/v1/senior"}, cl.API.Endpoints)
	assert.Equal(t, 2, cl.API.MinEndpoints)
	assert.Equal(t, []string{"password=", "api_key=", "secret=", "token="}, cl.Environment.SecretPatterns)
	assert.Equal(t, 100, cl.Environment.Window)
	assert.Equal(t, []string{"fetch(", "axios.", "httpx", "/api/v1/"}, cl.Frontend.APIMarkers)
	assert.Equal(t, 10*time.Second, cl.Integration.HealthTimeout)
	assert.Equal(t, 30*time.Second, cl.Integration.InferenceTimeout)
	assert.Equal(t, "What is Indian Penal Code?", cl.Integration.ProbeQuery)
	assert.Equal(t, "vv_test", cl.Integration.ProbeTenant)
}

func TestLoad_MissingOptionalFile(t *testing.T) {
	cl, err := Load(afero.NewMemMapFs(), DefaultFile, false)
	require.NoError(t, err)
	assert.Equal(t, "go test ./...", cl.Backend.Test)
}

func TestLoad_MissingRequiredFile(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "custom.yaml", true)
	assert.Error(t, err)
}

func TestLoad_Override(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, DefaultFile, []byte(`
command_timeout: 45s
backend:
  test: go test -race ./...
  source_globs: [pkg/**/*.go]
api:
  min_endpoints: 3
`), 0o644))

	cl, err := Load(fsys, DefaultFile, false)
	require.NoError(t, err)

	assert.Equal(t, 45*time.Second, cl.CommandTimeout)
	assert.Equal(t, "go test -race ./...", cl.Backend.Test)
	assert.Equal(t, []string{"pkg/**/*.go"}, cl.Backend.SourceGlobs)
	assert.Equal(t, "go vet ./...", cl.Backend.TypeCheck)
	assert.Equal(t, 3, cl.API.MinEndpoints)
	assert.Len(t, cl.API.Endpoints, 4)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown key", "backend:\n  lnt: go vet\n"},
		{"bad duration", "command_timeout: soon\n"},
		{"zero timeout", "command_timeout: 0s\n"},
		{"blank manifest", "backend:\n  manifest: \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fsys, DefaultFile, []byte(tt.body), 0o644))

			_, err := Load(fsys, DefaultFile, false)
			assert.Error(t, err)
		})
	}
}
