package fsscan

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemWorkspace(t *testing.T, files map[string]string) *Workspace {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fsys, name, []byte(content), 0o644))
	}
	return NewWorkspace(fsys, "/srv/lindia-b")
}

func TestWorkspace_Basics(t *testing.T) {
	w := newMemWorkspace(t, map[string]string{
		"go.mod":                  "module x\n",
		"frontend/package.json":   "{}",
		"frontend/src/App.tsx":    "export default function App() {}",
		"frontend/src/ui/Nav.tsx": "fetch('/api/v1/research')",
	})

	assert.Equal(t, "/srv/lindia-b", w.Root())
	assert.Equal(t, filepath.Join("/srv/lindia-b", "frontend", "src"), w.Abs("frontend/src"))
	assert.True(t, w.Exists("go.mod"))
	assert.True(t, w.Exists("/go.mod"))
	assert.False(t, w.Exists("requirements.txt"))
	assert.True(t, w.IsDir("frontend"))
	assert.False(t, w.IsDir("go.mod"))

	size, err := w.Size("go.mod")
	require.NoError(t, err)
	assert.Equal(t, int64(9), size)

	data, err := w.ReadFile("frontend/src/ui/Nav.tsx")
	require.NoError(t, err)
	assert.Contains(t, string(data), "/api/v1/")
}

func TestWorkspace_Glob(t *testing.T) {
	w := newMemWorkspace(t, map[string]string{
		"frontend/src/App.tsx":        "",
		"frontend/src/ui/Nav.tsx":     "",
		"frontend/src/ui/nav.test.ts": "",
		"frontend/src/deep/a/b/C.tsx": "",
		"migrations/001_init.sql":     "",
	})

	got, err := w.Glob("frontend/src/**/*.tsx")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"frontend/src/App.tsx",
		"frontend/src/deep/a/b/C.tsx",
		"frontend/src/ui/Nav.tsx",
	}, got)

	got, err = w.Glob("migrations/*.sql")
	require.NoError(t, err)
	assert.Equal(t, []string{"migrations/001_init.sql"}, got)

	got, err = w.Glob("models/*.go")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = w.Glob("src/[")
	assert.Error(t, err)
}

func TestWorkspace_InspectHTML(t *testing.T) {
	w := newMemWorkspace(t, map[string]string{
		"frontend/index.html": `<!doctype html>
<html>
  <head>
    <title> LegalIndia </title>
    <script src="/config.js"></script>
  </head>
  <body>
    <div id="root"></div>
    <script type="module" src="/src/main.tsx"></script>
  </body>
</html>`,
		"frontend/public/index.html": `<html><body><p>static</p></body></html>`,
	})

	summary, err := w.InspectHTML("frontend/index.html")
	require.NoError(t, err)
	assert.Equal(t, "LegalIndia", summary.Title)
	assert.Equal(t, 2, summary.Scripts)
	assert.True(t, summary.HasRootNode)

	summary, err = w.InspectHTML("frontend/public/index.html")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Scripts)
	assert.False(t, summary.HasRootNode)

	_, err = w.InspectHTML("frontend/missing.html")
	assert.Error(t, err)
}

func TestNewOSWorkspace(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, afero.WriteFile(afero.NewOsFs(), filepath.Join(dir, ".env"), []byte("PORT=8000"), 0o600))

	w := NewOSWorkspace(dir)
	assert.True(t, w.Exists(".env"))
	assert.Equal(t, filepath.Join(dir, ".env"), w.Abs(".env"))
}

func TestWorkspace_Files(t *testing.T) {
	w := newMemWorkspace(t, map[string]string{
		"cmd/server/main.go":                   "",
		"internal/config/config.go":            "",
		"internal/config/config_test.go":       "",
		"internal/prompts/testdata/fixture.go": "",
	})

	files, err := w.Files(
		[]string{"cmd/**/*.go", "internal/**/*.go", "cmd/server/*.go"},
		[]string{"**/*_test.go", "**/testdata/**"},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"cmd/server/main.go", "internal/config/config.go"}, files)

	_, err = w.Files([]string{"[broken"}, nil)
	assert.Error(t, err)
}
