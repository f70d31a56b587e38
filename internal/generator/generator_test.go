package generator

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shireesh.com/nodegen/internal/ui"
)

func quietPrinter(buf *bytes.Buffer) Option {
	return WithReporter(ui.New(buf, ui.WithColor(false)))
}

func listDirs(t *testing.T, root string) []string {
	t.Helper()
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		require.NoError(t, err)
		if d.IsDir() {
			rel, _ := filepath.Rel(root, path)
			dirs = append(dirs, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(t, err)
	sort.Strings(dirs)
	return dirs
}

func TestPlainProjectGenerator_ShopAPI(t *testing.T) {
	base := filepath.Join(t.TempDir(), "dist")
	var out bytes.Buffer

	g := NewPlainProjectGenerator("shop-api", base, quietPrinter(&out))
	require.NoError(t, g.InitializeProject())

	content, err := os.ReadFile(filepath.Join(base, "shop-api", "src", "app.js"))
	require.NoError(t, err)
	assert.Equal(t, "console.log('Welcome to shop-api project!')\n", string(content))

	assert.Equal(t, []string{".", "shop-api", "shop-api/src"}, listDirs(t, base))

	assert.Equal(t, strings.Join([]string{
		"Directory created: " + filepath.Join("dist", "shop-api"),
		"Directory created: " + filepath.Join("dist", "shop-api", "src"),
		"File created: " + filepath.Join("dist", "shop-api", "src", "app.js"),
		"Project 'shop-api' has been initialized successfully.",
		"",
	}, "\n"), out.String())
}

func TestFrameworkProjectGenerator_ShopAPI(t *testing.T) {
	base := filepath.Join(t.TempDir(), "dist")
	var out bytes.Buffer

	g := NewFrameworkProjectGenerator("shop-api", base, quietPrinter(&out))
	require.NoError(t, g.InitializeProject())

	root := filepath.Join(base, "shop-api")
	assert.Equal(t, []string{".", "src", "src/controllers", "src/models", "src/routes"}, listDirs(t, root))

	server, err := os.ReadFile(filepath.Join(root, "src", "server.js"))
	require.NoError(t, err)
	assert.Equal(t, ServerEntryTemplate(), string(server))

	raw, err := os.ReadFile(filepath.Join(root, "package.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"name": "shop-api"`)
	assert.Contains(t, string(raw), `"main": "src/server.js"`)
	assert.Contains(t, string(raw), `"express": "^4.21.0"`)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, map[string]any{
		"name":    "shop-api",
		"version": "1.0.0",
		"main":    "src/server.js",
		"type":    "module",
		"scripts": map[string]any{
			"start": "node src/server.js",
			"dev":   "nodemon src/server.js",
		},
		"dependencies":    map[string]any{"express": "^4.21.0"},
		"devDependencies": map[string]any{"nodemon": "^3.1.7"},
	}, got)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, "Directory created: "+filepath.Join("dist", "shop-api", "src", "controllers"), lines[2])
	assert.Equal(t, "File created: "+filepath.Join("dist", "shop-api", "src", "server.js"), lines[5])
	assert.Equal(t, "File created: "+filepath.Join("dist", "shop-api", "package.json"), lines[6])
}

func TestManifestKeyOrder(t *testing.T) {
	raw, err := FileArtifact{Data: NewManifest("demo", "1.0.0", "^4.21.0", "^3.1.7")}.Bytes()
	require.NoError(t, err)

	want := `{
  "name": "demo",
  "version": "1.0.0",
  "main": "src/server.js",
  "type": "module",
  "scripts": {
    "dev": "nodemon src/server.js",
    "start": "node src/server.js"
  },
  "dependencies": {
    "express": "^4.21.0"
  },
  "devDependencies": {
    "nodemon": "^3.1.7"
  }
}
`
	assert.Equal(t, want, string(raw))
}

func TestInitializeProject_Idempotent(t *testing.T) {
	tests := []struct {
		name string
		new  func(name, base string, opts ...Option) *Generator
	}{
		{"plain", NewPlainProjectGenerator},
		{"express", NewFrameworkProjectGenerator},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := filepath.Join(t.TempDir(), "dist")
			var out bytes.Buffer

			require.NoError(t, tt.new("demo", base, quietPrinter(&out)).InitializeProject())
			first := snapshot(t, base)

			out.Reset()
			require.NoError(t, tt.new("demo", base, quietPrinter(&out)).InitializeProject())
			assert.Equal(t, first, snapshot(t, base))
			assert.NotContains(t, out.String(), "Directory created")
			assert.Contains(t, out.String(), "File created")
		})
	}
}

func TestInitializeProject_OverwritesEntryFile(t *testing.T) {
	base := t.TempDir()
	entry := filepath.Join(base, "demo", "src", "app.js")
	require.NoError(t, os.MkdirAll(filepath.Dir(entry), 0o755))
	require.NoError(t, os.WriteFile(entry, []byte("stale"), 0o644))

	var out bytes.Buffer
	require.NoError(t, NewPlainProjectGenerator("demo", base, quietPrinter(&out)).InitializeProject())

	got, err := os.ReadFile(entry)
	require.NoError(t, err)
	assert.Equal(t, PlainEntryTemplate("demo"), string(got))
}

func TestInitializeProject_CreatesMissingAncestors(t *testing.T) {
	base := filepath.Join(t.TempDir(), "a", "b", "dist")
	var out bytes.Buffer
	require.NoError(t, NewFrameworkProjectGenerator("demo", base, quietPrinter(&out)).InitializeProject())
	assert.DirExists(t, filepath.Join(base, "demo", "src", "routes"))
}

func TestInitializeProject_VerboseReportsExistingDirectories(t *testing.T) {
	base := t.TempDir()
	var out bytes.Buffer
	opt := WithReporter(ui.New(&out, ui.WithColor(false), ui.WithVerbose(true)))

	require.NoError(t, NewPlainProjectGenerator("demo", base, opt).InitializeProject())
	out.Reset()
	require.NoError(t, NewPlainProjectGenerator("demo", base, opt).InitializeProject())
	assert.Contains(t, out.String(), "Directory already exists: "+filepath.Join(filepath.Base(base), "demo", "src"))
}

func TestInitializeProject_InvalidNameTouchesNothing(t *testing.T) {
	base := filepath.Join(t.TempDir(), "dist")
	var out bytes.Buffer

	err := NewPlainProjectGenerator("../escape", base, quietPrinter(&out)).InitializeProject()
	require.ErrorIs(t, err, ErrInvalidProjectName)
	assert.NoDirExists(t, base)
	assert.Empty(t, out.String())
}

func TestInitializeProject_FilesystemErrorPropagates(t *testing.T) {
	base := t.TempDir()
	// A regular file where src/ should be makes the nested mkdir fail.
	root := filepath.Join(base, "demo")
	require.NoError(t, os.MkdirAll(root, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src"), nil, 0o644))

	var out bytes.Buffer
	err := NewFrameworkProjectGenerator("demo", base, quietPrinter(&out)).InitializeProject()
	require.Error(t, err)

	var pathErr *fs.PathError
	assert.True(t, errors.As(err, &pathErr), "expected *fs.PathError, got %T", err)
	assert.NotContains(t, out.String(), "initialized successfully")
}

func TestInitializeProject_NoRollbackLeavesPartialTree(t *testing.T) {
	base := t.TempDir()
	var out bytes.Buffer
	g := New(ProjectSpec{Name: "demo", BasePath: base}, failingArchetype{}, quietPrinter(&out))

	require.Error(t, g.InitializeProject())
	assert.DirExists(t, filepath.Join(base, "demo", "src"))
	assert.FileExists(t, filepath.Join(base, "demo", "src", "ok.js"))
}

func TestInitializeProject_RollbackRemovesCreatedPaths(t *testing.T) {
	base := filepath.Join(t.TempDir(), "dist")
	var out bytes.Buffer
	g := New(ProjectSpec{Name: "demo", BasePath: base}, failingArchetype{}, quietPrinter(&out), WithRollback(true))

	require.Error(t, g.InitializeProject())
	assert.NoDirExists(t, base)
}

func TestInitializeProject_RollbackRestoresOverwrittenFiles(t *testing.T) {
	base := t.TempDir()
	existing := filepath.Join(base, "demo", "src", "ok.js")
	require.NoError(t, os.MkdirAll(filepath.Dir(existing), 0o755))
	require.NoError(t, os.WriteFile(existing, []byte("keep me"), 0o600))

	var out bytes.Buffer
	g := New(ProjectSpec{Name: "demo", BasePath: base}, failingArchetype{}, quietPrinter(&out), WithRollback(true))
	require.Error(t, g.InitializeProject())

	got, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(got))
	assert.DirExists(t, filepath.Join(base, "demo", "src"))
}

// failingArchetype writes one good file, then targets a path whose parent
// was never planned.
type failingArchetype struct{}

func (failingArchetype) Name() string            { return "failing" }
func (failingArchetype) Description() string     { return "" }
func (failingArchetype) DirectoryPlan() []string { return []string{".", "src"} }
func (failingArchetype) FileArtifacts(ProjectSpec) ([]FileArtifact, error) {
	return []FileArtifact{
		{RelPath: "src/ok.js", Content: "ok"},
		{RelPath: "missing/dir/fail.js", Content: "never"},
	}, nil
}

func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	files := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		require.NoError(t, err)
		rel, _ := filepath.Rel(root, path)
		if d.IsDir() {
			files[rel+"/"] = ""
			return nil
		}
		b, err := os.ReadFile(path)
		require.NoError(t, err)
		files[rel] = string(b)
		return nil
	})
	require.NoError(t, err)
	return files
}
