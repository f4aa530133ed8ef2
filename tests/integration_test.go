package tests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/treegen/internal/config"
	"github.com/agentic-research/treegen/internal/materialize"
	"github.com/agentic-research/treegen/internal/parse"
	"github.com/agentic-research/treegen/internal/template"
	"github.com/agentic-research/treegen/internal/tree"
)

// newApplier wires the materializer the way cmd/root.go does: osfs
// rooted at the output base, modes from a (default) config.
func newApplier(t *testing.T, base string) *materialize.Applier {
	t.Helper()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)
	dirMode, err := cfg.DirMode()
	require.NoError(t, err)
	return materialize.New(osfs.New(base), dirMode, cfg.FileModeFor)
}

func requireDir(t *testing.T, path string) {
	t.Helper()
	fi, err := os.Stat(path)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "%s should be a directory", path)
}

func requireFile(t *testing.T, path string) {
	t.Helper()
	fi, err := os.Stat(path)
	require.NoError(t, err)
	require.False(t, fi.IsDir(), "%s should be a file", path)
	require.Zero(t, fi.Size(), "%s should be empty", path)
}

func TestInlineArgsToDisk(t *testing.T) {
	out := t.TempDir()

	tokens, err := parse.Tokenize([]string{"src/core/test.rs", "..", "lib.rs", "tests/test.rs", ":", "ui/f1.rs", "Cargo.toml"})
	require.NoError(t, err)
	root, err := parse.Build(tokens)
	require.NoError(t, err)

	res := newApplier(t, out).Apply(root)
	require.True(t, res.Ok())

	requireDir(t, filepath.Join(out, "src", "core"))
	requireFile(t, filepath.Join(out, "src", "core", "test.rs"))
	requireFile(t, filepath.Join(out, "src", "lib.rs"))
	requireFile(t, filepath.Join(out, "src", "tests", "test.rs"))
	requireDir(t, filepath.Join(out, "src", "ui"))
	requireFile(t, filepath.Join(out, "src", "ui", "f1.rs"))
	requireFile(t, filepath.Join(out, "src", "ui", "Cargo.toml"))

	// Idempotence: a second run changes nothing and skips everything.
	second := newApplier(t, out).Apply(root)
	require.True(t, second.Ok())
	assert.Zero(t, second.Created)
	assert.Equal(t, res.Created, second.Skipped)
}

func TestStructureFileToDisk(t *testing.T) {
	out := t.TempDir()
	text := dedent.Dedent(`
		# minimal web project
		src
		    index.js
		    style.css
		public/
		package.json
	`)

	root, err := parse.Indent(text, parse.IndentOptions{})
	require.NoError(t, err)

	res := newApplier(t, out).Apply(root)
	require.True(t, res.Ok())

	requireFile(t, filepath.Join(out, "src", "index.js"))
	requireFile(t, filepath.Join(out, "src", "style.css"))
	requireDir(t, filepath.Join(out, "public"))
	requireFile(t, filepath.Join(out, "package.json"))
}

func TestKindConflictLeavesSiblingsStanding(t *testing.T) {
	out := t.TempDir()
	// Pre-existing file where the structure wants a directory.
	require.NoError(t, os.WriteFile(filepath.Join(out, "src"), nil, 0o644))

	tokens, err := parse.Tokenize([]string{"src/main.rs", ":", "Cargo.toml"})
	require.NoError(t, err)
	root, err := parse.Build(tokens)
	require.NoError(t, err)

	res := newApplier(t, out).Apply(root)
	require.False(t, res.Ok())
	assert.Equal(t, 2, res.Failed) // src and its never-attempted child
	requireFile(t, filepath.Join(out, "Cargo.toml"))

	// The conflicting entry was left untouched.
	fi, err := os.Stat(filepath.Join(out, "src"))
	require.NoError(t, err)
	assert.False(t, fi.IsDir())
}

func TestTemplateStoreRoundTrip(t *testing.T) {
	out := t.TempDir()
	store := &template.Store{Dir: filepath.Join(t.TempDir(), "templates")}

	_, err := store.Save("svc", "cmd/\ninternal\n    server.go\ngo.mod\n")
	require.NoError(t, err)

	text, err := store.Resolve("svc")
	require.NoError(t, err)
	root, err := parse.Indent(text, parse.IndentOptions{})
	require.NoError(t, err)

	res := newApplier(t, out).Apply(root)
	require.True(t, res.Ok())
	requireDir(t, filepath.Join(out, "cmd"))
	requireFile(t, filepath.Join(out, "internal", "server.go"))
	requireFile(t, filepath.Join(out, "go.mod"))
}

func TestDryRunPlanReparsesToSameTree(t *testing.T) {
	tokens, err := parse.Tokenize([]string{"api/handlers.go", "models.go", ":", "Makefile"})
	require.NoError(t, err)
	root, err := parse.Build(tokens)
	require.NoError(t, err)

	rendered := tree.Render(root)
	reparsed, err := parse.Indent(rendered, parse.IndentOptions{})
	require.NoError(t, err)
	assert.Equal(t, tree.Render(root), tree.Render(reparsed))

	// A dry run produced text only; nothing may exist on disk.
	out := t.TempDir()
	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
