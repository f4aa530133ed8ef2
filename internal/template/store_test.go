package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveResolveList(t *testing.T) {
	store := &Store{Dir: filepath.Join(t.TempDir(), "templates")}

	text := "src\n    main.rs\nCargo.toml\n"
	path, err := store.Save("rust-bin", text)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(store.Dir, "rust-bin.txt"), path)

	got, err := store.Resolve("rust-bin")
	require.NoError(t, err)
	assert.Equal(t, text, got)

	_, err = store.Save("docs", "docs/\n")
	require.NoError(t, err)

	names, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"docs", "rust-bin"}, names)
}

func TestStore_ResolveNotFound(t *testing.T) {
	store := &Store{Dir: t.TempDir()}
	_, err := store.Resolve("missing")
	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, "missing", nfe.Name)
}

func TestStore_ListMissingDirIsEmpty(t *testing.T) {
	store := &Store{Dir: filepath.Join(t.TempDir(), "never-created")}
	names, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestStore_ListIgnoresForeignEntries(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "web.txt"), []byte("public/\n"), 0o644))

	store := &Store{Dir: dir}
	names, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"web"}, names)
}

func TestStore_SaveRejectsPathyNames(t *testing.T) {
	store := &Store{Dir: t.TempDir()}
	for _, name := range []string{"", "a/b", `a\b`} {
		_, err := store.Save(name, "x\n")
		assert.Error(t, err, "name %q", name)
	}
}

func TestBuiltin_PresetsAndAliases(t *testing.T) {
	for _, lang := range []string{"python", "py", "rust", "rs", "web", "js", "ts"} {
		text, ok := Builtin(lang)
		assert.True(t, ok, lang)
		assert.NotEmpty(t, text, lang)
	}
	_, ok := Builtin("cobol")
	assert.False(t, ok)
}
