package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChild_OrderAndPaths(t *testing.T) {
	root := NewRoot()
	src, err := root.NewChild("src", Directory)
	require.NoError(t, err)
	_, err = src.NewChild("main.rs", File)
	require.NoError(t, err)
	_, err = root.NewChild("Cargo.toml", File)
	require.NoError(t, err)

	assert.Equal(t, ".", root.Path())
	assert.Equal(t, "src/main.rs", src.Child("main.rs").Path())
	assert.Equal(t, 2, src.Child("main.rs").Depth())

	var visited []string
	require.NoError(t, root.Walk(func(n *Node) error {
		visited = append(visited, n.Path())
		return nil
	}))
	assert.Equal(t, []string{"src", "src/main.rs", "Cargo.toml"}, visited)
}

func TestNewChild_FileParentRejected(t *testing.T) {
	root := NewRoot()
	f, err := root.NewChild("notes.txt", File)
	require.NoError(t, err)

	_, err = f.NewChild("oops", File)
	assert.Error(t, err)
}

func TestMarkDirectory_PreservesChildren(t *testing.T) {
	root := NewRoot()
	n, err := root.NewChild("src", Directory)
	require.NoError(t, err)
	_, err = n.NewChild("lib.rs", File)
	require.NoError(t, err)

	// Simulate the tentative-kind dance: the builder may flip kinds
	// while resolving later tokens.
	n.Kind = File
	n.MarkDirectory()

	assert.Equal(t, Directory, n.Kind)
	require.Len(t, n.Children, 1)
	assert.Equal(t, "lib.rs", n.Children[0].Name)
}

func TestRender_IndentedWithDirSlashes(t *testing.T) {
	root := NewRoot()
	src, _ := root.NewChild("src", Directory)
	core, _ := src.NewChild("core", Directory)
	_, _ = core.NewChild("test.rs", File)
	_, _ = src.NewChild("lib.rs", File)
	_, _ = root.NewChild("Cargo.toml", File)
	_, _ = root.NewChild("assets", Directory) // childless dir keeps its slash

	want := "src/\n" +
		"    core/\n" +
		"        test.rs\n" +
		"    lib.rs\n" +
		"Cargo.toml\n" +
		"assets/\n"
	assert.Equal(t, want, Render(root))
}
