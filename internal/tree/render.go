package tree

import "strings"

// indentUnit is the step used when rendering a tree as indented text.
// It matches what the indentation parser accepts, so a rendered plan
// re-parses to a structurally identical tree.
const indentUnit = "    "

// Render writes the tree below root as indentation-significant text,
// one entry per line, directories marked with a trailing slash. The
// output is a valid structure file.
func Render(root *Node) string {
	var b strings.Builder
	renderInto(&b, root, 0)
	return b.String()
}

func renderInto(b *strings.Builder, n *Node, depth int) {
	for _, c := range n.Children {
		b.WriteString(strings.Repeat(indentUnit, depth))
		b.WriteString(c.Name)
		if c.Kind == Directory {
			b.WriteString("/")
		}
		b.WriteString("\n")
		renderInto(b, c, depth+1)
	}
}
