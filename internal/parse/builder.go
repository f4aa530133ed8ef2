package parse

import "github.com/agentic-research/treegen/internal/tree"

// Build consumes a token sequence and resolves it into a node tree
// with a cursor walk. The cursor is the "current directory" while
// tokens are consumed:
//
//   - A path token creates or reuses one node per segment under the
//     cursor. Intermediate segments are directories; the final segment
//     is a tentative file (a directory when the argument carried a
//     trailing slash). The cursor ends on the deepest directory the
//     token touched: the leaf itself when the leaf is a directory,
//     otherwise the leaf's parent — a file is never a descent base,
//     so a file leaf does not move the cursor.
//   - ".." and ":" both move the cursor to its parent. Ascending from
//     the root fails with RootAscendError, so a description may not
//     start with either operator.
//
// A node first seen as a file is reclassified as a directory when a
// later token descends through it; children attached in between are
// preserved.
func Build(tokens []Token) (*tree.Node, error) {
	root := tree.NewRoot()
	cursor := root

	for _, tok := range tokens {
		switch tok.Kind {
		case TokenAscend, TokenSibling:
			if cursor.IsRoot() {
				return nil, &RootAscendError{Operator: tok.Arg}
			}
			cursor = cursor.Parent()

		case TokenPath:
			node, err := descend(cursor, tok)
			if err != nil {
				return nil, err
			}
			cursor = node
		}
	}
	return root, nil
}

// descend resolves one path token below cur and returns the deepest
// directory it touched, which becomes the new cursor: the leaf node
// for a directory leaf, the leaf's parent for a file leaf.
func descend(cur *tree.Node, tok Token) (*tree.Node, error) {
	for _, seg := range tok.Segments[:len(tok.Segments)-1] {
		next, err := childDir(cur, seg)
		if err != nil {
			return nil, err
		}
		cur = next
	}

	leafName := tok.Segments[len(tok.Segments)-1]
	kind := tree.File
	if tok.ExplicitDir {
		kind = tree.Directory
	}
	leaf := cur.Child(leafName)
	if leaf != nil {
		// Re-specifying an entry merges; a directory is never
		// downgraded back to a file.
		if kind == tree.Directory {
			leaf.MarkDirectory()
		}
	} else {
		var err error
		if leaf, err = cur.NewChild(leafName, kind); err != nil {
			return nil, err
		}
	}
	if leaf.Kind == tree.Directory {
		return leaf, nil
	}
	return cur, nil
}

// childDir returns the named child of cur as a directory, creating it
// if absent and reclassifying a tentative file in place if needed.
func childDir(cur *tree.Node, name string) (*tree.Node, error) {
	if c := cur.Child(name); c != nil {
		c.MarkDirectory()
		return c, nil
	}
	return cur.NewChild(name, tree.Directory)
}
