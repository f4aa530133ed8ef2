package parse

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/agentic-research/treegen/internal/tree"
)

// DefaultCommentMarker prefixes lines that the indentation parser
// skips entirely. Overridable per invocation via IndentOptions.
const DefaultCommentMarker = "#"

// IndentOptions configures the file-form parser.
type IndentOptions struct {
	// CommentMarker, when non-empty, marks whole-line comments.
	// Empty means DefaultCommentMarker.
	CommentMarker string
}

// Indent parses the multi-line, indentation-significant structure
// format into the same node tree the inline builder produces.
//
// Each non-blank line is one entry; its leading-whitespace width sets
// its depth. The indent unit (and whether tabs or spaces are used) is
// fixed by the first indented line; mixing tab and space indentation
// fails with InconsistentIndentError, and a line nested more than one
// level deeper than its predecessor fails with IndentSkipError. A
// trailing slash forces directory kind; otherwise an entry is a
// tentative file, reclassified when a deeper line follows it. Lines
// may contain multi-segment paths, resolved at the line's depth.
//
// The parser keeps an explicit stack of open nodes, one per depth
// level, rather than recursing; blank and comment lines are skipped
// without touching the stack.
func Indent(text string, opts IndentOptions) (*tree.Node, error) {
	marker := opts.CommentMarker
	if marker == "" {
		marker = DefaultCommentMarker
	}

	root := tree.NewRoot()
	// stack[d] is the open node at depth d; stack[0] is the root.
	stack := []*tree.Node{root}
	prevDepth := -1

	var (
		indentChar byte // ' ' or '\t' once first indent is seen
		indentUnit int  // width of one level in indentChar runes
	)

	sc := bufio.NewScanner(strings.NewReader(text))
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimRight(sc.Text(), "\r")
		content := strings.TrimLeft(raw, " \t")
		prefixLen := len(raw) - len(content)
		content = strings.TrimRight(content, " \t")
		if content == "" || strings.HasPrefix(content, marker) {
			continue
		}

		width, err := indentWidth(raw, prefixLen, &indentChar, line)
		if err != nil {
			return nil, err
		}

		depth := 0
		if width > 0 {
			if indentUnit == 0 {
				indentUnit = width
			}
			if width%indentUnit != 0 {
				return nil, &InconsistentIndentError{Line: line, Reason: "width is not a multiple of the indent unit"}
			}
			depth = width / indentUnit
		}
		if depth > prevDepth+1 {
			return nil, &IndentSkipError{Line: line, Depth: depth, Prev: prevDepth}
		}

		// Pop back to the parent for this depth.
		stack = stack[:depth+1]
		parent := stack[depth]
		if parent.Kind == tree.File {
			// A deeper line under a tentative file makes it a directory.
			parent.MarkDirectory()
		}

		leaf, err := entryNode(parent, content, line)
		if err != nil {
			return nil, err
		}
		stack = append(stack, leaf)
		prevDepth = depth
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return root, nil
}

// indentWidth validates the leading whitespace run of raw (its first
// prefixLen bytes) and returns its width. The first indented line
// pins the indent character for the rest of the file.
func indentWidth(raw string, prefixLen int, indentChar *byte, line int) (int, error) {
	if prefixLen == 0 {
		return 0, nil
	}
	prefix := raw[:prefixLen]
	if strings.Contains(prefix, " ") && strings.Contains(prefix, "\t") {
		return 0, &InconsistentIndentError{Line: line, Reason: "tabs and spaces mixed on one line"}
	}
	c := prefix[0]
	if *indentChar == 0 {
		*indentChar = c
	} else if c != *indentChar {
		return 0, &InconsistentIndentError{Line: line, Reason: "tab and space indentation mixed in one file"}
	}
	return prefixLen, nil
}

// entryNode resolves one line's content below parent and returns the
// node that deeper lines will nest under: the leaf itself, since a
// deeper line reclassifies a file leaf into a directory.
func entryNode(parent *tree.Node, content string, line int) (*tree.Node, error) {
	tok, err := pathToken(content)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", line, err)
	}

	cur := parent
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
	if existing := cur.Child(leafName); existing != nil {
		if kind == tree.Directory {
			existing.MarkDirectory()
		}
		return existing, nil
	}
	return cur.NewChild(leafName, kind)
}
