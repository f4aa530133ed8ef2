// Package tree holds the in-memory model of a structure description:
// an ordered tree of directory and file nodes rooted at the output base.
// The tree is built once per invocation, handed to the materializer, and
// discarded — it is never persisted or shared.
package tree

import (
	"fmt"
	"strings"
)

// Kind distinguishes file nodes from directory nodes.
// A node starts out as a tentative File and may be reclassified to
// Directory while the tree is under construction (see MarkDirectory).
type Kind int

const (
	File Kind = iota
	Directory
)

func (k Kind) String() string {
	if k == Directory {
		return "directory"
	}
	return "file"
}

// Node is one filesystem entry to be created. Children are kept in
// insertion order; that order is also the creation order.
type Node struct {
	Name     string
	Kind     Kind
	Children []*Node

	parent *Node
}

// NewRoot returns the synthetic root representing the output base
// directory. The root itself is never materialized — it must already
// exist when the tree is applied.
func NewRoot() *Node {
	return &Node{Kind: Directory}
}

// IsRoot reports whether n is the synthetic root.
func (n *Node) IsRoot() bool { return n.parent == nil }

// Parent returns the owning node, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Child returns the direct child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// NewChild attaches a new child to n. Attaching to a File node is a
// construction error; callers that intend to descend through a file
// must reclassify it with MarkDirectory first.
func (n *Node) NewChild(name string, kind Kind) (*Node, error) {
	if n.Kind != Directory {
		return nil, fmt.Errorf("cannot attach %q under file %q", name, n.Path())
	}
	c := &Node{Name: name, Kind: kind, parent: n}
	n.Children = append(n.Children, c)
	return c, nil
}

// MarkDirectory reclassifies a tentative File node as a Directory.
// Children attached before the reclassification are preserved.
func (n *Node) MarkDirectory() { n.Kind = Directory }

// Path returns the slash-joined path of n relative to the root,
// or "." for the root itself. Used for error messages and planning.
func (n *Node) Path() string {
	if n.IsRoot() {
		return "."
	}
	var segs []string
	for c := n; !c.IsRoot(); c = c.parent {
		segs = append(segs, c.Name)
	}
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return strings.Join(segs, "/")
}

// Depth returns the number of ancestors between n and the root.
func (n *Node) Depth() int {
	d := 0
	for c := n; !c.IsRoot(); c = c.parent {
		d++
	}
	return d
}

// Walk visits every node below the root in pre-order: parent before
// children, siblings in insertion order. The root itself is not visited.
func (n *Node) Walk(fn func(*Node) error) error {
	for _, c := range n.Children {
		if err := fn(c); err != nil {
			return err
		}
		if err := c.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}
