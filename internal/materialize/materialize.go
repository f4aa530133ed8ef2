// Package materialize reconciles a tree.Node tree against a
// filesystem. It plans one action per node in pre-order and applies
// the plan idempotently: entries that already exist with the right
// kind are skipped, kind mismatches fail that branch only, and
// sibling branches keep going.
//
// All filesystem access goes through billy.Filesystem, so production
// runs use osfs rooted at the output base and tests use memfs.
package materialize

import (
	"errors"
	"fmt"
	"os"

	billy "github.com/go-git/go-billy/v5"

	"github.com/agentic-research/treegen/internal/tree"
)

// Op is the kind of filesystem action a node requires.
type Op int

const (
	CreateDirectory Op = iota
	CreateFile
)

func (o Op) String() string {
	if o == CreateDirectory {
		return "create directory"
	}
	return "create file"
}

// Action is one planned filesystem operation. Path is slash-joined
// and relative to the output base.
type Action struct {
	Op   Op
	Path string
	Node *tree.Node
}

// Status records what happened to an action during Apply.
type Status int

const (
	// Created means the entry was written to the filesystem.
	Created Status = iota
	// Skipped means the entry already existed with the right kind.
	Skipped
	// Failed means the entry could not be created, or sits under an
	// ancestor that could not be created.
	Failed
)

// Outcome pairs an action with its result.
type Outcome struct {
	Action
	Status Status
	Err    error
}

// Result aggregates one Apply run. Every node of the tree appears in
// Outcomes exactly once, in plan order.
type Result struct {
	Outcomes []Outcome
	Created  int
	Skipped  int
	Failed   int
}

// Ok reports whether every action succeeded or was skipped.
func (r *Result) Ok() bool { return r.Failed == 0 }

func (r *Result) record(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch o.Status {
	case Created:
		r.Created++
	case Skipped:
		r.Skipped++
	case Failed:
		r.Failed++
	}
}

// KindConflictError reports an on-disk entry whose kind contradicts
// the tree: a file where a directory is expected, or vice versa.
type KindConflictError struct {
	Path string
	Want tree.Kind
}

func (e *KindConflictError) Error() string {
	have := tree.Directory
	if e.Want == tree.Directory {
		have = tree.File
	}
	return fmt.Sprintf("%s: %s expected but a %s exists", e.Path, e.Want, have)
}

// ErrBranchSkipped marks nodes that were never attempted because an
// ancestor failed.
var ErrBranchSkipped = errors.New("not attempted: parent was not created")

// Plan walks the tree and emits one action per node in pre-order:
// parents before children, siblings in insertion order. Plan never
// touches the filesystem; a dry run is a rendered plan.
func Plan(root *tree.Node) []Action {
	var actions []Action
	_ = root.Walk(func(n *tree.Node) error {
		op := CreateFile
		if n.Kind == tree.Directory {
			op = CreateDirectory
		}
		actions = append(actions, Action{Op: op, Path: n.Path(), Node: n})
		return nil
	})
	return actions
}

// Applier executes plans against a filesystem rooted at the output
// base. The zero value is not usable; use New.
type Applier struct {
	fs       billy.Filesystem
	dirPerm  os.FileMode
	filePerm func(path string) os.FileMode
}

// New returns an Applier writing through fs. dirPerm is the mode for
// created directories; filePerm chooses the mode per file path (a
// constant function in the simplest case).
func New(fs billy.Filesystem, dirPerm os.FileMode, filePerm func(path string) os.FileMode) *Applier {
	return &Applier{fs: fs, dirPerm: dirPerm, filePerm: filePerm}
}

// Apply materializes the tree below root, strictly sequentially in
// pre-order so every directory exists before its children are
// attempted. A failure fails that node and its whole subtree (the
// subtree is recorded, not attempted) while sibling branches continue.
func (a *Applier) Apply(root *tree.Node) *Result {
	res := &Result{}
	for _, c := range root.Children {
		a.applyNode(c, res)
	}
	return res
}

func (a *Applier) applyNode(n *tree.Node, res *Result) {
	act := Action{Path: n.Path(), Node: n}
	if n.Kind == tree.Directory {
		act.Op = CreateDirectory
	} else {
		act.Op = CreateFile
	}

	status, err := a.ensure(n, act.Path)
	res.record(Outcome{Action: act, Status: status, Err: err})
	if status == Failed {
		a.failSubtree(n, res)
		return
	}
	for _, c := range n.Children {
		a.applyNode(c, res)
	}
}

// ensure creates one entry, skipping it when it already exists with
// the right kind.
func (a *Applier) ensure(n *tree.Node, path string) (Status, error) {
	fi, err := a.fs.Stat(path)
	switch {
	case err == nil && fi.IsDir() == (n.Kind == tree.Directory):
		return Skipped, nil
	case err == nil:
		return Failed, &KindConflictError{Path: path, Want: n.Kind}
	case !os.IsNotExist(err):
		return Failed, fmt.Errorf("stat %s: %w", path, err)
	}

	if n.Kind == tree.Directory {
		if err := a.fs.MkdirAll(path, a.dirPerm); err != nil {
			return Failed, fmt.Errorf("mkdir %s: %w", path, err)
		}
		return Created, nil
	}

	f, err := a.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, a.filePerm(path))
	if err != nil {
		return Failed, fmt.Errorf("create %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return Failed, fmt.Errorf("close %s: %w", path, err)
	}
	return Created, nil
}

// failSubtree records every descendant of n as failed without
// attempting it.
func (a *Applier) failSubtree(n *tree.Node, res *Result) {
	_ = n.Walk(func(d *tree.Node) error {
		op := CreateFile
		if d.Kind == tree.Directory {
			op = CreateDirectory
		}
		res.record(Outcome{
			Action: Action{Op: op, Path: d.Path(), Node: d},
			Status: Failed,
			Err:    fmt.Errorf("%s: %w", d.Path(), ErrBranchSkipped),
		})
		return nil
	})
}
