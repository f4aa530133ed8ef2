package parse

import "fmt"

// Parse-stage errors are fatal to the whole invocation: no tree is
// handed out and nothing touches the filesystem. Each error names the
// offending argument or line so the failure is attributable.

// MalformedPathError reports a path argument with an empty, absolute,
// or dot-relative segment.
type MalformedPathError struct {
	Arg    string
	Reason string
}

func (e *MalformedPathError) Error() string {
	return fmt.Sprintf("malformed path %q: %s", e.Arg, e.Reason)
}

// RootAscendError reports an ascend ("..") or sibling (":") operator
// applied while the cursor is already at the output root.
type RootAscendError struct {
	Operator string
}

func (e *RootAscendError) Error() string {
	return fmt.Sprintf("%q would ascend above the output root", e.Operator)
}

// InconsistentIndentError reports indentation that mixes tabs and
// spaces, or a width that is not a multiple of the file's indent unit.
type InconsistentIndentError struct {
	Line   int
	Reason string
}

func (e *InconsistentIndentError) Error() string {
	return fmt.Sprintf("line %d: inconsistent indentation: %s", e.Line, e.Reason)
}

// IndentSkipError reports a line nested more than one level deeper
// than its predecessor, which would make the hierarchy ambiguous.
type IndentSkipError struct {
	Line  int
	Depth int
	Prev  int
}

func (e *IndentSkipError) Error() string {
	return fmt.Sprintf("line %d: indent jumps from depth %d to %d", e.Line, e.Prev, e.Depth)
}
