package svcconfig

import (
	"fmt"
	"strings"
)

// ErrorNode is a hierarchical validation error: either a leaf message or a
// labeled group owning an ordered sequence of children. Validation never
// short-circuits on the first bad field; every parser and every field check
// appends to a tree so a caller fixing one field sees all problems at once.
//
// Success is represented by the absence of an ErrorNode (a nil *ErrorNode),
// never by an empty group: GroupError collapses to nil when it has no
// non-nil children.
type ErrorNode struct {
	msg      string
	label    string
	children []*ErrorNode
}

// LeafError returns a leaf node holding a single message.
func LeafError(msg string) *ErrorNode { return &ErrorNode{msg: msg} }

// Errorf returns a leaf node with a formatted message.
func Errorf(format string, args ...any) *ErrorNode {
	return &ErrorNode{msg: fmt.Sprintf(format, args...)}
}

// GroupError returns a group labeled label owning the given children, in
// order. Nil children are dropped; a group that would end up with zero
// children collapses to nil ("no error").
func GroupError(label string, children []*ErrorNode) *ErrorNode {
	kept := make([]*ErrorNode, 0, len(children))
	for _, c := range children {
		if c != nil {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return &ErrorNode{label: label, children: kept}
}

// AppendError appends child to group, starting a new group labeled label
// when group is nil. Nil children leave group unchanged.
func AppendError(group *ErrorNode, label string, child *ErrorNode) *ErrorNode {
	if child == nil {
		return group
	}
	if group == nil {
		return &ErrorNode{label: label, children: []*ErrorNode{child}}
	}
	group.children = append(group.children, child)
	return group
}

// IsLeaf reports whether e is a leaf message.
func (e *ErrorNode) IsLeaf() bool { return e != nil && len(e.children) == 0 }

// Children returns the node's children in order; nil for leaves.
func (e *ErrorNode) Children() []*ErrorNode {
	if e == nil {
		return nil
	}
	return e.children
}

// Error renders the tree depth-first into "<label>: <child>, <child>, ...".
// The rendered text reads top to bottom: every message stays scoped under
// its ancestor labels, so callers may match nested chains with substring
// checks without depending on the exact sibling layout.
func (e *ErrorNode) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	e.render(&b)
	return b.String()
}

func (e *ErrorNode) render(b *strings.Builder) {
	if len(e.children) == 0 {
		b.WriteString(e.msg)
		return
	}
	b.WriteString(e.label)
	b.WriteString(": ")
	for i, c := range e.children {
		if i > 0 {
			b.WriteString(", ")
		}
		c.render(b)
	}
}

// AsError converts a possibly-nil node into an error interface value. A nil
// node yields a nil error, avoiding the non-nil interface around a nil
// pointer trap at API boundaries.
func (e *ErrorNode) AsError() error {
	if e == nil {
		return nil
	}
	return e
}
