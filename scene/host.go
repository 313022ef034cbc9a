package scene

// ChildSet accumulates the root candidates of one commit. The external
// runtime fills it through AppendChildToContainerChildSet and installs it
// with ReplaceContainerChildren.
type ChildSet struct {
	children []Child
}

// Children returns the accumulated entries.
func (s *ChildSet) Children() []Child { return s.children }

// Host is the backend contract an external declarative tree-diffing
// runtime drives. The runtime owns diffing; this fixed fifteen-operation
// surface is the glue it calls into to materialize its decisions as
// persistent [Node] trees.
//
// The operations follow the persistence-mode shape of declarative-UI
// reconcilers: instances are never mutated after creation, updates go
// through CloneInstance, and a commit replaces the container's children
// wholesale with a finalized ChildSet.
type Host interface {
	// CreateInstance creates a new structural node for a component type.
	CreateInstance(typ string, props any) *Node

	// CreateTextInstance creates a text child.
	CreateTextInstance(text string) Child

	// AppendInitialChild appends a child to a node still under initial
	// construction.
	AppendInitialChild(parent *Node, child Child)

	// FinalizeInitialChildren is called once a node's initial children are
	// all appended. The return value reports whether the node needs a
	// commit-time callback; vidmix nodes never do.
	FinalizeInitialChildren(n *Node) bool

	// ShouldSetTextContent reports whether the runtime should skip
	// creating text instances for the children of the given type. Always
	// false here: text children flow through the compiler's grouping pass.
	ShouldSetTextContent(typ string, props any) bool

	// PrepareUpdate reports whether a node's props changed and a clone is
	// required.
	PrepareUpdate(n *Node, oldProps, newProps any) bool

	// CloneInstance clones a node with new props, optionally keeping the
	// original children slice (structural sharing).
	CloneInstance(n *Node, newProps any, keepChildren bool) *Node

	// CloneHiddenInstance clones a node for a hidden subtree. vidmix has
	// no hide semantics; the clone is childless.
	CloneHiddenInstance(n *Node) *Node

	// CloneHiddenTextInstance creates a text child for a hidden subtree.
	CloneHiddenTextInstance(text string) Child

	// CreateContainerChildSet starts an empty root child set for the next
	// commit.
	CreateContainerChildSet() *ChildSet

	// AppendChildToContainerChildSet appends a root candidate to the set.
	AppendChildToContainerChildSet(set *ChildSet, child Child)

	// FinalizeContainerChildren is called once the set is complete, before
	// the commit installs it.
	FinalizeContainerChildren(set *ChildSet)

	// ReplaceContainerChildren atomically installs the finalized set as
	// the new root.
	ReplaceContainerChildren(set *ChildSet)

	// PrepareForCommit is called immediately before a commit.
	PrepareForCommit()

	// ResetAfterCommit is called after every commit, successful or not.
	ResetAfterCommit()
}
