package reconcile

import (
	"github.com/vidmix/vidmix/scene"
)

// fiber is the runtime's shadow of one committed child: the description
// it was built from, the host node that materialized it, and the shadows
// of its children.
type fiber struct {
	elem     *Element // nil for text fibers
	text     string
	node     scene.Child
	children []*fiber
}

// Runtime diffs successive element trees and drives a [scene.Host] to
// materialize the changes as persistent node trees.
//
// A Runtime serves one output. It is not safe for concurrent use; commits
// are expected from a single goroutine, matching the single-logical-thread
// model of the core.
type Runtime struct {
	host scene.Host
	prev *fiber
}

// NewRuntime creates a runtime committing through the given host.
func NewRuntime(host scene.Host) *Runtime {
	return &Runtime{host: host}
}

// Render commits the given description as the output's new tree. The
// previous committed tree is the diff baseline; unchanged subtrees keep
// their host nodes.
func (r *Runtime) Render(root Child) {
	r.host.PrepareForCommit()

	next := r.reconcile(r.prev, root)

	set := r.host.CreateContainerChildSet()
	r.host.AppendChildToContainerChildSet(set, next.node)
	r.host.FinalizeContainerChildren(set)
	r.host.ReplaceContainerChildren(set)
	r.host.ResetAfterCommit()

	r.prev = next
}

// reconcile matches one desired child against its previous shadow and
// returns the shadow for the new commit. Returning prev itself means the
// subtree is unchanged and its host node is reused.
func (r *Runtime) reconcile(prev *fiber, next Child) *fiber {
	if next.IsText() {
		if prev != nil && prev.elem == nil && prev.text == next.Text() {
			return prev
		}
		return &fiber{text: next.Text(), node: r.host.CreateTextInstance(next.Text())}
	}

	elem := next.Element()
	if prev == nil || prev.elem == nil || prev.elem.Type != elem.Type {
		return r.mount(elem)
	}
	if prev.elem == elem {
		// Identical description, skip the whole subtree.
		return prev
	}

	childFibers, childrenChanged := r.reconcileChildren(prev, elem)
	propsChanged := r.host.PrepareUpdate(prev.node.Node(), prev.elem.Props, elem.Props)

	if !propsChanged && !childrenChanged {
		prev.elem = elem
		return prev
	}

	clone := r.host.CloneInstance(prev.node.Node(), elem.Props, !childrenChanged)
	if childrenChanged {
		for _, cf := range childFibers {
			r.host.AppendInitialChild(clone, cf.node)
		}
	}
	r.host.FinalizeInitialChildren(clone)

	return &fiber{elem: elem, node: scene.NodeChild(clone), children: childFibers}
}

// mount materializes a fresh subtree with no diff baseline.
func (r *Runtime) mount(elem *Element) *fiber {
	node := r.host.CreateInstance(elem.Type, elem.Props)
	children := make([]*fiber, 0, len(elem.Children))
	for _, c := range elem.Children {
		cf := r.reconcile(nil, c)
		r.host.AppendInitialChild(node, cf.node)
		children = append(children, cf)
	}
	r.host.FinalizeInitialChildren(node)
	return &fiber{elem: elem, node: scene.NodeChild(node), children: children}
}

// reconcileChildren diffs the child lists positionally. It reports whether
// any child's host node differs from the previous commit.
func (r *Runtime) reconcileChildren(prev *fiber, elem *Element) ([]*fiber, bool) {
	changed := len(elem.Children) != len(prev.children)
	children := make([]*fiber, 0, len(elem.Children))
	for i, c := range elem.Children {
		var base *fiber
		if i < len(prev.children) {
			base = prev.children[i]
		}
		cf := r.reconcile(base, c)
		if cf != base {
			changed = true
		}
		children = append(children, cf)
	}
	return children, changed
}
