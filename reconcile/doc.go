// Package reconcile is a minimal declarative tree-diffing runtime for the
// scene.Host backend contract.
//
// A caller describes the desired component tree as [Element] values and
// commits it with [Runtime.Render]. The runtime diffs the new description
// against the previous one and drives the host's persistence operations:
// untouched subtrees keep their existing host nodes, prop-only changes
// clone the node while sharing the child slice, and changed child lists
// rebuild the children through the initial-append path. Diffing is
// positional; there is no keyed reordering.
package reconcile
