package scene

// Child is one entry in a node's child list: either a nested structural
// node or a raw text run.
type Child struct {
	node *Node
	text string
}

// NodeChild wraps a structural node as a child entry.
func NodeChild(n *Node) Child { return Child{node: n} }

// TextChild wraps a raw text run as a child entry.
func TextChild(text string) Child { return Child{text: text} }

// IsText reports whether the child is a raw text run.
func (c Child) IsText() bool { return c.node == nil }

// Node returns the structural node, or nil for a text child.
func (c Child) Node() *Node { return c.node }

// Text returns the text run; empty for structural children.
func (c Child) Text() string { return c.text }

// Resolved is one grouped child handed to a [Builder]: either a compiled
// scene node or a single concatenated text run. Any run of two or more
// consecutive text children is concatenated before the builder sees it, so
// Text entries never appear back to back.
type Resolved struct {
	Scene Compiled
	Text  string
}

// IsText reports whether the resolved child is a text run.
func (r Resolved) IsText() bool { return r.Scene == nil }

// Builder turns a node's props and its resolved, text-grouped children
// into one scene-graph node.
type Builder func(props any, children []Resolved) Compiled

// Node is one node of the persistent component tree. Nodes are immutable
// once committed: an update produces a new Node via [Node.Clone] rather
// than mutating the old one. AppendChild is legal only during initial
// construction, before the node is part of a committed tree.
type Node struct {
	typ      string
	props    any
	builder  Builder
	children []Child
}

// NewNode creates a node of the given component type.
func NewNode(typ string, props any, builder Builder) *Node {
	return &Node{typ: typ, props: props, builder: builder}
}

// Type returns the component type name.
func (n *Node) Type() string { return n.typ }

// Props returns the node's props value.
func (n *Node) Props() any { return n.props }

// Children returns the node's child list. Callers must not modify the
// returned slice.
func (n *Node) Children() []Child { return n.children }

// AppendChild appends a child during initial construction.
func (n *Node) AppendChild(c Child) {
	n.children = append(n.children, c)
}

// Clone produces a copy of the node with new props. With keepChildren the
// clone reuses the same children slice as the original, giving structural
// sharing: only the path from the changed node to the root is reallocated,
// never the whole tree. Without keepChildren the clone starts with an
// empty child list regardless of the source node's children.
func (n *Node) Clone(props any, keepChildren bool) *Node {
	c := &Node{typ: n.typ, props: props, builder: n.builder}
	if keepChildren {
		c.children = n.children
	}
	return c
}

// Scene compiles the subtree rooted at n. Children are resolved first
// (text passes through, structural children recurse), the resolved list is
// text-grouped, and the grouped list is handed to the node's builder.
func (n *Node) Scene() Compiled {
	resolved := make([]Resolved, 0, len(n.children))
	for _, c := range n.children {
		if c.IsText() {
			resolved = append(resolved, Resolved{Text: c.Text()})
			continue
		}
		resolved = append(resolved, Resolved{Scene: c.Node().Scene()})
	}
	return n.builder(n.props, groupText(resolved))
}

// groupText walks the resolved list left to right, accumulating
// consecutive text runs into one concatenated string and flushing the
// accumulator at every structural entry and at the end. The returned list
// never contains two adjacent text entries.
func groupText(children []Resolved) []Resolved {
	grouped := make([]Resolved, 0, len(children))
	var acc string
	pending := false
	for _, c := range children {
		if c.IsText() {
			acc += c.Text
			pending = true
			continue
		}
		if pending {
			grouped = append(grouped, Resolved{Text: acc})
			acc = ""
			pending = false
		}
		grouped = append(grouped, c)
	}
	if pending {
		grouped = append(grouped, Resolved{Text: acc})
	}
	return grouped
}
