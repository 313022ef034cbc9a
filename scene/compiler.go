package scene

import (
	"reflect"
	"sync"

	"github.com/vidmix/vidmix/internal/logx"
)

// Compiler maintains one logical component tree per output and exposes an
// idempotent Scene accessor plus a Stop teardown. It implements [Host],
// plugging into an external tree-diffing runtime.
//
// Committed trees are persistent, so Scene is safe to call concurrently
// with an in-progress update: a caller reads either the fully-old or the
// fully-new snapshot, never a half-mutated one.
type Compiler struct {
	mu      sync.Mutex
	reg     *BuilderRegistry
	root    *Node
	stopped bool

	// onUpdate fires exactly once per successful commit, synchronously,
	// after the new root is installed. It is the sole "scene possibly
	// changed" signal the output driver relies on.
	onUpdate func()
}

// NewCompiler creates a compiler resolving component types against reg.
// onUpdate may be nil.
func NewCompiler(reg *BuilderRegistry, onUpdate func()) *Compiler {
	if reg == nil {
		reg = DefaultBuilders()
	}
	return &Compiler{reg: reg, onUpdate: onUpdate}
}

// Scene compiles the current root into a scene-graph snapshot. With no
// committed root yet, an empty view is returned as the defined fallback.
func (c *Compiler) Scene() Compiled {
	c.mu.Lock()
	root := c.root
	c.mu.Unlock()

	if root == nil {
		return &ViewNode{}
	}
	return root.Scene()
}

// Root returns the currently committed root node, nil before the first
// commit.
func (c *Compiler) Root() *Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.root
}

// Stop tears the compiler down. Further commits are ignored; Scene keeps
// returning the last committed snapshot.
func (c *Compiler) Stop() {
	c.mu.Lock()
	c.stopped = true
	c.mu.Unlock()
}

// CreateInstance implements Host.
func (c *Compiler) CreateInstance(typ string, props any) *Node {
	builder, ok := c.reg.Builder(typ)
	if !ok {
		logx.Logger().Warn("scene: unknown component type, using view fallback", "type", typ)
		builder = ViewBuilder
	}
	return NewNode(typ, props, builder)
}

// CreateTextInstance implements Host.
func (c *Compiler) CreateTextInstance(text string) Child {
	return TextChild(text)
}

// AppendInitialChild implements Host.
func (c *Compiler) AppendInitialChild(parent *Node, child Child) {
	parent.AppendChild(child)
}

// FinalizeInitialChildren implements Host.
func (c *Compiler) FinalizeInitialChildren(*Node) bool { return false }

// ShouldSetTextContent implements Host.
func (c *Compiler) ShouldSetTextContent(string, any) bool { return false }

// PrepareUpdate implements Host. Props are compared structurally.
func (c *Compiler) PrepareUpdate(_ *Node, oldProps, newProps any) bool {
	return !reflect.DeepEqual(oldProps, newProps)
}

// CloneInstance implements Host.
func (c *Compiler) CloneInstance(n *Node, newProps any, keepChildren bool) *Node {
	return n.Clone(newProps, keepChildren)
}

// CloneHiddenInstance implements Host.
func (c *Compiler) CloneHiddenInstance(n *Node) *Node {
	return n.Clone(n.Props(), false)
}

// CloneHiddenTextInstance implements Host.
func (c *Compiler) CloneHiddenTextInstance(string) Child {
	return TextChild("")
}

// CreateContainerChildSet implements Host.
func (c *Compiler) CreateContainerChildSet() *ChildSet { return &ChildSet{} }

// AppendChildToContainerChildSet implements Host.
func (c *Compiler) AppendChildToContainerChildSet(set *ChildSet, child Child) {
	set.children = append(set.children, child)
}

// FinalizeContainerChildren implements Host.
func (c *Compiler) FinalizeContainerChildren(*ChildSet) {}

// ReplaceContainerChildren implements Host. Exactly one structural root
// candidate is expected; a bare-text candidate, an empty set, or multiple
// candidates leave the previously committed root in place with a warning.
func (c *Compiler) ReplaceContainerChildren(set *ChildSet) {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	if len(set.children) != 1 {
		c.mu.Unlock()
		logx.Logger().Warn("scene: commit must carry exactly one root", "got", len(set.children))
		return
	}
	root := set.children[0]
	if root.IsText() {
		c.mu.Unlock()
		logx.Logger().Warn("scene: bare-text root rejected, previous scene retained")
		return
	}
	c.root = root.Node()
	onUpdate := c.onUpdate
	c.mu.Unlock()

	if onUpdate != nil {
		onUpdate()
	}
}

// PrepareForCommit implements Host.
func (c *Compiler) PrepareForCommit() {}

// ResetAfterCommit implements Host.
func (c *Compiler) ResetAfterCommit() {}

var _ Host = (*Compiler)(nil)
