package reconcile

// Element describes one desired component: a type name resolved by the
// host, its props, and an ordered child list. Elements are plain
// descriptions; the runtime materializes them as host nodes.
type Element struct {
	Type     string
	Props    any
	Children []Child
}

// Child is one entry in an element's child list: a nested element or a
// raw text run.
type Child struct {
	elem *Element
	text string
}

// New creates an element.
func New(typ string, props any, children ...Child) *Element {
	return &Element{Type: typ, Props: props, Children: children}
}

// Elem wraps a nested element as a child entry.
func Elem(e *Element) Child { return Child{elem: e} }

// Text wraps a raw text run as a child entry.
func Text(s string) Child { return Child{text: s} }

// IsText reports whether the child is a raw text run.
func (c Child) IsText() bool { return c.elem == nil }

// Element returns the nested element, nil for text children.
func (c Child) Element() *Element { return c.elem }

// Text returns the text run, empty for element children.
func (c Child) Text() string { return c.text }
