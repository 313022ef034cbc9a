package scene

import "testing"

// collectBuilder records what a builder receives, for grouping tests.
func collectBuilder(got *[]Resolved) Builder {
	return func(_ any, children []Resolved) Compiled {
		*got = children
		return &ViewNode{}
	}
}

func TestGroupTextConcatenatesRuns(t *testing.T) {
	// ["a", <node>, "b", "c"] -> ["a", <scene>, "bc"]
	var got []Resolved
	n := NewNode("View", nil, collectBuilder(&got))
	n.AppendChild(TextChild("a"))
	n.AppendChild(NodeChild(NewNode("Image", ImageProps{ImageID: "img"}, ImageBuilder)))
	n.AppendChild(TextChild("b"))
	n.AppendChild(TextChild("c"))

	n.Scene()

	if len(got) != 3 {
		t.Fatalf("expected 3 grouped children, got %d", len(got))
	}
	if !got[0].IsText() || got[0].Text != "a" {
		t.Errorf("expected leading text %q, got %+v", "a", got[0])
	}
	if got[1].IsText() {
		t.Error("expected structural child in the middle")
	}
	if !got[2].IsText() || got[2].Text != "bc" {
		t.Errorf("expected trailing run %q, got %+v", "bc", got[2])
	}
}

func TestGroupTextAllTextCollapses(t *testing.T) {
	// ["a", "b", "c"] -> ["abc"]
	var got []Resolved
	n := NewNode("Text", TextProps{}, collectBuilder(&got))
	n.AppendChild(TextChild("a"))
	n.AppendChild(TextChild("b"))
	n.AppendChild(TextChild("c"))

	n.Scene()

	if len(got) != 1 {
		t.Fatalf("expected 1 grouped child, got %d", len(got))
	}
	if !got[0].IsText() || got[0].Text != "abc" {
		t.Errorf("expected %q, got %+v", "abc", got[0])
	}
}

func TestGroupTextEmpty(t *testing.T) {
	var got []Resolved
	n := NewNode("View", ViewProps{}, collectBuilder(&got))
	n.Scene()
	if len(got) != 0 {
		t.Errorf("expected no children, got %d", len(got))
	}
}

func TestCloneKeepChildrenSharesSlice(t *testing.T) {
	n := NewNode("View", ViewProps{ID: "old"}, ViewBuilder)
	n.AppendChild(TextChild("x"))
	n.AppendChild(NodeChild(NewNode("Image", ImageProps{}, ImageBuilder)))

	c := n.Clone(ViewProps{ID: "new"}, true)

	if c == n {
		t.Fatal("clone returned the same node")
	}
	if p, _ := c.Props().(ViewProps); p.ID != "new" {
		t.Errorf("expected new props, got %+v", c.Props())
	}
	if p, _ := n.Props().(ViewProps); p.ID != "old" {
		t.Errorf("original props mutated: %+v", n.Props())
	}
	// Structural sharing: same backing array, not a copy.
	if len(c.Children()) != 2 || &c.Children()[0] != &n.Children()[0] {
		t.Error("expected clone to share the original children slice")
	}
}

func TestCloneWithoutChildrenStartsEmpty(t *testing.T) {
	n := NewNode("View", ViewProps{}, ViewBuilder)
	n.AppendChild(TextChild("x"))

	c := n.Clone(ViewProps{}, false)
	if len(c.Children()) != 0 {
		t.Errorf("expected empty child list, got %d", len(c.Children()))
	}
	if c.Type() != "View" {
		t.Errorf("expected type preserved, got %q", c.Type())
	}
}

func TestSceneRecursesStructuralChildren(t *testing.T) {
	img := NewNode("Image", ImageProps{ImageID: "logo"}, ImageBuilder)
	root := NewNode("View", ViewProps{}, ViewBuilder)
	root.AppendChild(NodeChild(img))

	compiled := root.Scene()
	view, ok := compiled.(*ViewNode)
	if !ok {
		t.Fatalf("expected *ViewNode, got %T", compiled)
	}
	if len(view.Children) != 1 {
		t.Fatalf("expected 1 compiled child, got %d", len(view.Children))
	}
	imgNode, ok := view.Children[0].(*ImageNode)
	if !ok {
		t.Fatalf("expected *ImageNode child, got %T", view.Children[0])
	}
	if imgNode.ImageID != "logo" {
		t.Errorf("expected image id %q, got %q", "logo", imgNode.ImageID)
	}
}
