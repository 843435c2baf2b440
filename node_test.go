package motion

import (
	"math"
	"testing"
)

// unitSquare returns a closed unit square centered at c.
func unitSquare(name string, c Vec3) *Node {
	return NewPolygon(name,
		c.Add(V2(-0.5, -0.5)), c.Add(V2(0.5, -0.5)),
		c.Add(V2(0.5, 0.5)), c.Add(V2(-0.5, 0.5)),
	)
}

// --- Constructor defaults ---

func TestNewContainerDefaults(t *testing.T) {
	n := NewContainer("test")
	assertNodeDefaults(t, n, "test")
	if len(n.Points) != 0 {
		t.Errorf("Points = %v, want none", n.Points)
	}
	if !n.Bounds().IsEmpty() {
		t.Error("empty container should have empty bounds")
	}
}

func TestNewShapeCopiesPoints(t *testing.T) {
	pts := []Vec3{V2(0, 0), V2(1, 0)}
	n := NewShape("line", pts...)
	assertNodeDefaults(t, n, "line")
	pts[0] = V2(9, 9)
	if n.Points[0] != V2(0, 0) {
		t.Error("NewShape should copy its points")
	}
	if n.Closed {
		t.Error("shape should be open")
	}
}

func TestNewRegularPolygon(t *testing.T) {
	n := NewRegularPolygon("hex", V2(1, 1), 2, 6)
	if !n.Closed || len(n.Points) != 6 {
		t.Fatalf("Closed = %v, len = %d", n.Closed, len(n.Points))
	}
	assertVec(t, "first vertex", n.Points[0], V2(3, 1))
	for _, p := range n.Points {
		assertNear(t, "radius", p.Dist(V2(1, 1)), 2)
	}
	if len(NewRegularPolygon("min", Vec3{}, 1, 1).Points) != 3 {
		t.Error("fewer than 3 sides should be raised to 3")
	}
}

func assertNodeDefaults(t *testing.T, n *Node, name string) {
	t.Helper()
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.DrawAlpha() != 1 || n.FillAlpha() != 1 {
		t.Errorf("alpha = (%v, %v), want (1, 1)", n.DrawAlpha(), n.FillAlpha())
	}
	if !n.Visible {
		t.Error("Visible should be true")
	}
}

func TestUniqueIDs(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	c := NewDot("c", Vec3{})
	if a.ID == b.ID || b.ID == c.ID || a.ID == c.ID {
		t.Errorf("IDs should be unique: %d, %d, %d", a.ID, b.ID, c.ID)
	}
}

// --- Geometry ---

func TestNodeCenterAndBounds(t *testing.T) {
	n := NewShape("tri", V2(0, 0), V2(4, 0), V2(0, 2))
	b := n.Bounds()
	assertVec(t, "min", b.Min, V2(0, 0))
	assertVec(t, "max", b.Max, V2(4, 2))
	assertVec(t, "center", n.Center(), V2(2, 1))
}

func TestNodeTransformsApplyToSubtree(t *testing.T) {
	parent := unitSquare("parent", Vec3{})
	child := NewDot("child", V2(2, 0))
	parent.AddChild(child)

	parent.Shift(V2(1, 1))
	assertVec(t, "child shifted", child.Points[0], V2(3, 1))

	parent.Rotate(V2(1, 1), math.Pi/2)
	assertVec(t, "child rotated", child.Points[0], V2(1, 3))

	parent.Scale(V2(1, 1), 2, 2, 1)
	assertVec(t, "child scaled", child.Points[0], V2(1, 5))

	parent.ApplyTransform(Translation(V2(0, -5)))
	assertVec(t, "child transformed", child.Points[0], V2(1, 0))
}

func TestNodeSnapshotIsDeep(t *testing.T) {
	n := unitSquare("sq", Vec3{})
	child := NewDot("dot", V2(5, 5))
	n.AddChild(child)
	snap := n.SaveState()

	n.Shift(V2(10, 0))
	n.SetDrawAlpha(0.2)
	n.SetFillAlpha(0.3)
	n.SetVisible(false)

	snap.Restore()
	assertVec(t, "center", n.Center(), V2(2.25, 2.25))
	assertVec(t, "child", child.Points[0], V2(5, 5))
	if n.DrawAlpha() != 1 || child.FillAlpha() != 1 || !child.Visible {
		t.Error("style not restored")
	}

	// Mutating after a restore must not leak into the snapshot.
	n.Points[0] = V2(100, 100)
	snap.Restore()
	assertVec(t, "restored again", n.Points[0], V2(-0.5, -0.5))
}

func TestNodeSnapshotsAreIndependent(t *testing.T) {
	n := NewDot("d", Vec3{})
	first := n.SaveState()
	n.Shift(V2(1, 0))
	second := n.SaveState()
	n.Shift(V2(1, 0))

	first.Restore()
	assertVec(t, "first", n.Points[0], Vec3{})
	second.Restore()
	assertVec(t, "second", n.Points[0], V2(1, 0))
}

func TestNodeAlphaOnSubtree(t *testing.T) {
	parent := NewContainer("p")
	child := NewContainer("c")
	parent.AddChild(child)
	parent.SetDrawAlpha(0.5)
	parent.SetFillAlpha(0.25)
	parent.SetVisible(false)
	if child.DrawAlpha() != 0.5 || child.FillAlpha() != 0.25 || child.Visible {
		t.Error("style setters should reach descendants")
	}
}

// --- Tree manipulation ---

func TestAddChildBasic(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("child.Parent should be parent")
	}
	if parent.NumChildren() != 1 || parent.Children()[0] != child {
		t.Errorf("NumChildren = %d, want 1", parent.NumChildren())
	}
}

func TestAddChildReparent(t *testing.T) {
	p1 := NewContainer("p1")
	p2 := NewContainer("p2")
	child := NewContainer("child")

	p1.AddChild(child)
	p2.AddChild(child)
	if p1.NumChildren() != 0 {
		t.Error("p1 should have 0 children after reparent")
	}
	if child.Parent != p2 {
		t.Error("child.Parent should be p2")
	}
}

func TestAddChildCyclePanic(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	grandchild := NewContainer("grandchild")
	parent.AddChild(child)
	child.AddChild(grandchild)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for cycle, got none")
		}
	}()
	grandchild.AddChild(parent)
}

func TestAddNilChildPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil child")
		}
	}()
	NewContainer("p").AddChild(nil)
}

func TestRemoveChildWrongParentPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for wrong parent")
		}
	}()
	NewContainer("p").RemoveChild(NewContainer("c"))
}

func TestRemoveFromParentAndChildren(t *testing.T) {
	parent := NewContainer("parent")
	a := NewContainer("a")
	b := NewContainer("b")
	parent.AddChild(a)
	parent.AddChild(b)

	a.RemoveFromParent()
	if a.Parent != nil || parent.NumChildren() != 1 {
		t.Error("RemoveFromParent did not detach")
	}
	a.RemoveFromParent() // no parent: no-op

	parent.RemoveChildren()
	if b.Parent != nil || parent.NumChildren() != 0 {
		t.Error("RemoveChildren did not detach")
	}
}

func TestDispose(t *testing.T) {
	parent := NewContainer("parent")
	child := NewDot("child", Vec3{})
	grandchild := NewDot("grandchild", Vec3{})
	parent.AddChild(child)
	child.AddChild(grandchild)

	child.Dispose()
	if !child.IsDisposed() || !grandchild.IsDisposed() {
		t.Error("Dispose should mark the subtree")
	}
	if parent.NumChildren() != 0 {
		t.Error("disposed child should be detached")
	}
	if parent.IsDisposed() {
		t.Error("parent should not be disposed")
	}
	child.Dispose() // second call is a no-op
}
