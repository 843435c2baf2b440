package motion

import "math"

// nodeIDCounter is a plain counter (no atomic; motion is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the reference Animatable: a named point set with a child
// hierarchy. Geometric operations apply to the node and every descendant, so
// a container animates as one object.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Geometry. Closed marks the points as a polygon outline for renderers.
	Points []Vec3
	Closed bool

	// Style
	Visible   bool
	drawAlpha float64
	fillAlpha float64

	// Metadata
	UserData any

	disposed bool
}

// nodeState is one node's share of a snapshot.
type nodeState struct {
	points    []Vec3
	visible   bool
	drawAlpha float64
	fillAlpha float64
}

func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Visible = true
	n.drawAlpha = 1
	n.fillAlpha = 1
}

// NewContainer creates a node with no points of its own.
func NewContainer(name string) *Node {
	n := &Node{Name: name}
	nodeDefaults(n)
	return n
}

// NewShape creates an open polyline node. The points are copied.
func NewShape(name string, points ...Vec3) *Node {
	n := &Node{Name: name, Points: append([]Vec3(nil), points...)}
	nodeDefaults(n)
	return n
}

// NewPolygon creates a closed polygon node. The points are copied.
func NewPolygon(name string, points ...Vec3) *Node {
	n := NewShape(name, points...)
	n.Closed = true
	return n
}

// NewRegularPolygon creates a closed polygon with the given number of sides
// inscribed in a circle. The first vertex lies on the positive X axis.
func NewRegularPolygon(name string, center Vec3, radius float64, sides int) *Node {
	if sides < 3 {
		sides = 3
	}
	rot := Rotation2D(center, 2*math.Pi/float64(sides))
	pts := make([]Vec3, sides)
	pts[0] = center.Add(V2(radius, 0))
	for i := 1; i < sides; i++ {
		pts[i] = rot.Apply(pts[i-1])
	}
	return NewPolygon(name, pts...)
}

// NewDot creates a single-point node.
func NewDot(name string, p Vec3) *Node {
	return NewShape(name, p)
}

// --- Animatable ---

// Bounds returns the bounding box of the node's subtree.
func (n *Node) Bounds() Bounds {
	b := emptyBounds()
	n.walk(func(m *Node) {
		for _, p := range m.Points {
			b = b.Extend(p)
		}
	})
	return b
}

// Center returns the center of the subtree's bounding box.
func (n *Node) Center() Vec3 {
	return n.Bounds().Center()
}

// Shift moves the subtree by v.
func (n *Node) Shift(v Vec3) {
	n.mapPoints(func(p Vec3) Vec3 { return p.Add(v) })
}

// Rotate rotates the subtree by angle radians in the XY plane around center.
func (n *Node) Rotate(center Vec3, angle float64) {
	n.ApplyTransform(Rotation2D(center, angle))
}

// Scale scales the subtree by (sx, sy, sz) around center.
func (n *Node) Scale(center Vec3, sx, sy, sz float64) {
	n.ApplyTransform(Scale(center, sx, sy, sz))
}

// ApplyTransform maps every point of the subtree through t.
func (n *Node) ApplyTransform(t Transform) {
	n.mapPoints(t.Apply)
}

// SaveState snapshots points and style for the node and every descendant.
// Point slices are copied.
func (n *Node) SaveState() Snapshot {
	snap := &nodeSnapshot{}
	n.walk(func(m *Node) {
		snap.nodes = append(snap.nodes, m)
		snap.states = append(snap.states, nodeState{
			points:    append([]Vec3(nil), m.Points...),
			visible:   m.Visible,
			drawAlpha: m.drawAlpha,
			fillAlpha: m.fillAlpha,
		})
	})
	return snap
}

// nodeSnapshot restores a subtree captured by SaveState. Nodes added to the
// subtree after the snapshot are left untouched.
type nodeSnapshot struct {
	nodes  []*Node
	states []nodeState
}

// Restore writes the captured state back.
func (s *nodeSnapshot) Restore() {
	for i, m := range s.nodes {
		st := &s.states[i]
		m.Points = append(m.Points[:0], st.points...)
		m.Visible = st.visible
		m.drawAlpha = st.drawAlpha
		m.fillAlpha = st.fillAlpha
	}
}

// SetVisible sets visibility on the subtree.
func (n *Node) SetVisible(visible bool) {
	n.walk(func(m *Node) { m.Visible = visible })
}

// SetDrawAlpha sets the stroke opacity on the subtree.
func (n *Node) SetDrawAlpha(a float64) {
	n.walk(func(m *Node) { m.drawAlpha = a })
}

// SetFillAlpha sets the fill opacity on the subtree.
func (n *Node) SetFillAlpha(a float64) {
	n.walk(func(m *Node) { m.fillAlpha = a })
}

// DrawAlpha returns this node's stroke opacity.
func (n *Node) DrawAlpha() float64 {
	return n.drawAlpha
}

// FillAlpha returns this node's fill opacity.
func (n *Node) FillAlpha() float64 {
	return n.fillAlpha
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("motion: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("motion: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
}

// insertChild places child at index i of this node's children, clamped to
// the valid range. It detaches child from any current parent first.
func (n *Node) insertChild(child *Node, i int) {
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	if i < 0 {
		i = 0
	}
	if i > len(n.children) {
		i = len(n.children)
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = child
}

// childIndex returns the position of child among n's children, or -1.
func (n *Node) childIndex(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("motion: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
	}
	n.children = n.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.Points = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// walk visits n and its descendants depth-first, parents before children.
func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, child := range n.children {
		child.walk(fn)
	}
}

func (n *Node) mapPoints(fn func(Vec3) Vec3) {
	n.walk(func(m *Node) {
		for i, p := range m.Points {
			m.Points[i] = fn(p)
		}
	})
}

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
