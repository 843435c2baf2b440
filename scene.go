package motion

// Scene is the reference Stage. Nodes are on stage when they hang below the
// scene's root container; other Animatable implementations are tracked in a
// membership set.
//
// Removing a node remembers where it hung, and adding it back restores that
// place while the old parent is still on stage, so a child taken off stage
// by a commit returns to its container when scrubbed back.
type Scene struct {
	root     *Node
	extras   []Animatable
	detached map[*Node]slot
}

// slot is the position a removed node held in its parent.
type slot struct {
	parent *Node
	index  int
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	return &Scene{
		root:     NewContainer("root"),
		detached: make(map[*Node]slot),
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Add puts objects on stage. Objects already on stage are left where they
// are, so a node keeps its current parent. A node removed by [Scene.Remove]
// goes back to its old parent and index when that parent is still on stage;
// any other node is appended to the root.
func (s *Scene) Add(objs ...Animatable) {
	for _, o := range objs {
		if o == nil || s.Contains(o) {
			continue
		}
		if n, ok := o.(*Node); ok {
			s.attach(n)
			n.walk(debugCheckTreeDepth)
			continue
		}
		s.extras = append(s.extras, o)
	}
}

// Remove takes objects off stage. Objects not on stage are ignored.
func (s *Scene) Remove(objs ...Animatable) {
	for _, o := range objs {
		if n, ok := o.(*Node); ok {
			if n != s.root && isAncestor(s.root, n) {
				s.detached[n] = slot{parent: n.Parent, index: n.Parent.childIndex(n)}
				n.RemoveFromParent()
			}
			continue
		}
		for i, e := range s.extras {
			if e == o {
				copy(s.extras[i:], s.extras[i+1:])
				s.extras[len(s.extras)-1] = nil
				s.extras = s.extras[:len(s.extras)-1]
				break
			}
		}
	}
}

func (s *Scene) attach(n *Node) {
	sl, ok := s.detached[n]
	delete(s.detached, n)
	if ok && !sl.parent.IsDisposed() && isAncestor(s.root, sl.parent) && !isAncestor(n, sl.parent) {
		sl.parent.insertChild(n, sl.index)
		return
	}
	s.root.AddChild(n)
}

// Contains reports whether obj is on stage.
func (s *Scene) Contains(obj Animatable) bool {
	if n, ok := obj.(*Node); ok {
		return n != s.root && isAncestor(s.root, n)
	}
	for _, e := range s.extras {
		if e == obj {
			return true
		}
	}
	return false
}

// Walk visits every node on stage, parents before children. The root is not
// visited.
func (s *Scene) Walk(fn func(*Node)) {
	for _, child := range s.root.children {
		child.walk(fn)
	}
}

// Extras returns the non-Node objects on stage. The returned slice MUST NOT
// be mutated by the caller.
func (s *Scene) Extras() []Animatable {
	return s.extras
}
