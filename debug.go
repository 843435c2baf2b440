package motion

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// DumpTimeline returns an indented tree of a, one line per node with its
// kind, status, duration and last time. Sequence children are annotated
// with their start time and the active child is marked with '*'.
func DumpTimeline(a Animator) string {
	var b strings.Builder
	dumpAnimator(&b, a, 0, "")
	return b.String()
}

func dumpAnimator(b *strings.Builder, a Animator, depth int, prefix string) {
	indent := strings.Repeat("  ", depth)
	switch n := a.(type) {
	case *Sequence:
		fmt.Fprintf(b, "%s%ssequence %q status=%s duration=%g t=%g\n",
			indent, prefix, n.Name, n.Status(), n.Duration(), n.Time())
		for i, c := range n.children {
			mark := " "
			if i == n.active {
				mark = "*"
			}
			dumpAnimator(b, c, depth+1, fmt.Sprintf("%s@%g ", mark, n.cumulative[i]))
		}
	case *Group:
		fmt.Fprintf(b, "%s%sgroup %q status=%s duration=%g t=%g\n",
			indent, prefix, n.Name, n.Status(), n.Duration(), n.Time())
		for _, c := range n.children {
			dumpAnimator(b, c, depth+1, "")
		}
	case *Animation:
		fmt.Fprintf(b, "%s%s%s %q status=%s duration=%g t=%g targets=%d\n",
			indent, prefix, n.op, n.Name, n.Status(), n.Duration(), n.Time(), len(n.targets))
	default:
		fmt.Fprintf(b, "%s%s%T status=%s duration=%g\n",
			indent, prefix, a, a.Status(), a.Duration())
	}
}

// DumpTransform returns the origin and basis images of t in spew format.
func DumpTransform(t Transform) string {
	return dumpConfig.Sdump(struct {
		Origin Vec3
		Basis  [3]Vec3
	}{t.Origin(), [3]Vec3{t.Basis(0), t.Basis(1), t.Basis(2)}})
}

// debugMaxTreeDepth is the node depth above which Scene.Add warns.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		Logger().Warn("node tree is deep",
			slog.String("node", n.Name),
			slog.Int("depth", depth),
			slog.Int("threshold", debugMaxTreeDepth),
		)
	}
}
