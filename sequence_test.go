package motion

import (
	"testing"

	"github.com/pkg/errors"
)

// twoStep builds the [2, 3] sequence used by the boundary tests: n moves
// right by 2 during the first child, then up by 3 during the second.
func twoStep(n *Node) *Sequence {
	return MustSequence(
		Shift(2, V2(2, 0), n).WithEasing(Linear),
		Shift(3, V2(0, 3), n).WithEasing(Linear),
	)
}

func TestSequenceCumulative(t *testing.T) {
	seq := twoStep(NewDot("n", Vec3{}))
	c := seq.Cumulative()
	if len(c) != 3 || c[0] != 0 || c[1] != 2 || c[2] != 5 {
		t.Errorf("Cumulative = %v, want [0 2 5]", c)
	}
	if seq.Duration() != 5 {
		t.Errorf("Duration = %v, want 5", seq.Duration())
	}
}

func TestSequenceLocate(t *testing.T) {
	seq := twoStep(NewDot("n", Vec3{}))
	tests := []struct {
		t     float64
		index int
		local float64
	}{
		{0, 0, 0},
		{0.2, 0, 0.5},
		{0.4, 1, 0}, // boundary belongs to the later child
		{0.7, 1, 0.5},
		{1, 1, 1}, // last child is closed on the right
	}
	for _, tt := range tests {
		i, lt := seq.Locate(tt.t)
		if i != tt.index {
			t.Errorf("Locate(%v) index = %d, want %d", tt.t, i, tt.index)
		}
		assertNear(t, "local", lt, tt.local)
	}
}

func TestSequenceBoundaryForwardEqualsJump(t *testing.T) {
	played := NewDot("played", Vec3{})
	seqA := twoStep(played)
	if err := seqA.Initialize(NewScene()); err != nil {
		t.Fatal(err)
	}
	for _, tm := range []float64{0, 0.1, 0.2, 0.3, 0.4} {
		if err := seqA.Advance(tm); err != nil {
			t.Fatal(err)
		}
	}

	jumped := NewDot("jumped", Vec3{})
	seqB := twoStep(jumped)
	if err := seqB.Initialize(NewScene()); err != nil {
		t.Fatal(err)
	}
	if err := seqB.Advance(0.4); err != nil {
		t.Fatal(err)
	}

	assertVec(t, "played", played.Points[0], V2(2, 0))
	assertVec(t, "jumped", jumped.Points[0], V2(2, 0))
	if seqA.Active() != 1 || seqB.Active() != 1 {
		t.Errorf("active = %d, %d, want 1", seqA.Active(), seqB.Active())
	}
	if seqA.Children()[0].Status() != StatusFinished || seqB.Children()[0].Status() != StatusFinished {
		t.Error("first child should be finished once the boundary is crossed")
	}
}

func TestSequenceBackwardScrub(t *testing.T) {
	n := NewDot("n", Vec3{})
	seq := twoStep(n)
	if err := seq.Initialize(NewScene()); err != nil {
		t.Fatal(err)
	}

	steps := []struct {
		t    float64
		want Vec3
	}{
		{1, V2(2, 3)},
		{0.7, V2(2, 1.5)},
		{0.2, V2(1, 0)}, // back across the boundary
		{0, V2(0, 0)},
		{0.8, V2(2, 2)}, // forward again past it
		{0.4, V2(2, 0)},
		{0.1, V2(0.5, 0)},
	}
	for _, st := range steps {
		if err := seq.Advance(st.t); err != nil {
			t.Fatal(err)
		}
		assertVec(t, "position", n.Points[0], st.want)
	}
	if seq.Children()[1].Status() != StatusRewound {
		t.Errorf("second child status = %v, want rewound", seq.Children()[1].Status())
	}
}

func TestSequenceDirectJumpsMatchPlayback(t *testing.T) {
	// Two objects, a fade-in and a shared target: every direct jump must
	// match the state reached by playing forward.
	build := func() (*Sequence, *Scene, *Node, *Node) {
		a := unitSquare("a", Vec3{})
		b := unitSquare("b", V2(5, 5))
		s := NewScene()
		s.Add(a)
		seq := MustSequence(
			Shift(1, V2(2, 0), a).WithEasing(Linear),
			FadeIn(1, b),
			RotateBy(2, 1.5, a),
			MoveTo(1, V2(-3, -3), a, b).WithEffects(*new(Effects).SetJump(1, JumpSemicircle)),
		)
		if err := seq.Initialize(s); err != nil {
			t.Fatal(err)
		}
		return seq, s, a, b
	}

	times := []float64{0.05, 0.2, 0.25, 0.33, 0.4, 0.55, 0.6, 0.8, 0.95, 1}
	played, playedScene, pa, pb := build()
	for _, tm := range times {
		if err := played.Advance(tm); err != nil {
			t.Fatal(err)
		}

		jumped, jumpedScene, ja, jb := build()
		if err := jumped.Advance(tm); err != nil {
			t.Fatal(err)
		}
		for i := range pa.Points {
			if !pa.Points[i].ApproxEqual(ja.Points[i], 1e-9) {
				t.Fatalf("t=%v: a[%d] played %v, jumped %v", tm, i, pa.Points[i], ja.Points[i])
			}
			if !pb.Points[i].ApproxEqual(jb.Points[i], 1e-9) {
				t.Fatalf("t=%v: b[%d] played %v, jumped %v", tm, i, pb.Points[i], jb.Points[i])
			}
		}
		if playedScene.Contains(pb) != jumpedScene.Contains(jb) {
			t.Fatalf("t=%v: stage membership differs", tm)
		}
		if pb.DrawAlpha() != jb.DrawAlpha() {
			t.Fatalf("t=%v: alpha played %v, jumped %v", tm, pb.DrawAlpha(), jb.DrawAlpha())
		}
	}
}

func TestSequenceRewindRemovesFadeIn(t *testing.T) {
	s := NewScene()
	a := NewDot("a", Vec3{})
	b := NewDot("b", Vec3{})
	s.Add(a)
	seq := MustSequence(Shift(1, V2(1, 0), a), FadeIn(1, b))
	if err := seq.Initialize(s); err != nil {
		t.Fatal(err)
	}
	_ = seq.Advance(0.75)
	if !s.Contains(b) {
		t.Fatal("b should be on stage while fading in")
	}
	_ = seq.Advance(0.25)
	if s.Contains(b) {
		t.Error("scrubbing back before the fade-in should take b off stage")
	}
	_ = seq.Advance(0.9)
	if !s.Contains(b) {
		t.Error("scrubbing forward again should put b back")
	}
}

func TestSequenceScrubKeepsContainerChild(t *testing.T) {
	s := NewScene()
	box := NewContainer("box")
	child := NewDot("child", Vec3{})
	box.AddChild(child)
	s.Add(box)

	seq := MustSequence(
		FadeOut(1, child).WithEasing(Linear),
		Shift(1, V2(3, 0), box).WithEasing(Linear),
	)
	if err := seq.Initialize(s); err != nil {
		t.Fatal(err)
	}
	_ = seq.Advance(0.75)
	if s.Contains(child) {
		t.Fatal("faded-out child should be off stage")
	}
	if err := seq.Advance(0.25); err != nil {
		t.Fatal(err)
	}
	if child.Parent != box {
		t.Fatalf("child parent after scrub back = %v, want box", child.Parent)
	}
	if err := seq.Advance(0.75); err != nil {
		t.Fatal(err)
	}
	if err := seq.Advance(0.25); err != nil {
		t.Fatal(err)
	}
	if child.Parent != box || box.NumChildren() != 1 {
		t.Errorf("second scrub: parent = %v, box children = %d", child.Parent, box.NumChildren())
	}
	assertNear(t, "alpha", child.DrawAlpha(), 0.5)
}

func TestSequenceIdempotentAdvance(t *testing.T) {
	n := NewDot("n", Vec3{})
	seq := twoStep(n)
	if err := seq.Initialize(NewScene()); err != nil {
		t.Fatal(err)
	}
	_ = seq.Advance(0.3)
	first := n.Points[0]
	_ = seq.Advance(0.3)
	if n.Points[0] != first {
		t.Errorf("second advance %v, first %v", n.Points[0], first)
	}
}

func TestSequenceFinishAndCleanup(t *testing.T) {
	n := NewDot("n", Vec3{})
	seq := twoStep(n)
	if err := seq.Initialize(NewScene()); err != nil {
		t.Fatal(err)
	}
	if err := seq.Finish(); err != nil {
		t.Fatal(err)
	}
	assertVec(t, "finished", n.Points[0], V2(2, 3))
	if seq.Status() != StatusFinished {
		t.Errorf("Status = %v, want finished", seq.Status())
	}
	if err := seq.Finish(); err != nil {
		t.Fatal(err)
	}

	if err := seq.CleanupAt(0); err != nil {
		t.Fatal(err)
	}
	assertVec(t, "rewound", n.Points[0], Vec3{})
	if seq.Status() != StatusRewound {
		t.Errorf("Status = %v, want rewound", seq.Status())
	}
	for i, c := range seq.Children() {
		if c.Status() != StatusRewound {
			t.Errorf("child %d status = %v, want rewound", i, c.Status())
		}
	}
}

func TestSequenceNested(t *testing.T) {
	s := NewScene()
	a := NewDot("a", Vec3{})
	b := NewDot("b", Vec3{})
	inner := MustSequence(
		Shift(1, V2(1, 0), a).WithEasing(Linear),
		Shift(1, V2(1, 0), a).WithEasing(Linear),
	)
	seq := MustSequence(
		NewGroup(inner, Shift(2, V2(0, 1), b).WithEasing(Linear)),
		Shift(2, V2(0, 1), a).WithEasing(Linear),
	)
	if err := seq.Initialize(s); err != nil {
		t.Fatal(err)
	}
	_ = seq.Advance(1)
	assertVec(t, "a end", a.Points[0], V2(2, 1))
	assertVec(t, "b end", b.Points[0], V2(0, 1))

	_ = seq.Advance(0.125)
	assertVec(t, "a quarter", a.Points[0], V2(0.5, 0))
	assertVec(t, "b quarter", b.Points[0], V2(0, 0.25))
}

func TestSequenceMalformed(t *testing.T) {
	n := NewDot("n", Vec3{})
	if _, err := NewSequence(); !errors.Is(err, ErrSequenceBounds) {
		t.Errorf("empty: err = %v, want ErrSequenceBounds", err)
	}
	if _, err := NewSequence(Shift(1, V2(1, 0), n), Shift(0, V2(1, 0), n)); !errors.Is(err, ErrSequenceBounds) {
		t.Errorf("zero duration: err = %v, want ErrSequenceBounds", err)
	}
	if _, err := NewSequence(Shift(-1, V2(1, 0), n)); !errors.Is(err, ErrSequenceBounds) {
		t.Errorf("negative duration: err = %v, want ErrSequenceBounds", err)
	}
	if _, err := NewSequence(nil); !errors.Is(err, ErrMissingTarget) {
		t.Errorf("nil child: err = %v, want ErrMissingTarget", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustSequence should panic on error")
		}
	}()
	MustSequence()
}

func TestSequenceOutOfRange(t *testing.T) {
	seq := twoStep(NewDot("n", Vec3{}))
	if err := seq.Advance(0.5); !errors.Is(err, ErrMissingTarget) {
		t.Errorf("uninitialized: err = %v, want ErrMissingTarget", err)
	}
	if err := seq.Initialize(NewScene()); err != nil {
		t.Fatal(err)
	}
	for _, bad := range []float64{-0.01, 1.01} {
		if err := seq.Advance(bad); !errors.Is(err, ErrSequenceBounds) {
			t.Errorf("Advance(%v) err = %v, want ErrSequenceBounds", bad, err)
		}
	}
}

func TestSequenceChildErrorAborts(t *testing.T) {
	n := NewDot("n", Vec3{})
	boom := errors.New("boom")
	seq := MustSequence(
		Shift(1, V2(1, 0), n),
		Custom(1, func(_ Animatable, alpha float64) error {
			if alpha > 0.5 {
				return boom
			}
			return nil
		}, n),
	)
	if err := seq.Initialize(NewScene()); err != nil {
		t.Fatal(err)
	}
	if err := seq.Advance(1); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if err := seq.Advance(0.25); err != nil {
		t.Fatalf("first child should still play: %v", err)
	}
}

func TestSequenceValidatesChildren(t *testing.T) {
	seq := MustSequence(Shift(1, V2(1, 0), NewDot("a", Vec3{})), Shift(1, V2(1, 0), nil))
	if err := seq.Initialize(NewScene()); !errors.Is(err, ErrMissingTarget) {
		t.Errorf("err = %v, want ErrMissingTarget", err)
	}
}
