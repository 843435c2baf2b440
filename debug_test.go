package motion

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestDumpTimeline(t *testing.T) {
	n := NewDot("n", Vec3{})
	seq := MustSequence(
		Shift(2, V2(2, 0), n).WithName("right"),
		NewGroup(FadeOut(3, n), Wait(1, n)),
	)
	seq.Name = "demo"
	if err := seq.Initialize(NewScene()); err != nil {
		t.Fatal(err)
	}
	_ = seq.Advance(0.2)

	out := DumpTimeline(seq)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	checks := []string{
		`sequence "demo" status=running duration=5 t=0.2`,
		`  *@0 shift "right" status=running duration=2 t=0.5 targets=1`,
		`   @2 group "" status=not-started duration=3`,
		`    fade "" status=not-started duration=3`,
		`    custom "wait" status=not-started duration=1`,
	}
	for i, want := range checks {
		if !strings.HasPrefix(lines[i], want) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], want)
		}
	}
}

func TestDumpTransform(t *testing.T) {
	out := DumpTransform(Translation(V3(1, 2, 3)))
	for _, want := range []string{"Origin", "Basis", "X: (float64) 1", "Z: (float64) 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
}

func TestDebugCheckTreeDepth(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	s := NewScene()
	shallow := NewContainer("shallow")
	s.Add(shallow)
	if buf.Len() != 0 {
		t.Fatalf("unexpected warning:\n%s", buf.String())
	}

	top := NewContainer("top")
	p := top
	for i := 0; i < debugMaxTreeDepth; i++ {
		c := NewContainer("deep")
		p.AddChild(c)
		p = c
	}
	s.Add(top)
	if !strings.Contains(buf.String(), "node tree is deep") {
		t.Errorf("expected depth warning, got:\n%s", buf.String())
	}
}
