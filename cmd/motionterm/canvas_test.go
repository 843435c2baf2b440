package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/motion"
)

func TestCanvasToCell(t *testing.T) {
	c := newCanvas(40, 20, 4)
	tests := []struct {
		p    motion.Vec3
		x, y int
	}{
		{motion.Vec3{}, 20, 10},
		{motion.V2(1, 0), 24, 10},
		{motion.V2(0, 1), 20, 8},
		{motion.V2(-2, -2), 12, 14},
	}
	for _, tt := range tests {
		x, y := c.toCell(tt.p)
		if x != tt.x || y != tt.y {
			t.Errorf("toCell(%v) = (%d, %d), want (%d, %d)", tt.p, x, y, tt.x, tt.y)
		}
	}
}

func TestCanvasResizeRecenters(t *testing.T) {
	c := newCanvas(40, 20, 4)
	c.resize(20, 10)
	if x, y := c.toCell(motion.Vec3{}); x != 10 || y != 5 {
		t.Errorf("origin after resize = (%d, %d), want (10, 5)", x, y)
	}
}

func TestCanvasFollow(t *testing.T) {
	c := newCanvas(40, 20, 4)
	dot := motion.NewDot("dot", motion.V2(3, 2))
	c.cam.Follow(dot, motion.Vec3{}, 1)
	c.cam.Update(0)
	if x, y := c.toCell(dot.Center()); x != 20 || y != 10 {
		t.Errorf("followed dot at (%d, %d), want (20, 10)", x, y)
	}
}

func TestCanvasLine(t *testing.T) {
	c := newCanvas(40, 20, 4)
	c.line(motion.V2(-1, 0), motion.V2(1, 0), '#', tcell.ColorRed)
	for x := 16; x <= 24; x++ {
		if c.at(x, 10).r != '#' {
			t.Errorf("cell (%d, 10) not drawn", x)
		}
	}
	if c.at(15, 10).r != 0 || c.at(25, 10).r != 0 {
		t.Error("line overshoots its endpoints")
	}

	// Off-canvas segments are clipped rather than panicking.
	c.line(motion.V2(-100, -100), motion.V2(100, 100), '+', tcell.ColorRed)
}

func TestAlphaRune(t *testing.T) {
	tests := map[float64]rune{1: '#', 0.5: '+', 0.1: '.', 0: 0}
	for a, want := range tests {
		if got := alphaRune(a); got != want {
			t.Errorf("alphaRune(%v) = %q, want %q", a, got, want)
		}
	}
}

func TestCanvasDrawAndFlush(t *testing.T) {
	sh := &show{
		scene:  motion.NewScene(),
		colors: map[*motion.Node]tcell.Color{},
	}
	dot := motion.NewDot("dot", motion.V2(1, 1))
	faded := motion.NewDot("faded", motion.V2(-1, -1))
	faded.SetDrawAlpha(0)
	sh.scene.Add(dot, faded)
	sh.colors[dot] = tcell.ColorGreen

	c := newCanvas(20, 10, 2)
	c.draw(sh)
	if got := c.at(12, 4); got.r != 'o' || got.color != tcell.ColorGreen {
		t.Errorf("dot cell = %+v", got)
	}
	if c.at(8, 6).r != 0 {
		t.Error("transparent node should not be drawn")
	}

	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(20, 10)
	c.flush(screen)
	r, _, style, _ := screen.GetContent(12, 4)
	if r != 'o' {
		t.Errorf("screen rune = %q, want 'o'", r)
	}
	if fg, _, _ := style.Decompose(); fg != tcell.ColorGreen {
		t.Errorf("screen fg = %v, want green", fg)
	}
	if r, _, _, _ := screen.GetContent(0, 0); r != ' ' {
		t.Errorf("empty cell = %q, want space", r)
	}
}
