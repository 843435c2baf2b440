package main

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/motion"
)

type cell struct {
	r     rune
	color tcell.Color
}

// cellAspect is the width of a terminal cell over its height.
const cellAspect = 0.5

// canvas rasterizes nodes into a grid of terminal cells through a camera
// centered on the grid. One scene unit spans scale columns and scale/2 rows.
type canvas struct {
	w, h  int
	cam   *motion.Camera
	cells []cell
}

func newCanvas(w, h int, scale float64) *canvas {
	c := &canvas{cam: motion.NewCamera(motion.Bounds{}, scale)}
	c.cam.Aspect = cellAspect
	c.resize(w, h)
	return c
}

func (c *canvas) resize(w, h int) {
	c.w, c.h = w, h
	c.cells = make([]cell, w*h)
	c.cam.SetViewport(motion.Bounds{Max: motion.V2(float64(w), float64(h))})
}

func (c *canvas) clear() {
	for i := range c.cells {
		c.cells[i] = cell{}
	}
}

func (c *canvas) at(x, y int) cell {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return cell{}
	}
	return c.cells[y*c.w+x]
}

func (c *canvas) set(x, y int, r rune, color tcell.Color) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y*c.w+x] = cell{r: r, color: color}
}

func (c *canvas) toCell(p motion.Vec3) (int, int) {
	s := c.cam.WorldToScreen(p)
	return int(math.Round(s.X)), int(math.Round(s.Y))
}

// line draws a Bresenham segment between two scene points.
func (c *canvas) line(a, b motion.Vec3, r rune, color tcell.Color) {
	x0, y0 := c.toCell(a)
	x1, y1 := c.toCell(b)
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.set(x0, y0, r, color)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// alphaRune picks a glyph whose density follows opacity. Zero means the
// node is not drawn.
func alphaRune(alpha float64) rune {
	switch {
	case alpha >= 0.66:
		return '#'
	case alpha >= 0.33:
		return '+'
	case alpha > 0.05:
		return '.'
	}
	return 0
}

func (c *canvas) drawNode(n *motion.Node, color tcell.Color) {
	if !n.Visible || len(n.Points) == 0 {
		return
	}
	r := alphaRune(n.DrawAlpha())
	if r == 0 {
		return
	}
	if len(n.Points) == 1 {
		x, y := c.toCell(n.Points[0])
		c.set(x, y, 'o', color)
		return
	}
	segments := len(n.Points) - 1
	if n.Closed {
		segments++
	}
	for i := 0; i < segments; i++ {
		c.line(n.Points[i], n.Points[(i+1)%len(n.Points)], r, color)
	}
}

// draw clears the canvas and renders every node on stage.
func (c *canvas) draw(sh *show) {
	c.clear()
	sh.scene.Walk(func(n *motion.Node) {
		color, ok := sh.colors[n]
		if !ok {
			color = tcell.ColorWhite
		}
		if c.cam.Visible(n) {
			c.drawNode(n, color)
		}
	})
}

// flush copies the canvas to screen. Empty cells are cleared.
func (c *canvas) flush(screen tcell.Screen) {
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			cl := c.cells[y*c.w+x]
			if cl.r == 0 {
				screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
				continue
			}
			screen.SetContent(x, y, cl.r, nil, tcell.StyleDefault.Foreground(cl.color))
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
