package motion

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera maps scene coordinates to screen coordinates for renderers. The
// scene point (X, Y) lands at the center of Viewport. Scene +Y points up and
// screen +Y points down.
type Camera struct {
	// X and Y are the scene position the camera centers on.
	X, Y float64
	// Zoom is the number of screen units per scene unit.
	Zoom float64
	// Rotation is the camera rotation in radians (counter-clockwise).
	Rotation float64
	// Aspect scales the vertical axis relative to the horizontal one.
	// Terminal cells are about twice as tall as wide and use 0.5.
	Aspect float64
	// Viewport is the screen rectangle this camera renders into. Z is
	// ignored.
	Viewport Bounds

	followTarget Animatable
	followOffset Vec3
	followLerp   float64

	view    Transform
	inverse Transform
	dirty   bool

	scrollTween *scrollAnim
}

// NewCamera creates a camera centered on the scene origin.
func NewCamera(viewport Bounds, zoom float64) *Camera {
	return &Camera{
		Zoom:     zoom,
		Aspect:   1,
		Viewport: viewport,
		dirty:    true,
	}
}

// SetViewport replaces the viewport, typically after a window resize.
func (c *Camera) SetViewport(viewport Bounds) {
	c.Viewport = viewport
	c.dirty = true
}

// Follow makes the camera track the center of obj with the given offset and
// lerp factor. A lerp of 1 snaps immediately; lower values trail behind.
func (c *Camera) Follow(obj Animatable, offset Vec3, lerp float64) {
	c.followTarget = obj
	c.followOffset = offset
	c.followLerp = lerp
}

// Unfollow stops tracking the current target.
func (c *Camera) Unfollow() {
	c.followTarget = nil
}

// ScrollTo animates the camera to the scene position p over duration
// seconds.
func (c *Camera) ScrollTo(p Vec3, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(p.X), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(p.Y), duration, easeFn),
	}
}

// Update advances follow and scroll by dt seconds. Call it once per frame
// after the animations have been advanced.
func (c *Camera) Update(dt float32) {
	prevX, prevY := c.X, c.Y

	if c.followTarget != nil {
		target := c.followTarget.Center().Add(c.followOffset)
		c.X += (target.X - c.X) * c.followLerp
		c.Y += (target.Y - c.Y) * c.followLerp
	}

	if c.scrollTween != nil {
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(dt)
			c.X = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(dt)
			c.Y = float64(val)
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
	}

	if c.X != prevX || c.Y != prevY {
		c.dirty = true
	}
}

// MarkDirty forces the view transform to be rebuilt. Call it after setting
// X, Y, Zoom, Rotation or Aspect directly.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// View returns the scene-to-screen transform:
//
//	Translate(-X, -Y) . Rotate(-Rotation) . Scale(Zoom, -Zoom*Aspect) . Translate(viewport center)
func (c *Camera) View() Transform {
	if !c.dirty {
		return c.view
	}
	c.dirty = false

	center := c.Viewport.Center()
	center.Z = 0
	c.view = Compose(
		Translation(V2(-c.X, -c.Y)),
		Rotation2D(Vec3{}, -c.Rotation),
		Scale(Vec3{}, c.Zoom, -c.Zoom*c.Aspect, 1),
		Translation(center),
	)
	inv, err := c.view.Inverse()
	if err != nil {
		// Zero zoom: every scene point collapses to the center.
		inv = Translation(V2(c.X, c.Y))
	}
	c.inverse = inv
	return c.view
}

// WorldToScreen converts a scene point to screen coordinates.
func (c *Camera) WorldToScreen(p Vec3) Vec3 {
	return c.View().Apply(p)
}

// ScreenToWorld converts a screen point to scene coordinates.
func (c *Camera) ScreenToWorld(p Vec3) Vec3 {
	c.View()
	return c.inverse.Apply(p)
}

// VisibleBounds returns the axis-aligned box of the scene area shown in the
// viewport. Z spans 0.
func (c *Camera) VisibleBounds() Bounds {
	c.View()
	vp := c.Viewport
	corners := [4]Vec3{
		V2(vp.Min.X, vp.Min.Y), V2(vp.Max.X, vp.Min.Y),
		V2(vp.Max.X, vp.Max.Y), V2(vp.Min.X, vp.Max.Y),
	}
	b := emptyBounds()
	for _, p := range corners {
		w := c.inverse.Apply(p)
		w.Z = 0
		b = b.Extend(w)
	}
	return b
}

// Visible reports whether obj may appear in the viewport. Objects that can
// report their bounds are tested box against box; others by their center.
func (c *Camera) Visible(obj Animatable) bool {
	vis := c.VisibleBounds()
	if b, ok := obj.(interface{ Bounds() Bounds }); ok {
		ob := b.Bounds()
		if ob.IsEmpty() {
			return false
		}
		ob.Min.Z, ob.Max.Z = 0, 0
		return vis.Intersects(ob)
	}
	p := obj.Center()
	p.Z = 0
	return vis.Contains(p)
}
