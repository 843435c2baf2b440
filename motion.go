package motion

import "math"

// Bounds is an axis-aligned box. An empty box has Min greater than Max.
type Bounds struct {
	Min, Max Vec3
}

// emptyBounds returns a box that any point extends.
func emptyBounds() Bounds {
	inf := math.Inf(1)
	return Bounds{Min: V3(inf, inf, inf), Max: V3(-inf, -inf, -inf)}
}

// IsEmpty reports whether the box contains no point.
func (b Bounds) IsEmpty() bool {
	return b.Min.X > b.Max.X
}

// Center returns the box center, or the origin for an empty box.
func (b Bounds) Center() Vec3 {
	if b.IsEmpty() {
		return Vec3{}
	}
	return b.Min.Lerp(b.Max, 0.5)
}

// Size returns the box extent along each axis.
func (b Bounds) Size() Vec3 {
	if b.IsEmpty() {
		return Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Extend returns the box grown to include p.
func (b Bounds) Extend(p Vec3) Bounds {
	return Bounds{
		Min: V3(math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y), math.Min(b.Min.Z, p.Z)),
		Max: V3(math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y), math.Max(b.Max.Z, p.Z)),
	}
}

// Contains reports whether p lies inside the box. Points on the faces are
// considered inside.
func (b Bounds) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Intersects reports whether the two boxes overlap. Touching faces count.
func (b Bounds) Intersects(o Bounds) bool {
	if b.IsEmpty() || o.IsEmpty() {
		return false
	}
	return b.Min.X <= o.Max.X && o.Min.X <= b.Max.X &&
		b.Min.Y <= o.Max.Y && o.Min.Y <= b.Max.Y &&
		b.Min.Z <= o.Max.Z && o.Min.Z <= b.Max.Z
}

// Status is the lifecycle state of an animator.
type Status uint8

const (
	StatusNotStarted Status = iota // Initialize has not run
	StatusRunning                  // advanced at least once and not finished
	StatusFinished                 // committed at t=1
	StatusRewound                  // reverted to t=0 after having started
)

var statusNames = [...]string{"not-started", "running", "finished", "rewound"}

// String returns the status name.
func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}
