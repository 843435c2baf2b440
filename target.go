package motion

// Animatable is the capability set an animated object must provide. The
// engine never owns an object's data; it only drives it through these calls.
type Animatable interface {
	// Center returns the reference point used by rotations, scale pulses and
	// jump paths.
	Center() Vec3
	Shift(v Vec3)
	Rotate(center Vec3, angle float64)
	Scale(center Vec3, sx, sy, sz float64)
	ApplyTransform(t Transform)

	// SaveState takes a deep snapshot of every mutable visual attribute.
	// The snapshot is owned by the caller and must never alias live data.
	SaveState() Snapshot

	SetVisible(visible bool)
	SetDrawAlpha(a float64)
	SetFillAlpha(a float64)
}

// Snapshot is an owned copy of an object's mutable state. Restore writes it
// back and may be called any number of times.
type Snapshot interface {
	Restore()
}

// AlphaReader is implemented by objects that expose their current opacity.
// Alpha pulses scale these values instead of overwriting them.
type AlphaReader interface {
	DrawAlpha() float64
	FillAlpha() float64
}

// Stage is the scene collaborator that decides which objects are drawn.
type Stage interface {
	Add(objs ...Animatable)
	Remove(objs ...Animatable)
	Contains(obj Animatable) bool
}

// ApplyTransform applies t to every object.
func ApplyTransform(t Transform, objs ...Animatable) {
	for _, o := range objs {
		o.ApplyTransform(t)
	}
}
