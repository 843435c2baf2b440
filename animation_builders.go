package motion

// Shift moves every target by v.
func Shift(duration float64, v Vec3, objs ...Animatable) *Animation {
	a := newAnimation(OpShift, duration, objs)
	a.vector = v
	return a
}

// MoveTo moves every target so that its center ends at dest.
func MoveTo(duration float64, dest Vec3, objs ...Animatable) *Animation {
	a := newAnimation(OpShift, duration, objs)
	a.vector = dest
	a.moveTo = true
	return a
}

// ScaleBy scales every target uniformly by factor about its own center.
func ScaleBy(duration, factor float64, objs ...Animatable) *Animation {
	return ScaleXYZ(duration, V3(factor, factor, factor), objs...)
}

// ScaleXYZ scales every target by the per-axis factors about its own center.
func ScaleXYZ(duration float64, factors Vec3, objs ...Animatable) *Animation {
	a := newAnimation(OpScale, duration, objs)
	a.factors = factors
	return a
}

// RotateBy rotates every target by angle radians about its own center.
func RotateBy(duration, angle float64, objs ...Animatable) *Animation {
	a := newAnimation(OpRotate, duration, objs)
	a.angle = angle
	return a
}

// Rotate3DBy rotates every target about its own center by the Euler angles
// ax, ay, az (X first, then Y, then Z).
func Rotate3DBy(duration, ax, ay, az float64, objs ...Animatable) *Animation {
	a := newAnimation(OpAffine, duration, objs)
	a.build = func(pivot Vec3, alpha float64) (Transform, error) {
		return Rotation3D(pivot, ax, ay, az, alpha), nil
	}
	return a
}

// TransformBy blends every target from the identity to t, row by row.
func TransformBy(duration float64, t Transform, objs ...Animatable) *Animation {
	a := newAnimation(OpAffine, duration, objs)
	id := Identity()
	a.build = func(_ Vec3, alpha float64) (Transform, error) {
		return Interpolate(id, t, alpha), nil
	}
	return a
}

// TransformWith rebuilds the named transform at the eased time for every
// frame, so rotations sweep instead of blending matrix rows. Translation,
// Scale and Rotation2D kinds are scaled by alpha the same way.
func TransformWith(duration float64, kind TransformKind, p TransformParams, objs ...Animatable) *Animation {
	a := newAnimation(OpAffine, duration, objs)
	a.Name = kind.String()
	a.build = func(_ Vec3, alpha float64) (Transform, error) {
		return BuildTransformAt(kind, p, alpha)
	}
	return a
}

// Transformation uses fn to build the transform for every frame.
func Transformation(duration float64, fn TransformFunc, objs ...Animatable) *Animation {
	a := newAnimation(OpAffine, duration, objs)
	a.build = fn
	return a
}

// FadeIn ramps opacity from 0 to each target's baseline opacity. Targets are
// put on stage for the duration and taken off again when rewound.
func FadeIn(duration float64, objs ...Animatable) *Animation {
	a := newAnimation(OpFade, duration, objs)
	a.fadeIn = true
	a.AddOnStart = true
	return a
}

// FadeOut ramps opacity from each target's baseline to 0 and takes the
// targets off stage when committed.
func FadeOut(duration float64, objs ...Animatable) *Animation {
	a := newAnimation(OpFade, duration, objs)
	a.RemoveOnFinish = true
	return a
}

// Custom calls fn for every target and frame after the baseline is restored.
func Custom(duration float64, fn CustomFunc, objs ...Animatable) *Animation {
	a := newAnimation(OpCustom, duration, objs)
	a.custom = fn
	return a
}

// Wait is an animation that changes nothing. It holds its targets for
// duration seconds, which is useful as a pause inside a sequence.
func Wait(duration float64, objs ...Animatable) *Animation {
	a := newAnimation(OpCustom, duration, objs)
	a.Name = "wait"
	a.custom = func(Animatable, float64) error { return nil }
	return a
}
