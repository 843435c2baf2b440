package motion

import "math"

// Effects are secondary motions layered on top of an animation's primary
// operation, keyed by the same eased time. Each effect is independently
// optional; the zero value disables all of them. Effects apply in a fixed
// order: jump, scale pulse, rotation, alpha pulse.
type Effects struct {
	jumpHeight float64
	jumpType   JumpType

	hasScale  bool
	scalePeak float64
	numTurns  int
	hasAlpha  bool
	alphaPeak float64
}

// SetJump enables a jump of the given height and path type. JumpNone or a
// zero height disables it.
func (e *Effects) SetJump(height float64, kind JumpType) *Effects {
	e.jumpHeight = height
	e.jumpType = kind
	return e
}

// SetScalePulse enables a scale pulse peaking at s at mid-animation.
func (e *Effects) SetScalePulse(s float64) *Effects {
	e.hasScale = true
	e.scalePeak = s
	return e
}

// SetTurns enables n full turns around the object's center. Zero disables.
func (e *Effects) SetTurns(n int) *Effects {
	e.numTurns = n
	return e
}

// SetAlphaPulse enables an opacity pulse reaching a at mid-animation.
func (e *Effects) SetAlphaPulse(a float64) *Effects {
	e.hasAlpha = true
	e.alphaPeak = a
	return e
}

// Jump returns the jump height and type, and whether the jump is enabled.
func (e Effects) Jump() (float64, JumpType, bool) {
	return e.jumpHeight, e.jumpType, e.jumpEnabled()
}

// ScalePulse returns the peak scale and whether the pulse is enabled.
func (e Effects) ScalePulse() (float64, bool) { return e.scalePeak, e.hasScale }

// Turns returns the number of turns.
func (e Effects) Turns() int { return e.numTurns }

// AlphaPulse returns the peak opacity and whether the pulse is enabled.
func (e Effects) AlphaPulse() (float64, bool) { return e.alphaPeak, e.hasAlpha }

// IsZero reports whether no effect is enabled.
func (e Effects) IsZero() bool {
	return !e.jumpEnabled() && !e.hasScale && e.numTurns == 0 && !e.hasAlpha
}

func (e Effects) jumpEnabled() bool {
	return e.jumpType != JumpNone && e.jumpHeight != 0
}

// PulseFactor is the parabolic pulse shared by scale and alpha pulses:
// 1 at t=0 and t=1, peak at t=0.5.
func PulseFactor(t, peak float64) float64 {
	return 1 - t*(1-t)*4*(1-peak)
}

// TurnAngle is the rotation of the turns effect at t.
func TurnAngle(t float64, turns int) float64 {
	return 2 * math.Pi * float64(turns) * t
}

// apply runs the enabled effects on obj at eased time t. path is the cached
// jump path for obj, nil when jumps are disabled.
func (e Effects) apply(obj Animatable, t float64, path *JumpPath) {
	if path != nil {
		obj.Shift(path.At(t).Sub(obj.Center()))
	}
	if e.hasScale {
		f := PulseFactor(t, e.scalePeak)
		obj.Scale(obj.Center(), f, f, f)
	}
	if e.numTurns != 0 {
		obj.Rotate(obj.Center(), TurnAngle(t, e.numTurns))
	}
	if e.hasAlpha {
		f := PulseFactor(t, e.alphaPeak)
		base := readAlpha(obj)
		obj.SetDrawAlpha(base.draw * f)
		obj.SetFillAlpha(base.fill * f)
	}
}

// alphaBase holds the current opacities of an object.
type alphaBase struct {
	draw, fill float64
}

func readAlpha(obj Animatable) alphaBase {
	if r, ok := obj.(AlphaReader); ok {
		return alphaBase{draw: r.DrawAlpha(), fill: r.FillAlpha()}
	}
	return alphaBase{draw: 1, fill: 1}
}
