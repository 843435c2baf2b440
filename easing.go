package motion

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"github.com/tanema/gween/ease"
)

// Easing maps normalized time to normalized time. Easings are pure and can
// be freely composed.
type Easing func(t float64) float64

// EasingKind names a preset easing curve for [Named].
type EasingKind uint8

const (
	EaseLinear    EasingKind = iota // identity
	EaseSmooth                      // 3t²-2t³
	EaseSmoother                    // 6t⁵-15t⁴+10t³
	EaseBackForth                   // 2t²-t: backs off first, then moves forward
	EaseBounce                      // bounces against the end value
	EaseInOutQuad
	EaseOutCubic
	EaseInOutSine
	EaseOutElastic
	EaseInOutBack
)

var easingNames = [...]string{
	EaseLinear:     "linear",
	EaseSmooth:     "smooth",
	EaseSmoother:   "smoother",
	EaseBackForth:  "back-forth",
	EaseBounce:     "bounce",
	EaseInOutQuad:  "in-out-quad",
	EaseOutCubic:   "out-cubic",
	EaseInOutSine:  "in-out-sine",
	EaseOutElastic: "out-elastic",
	EaseInOutBack:  "in-out-back",
}

// String returns the preset's name.
func (k EasingKind) String() string {
	if int(k) < len(easingNames) {
		return easingNames[k]
	}
	return fmt.Sprintf("EasingKind(%d)", k)
}

// ParseEasing returns the preset with the given name.
func ParseEasing(name string) (EasingKind, error) {
	for k, n := range easingNames {
		if n == name {
			return EasingKind(k), nil
		}
	}
	return 0, errors.Errorf("motion: unknown easing %q", name)
}

// Named returns the easing function for a preset. Unknown kinds fall back to
// linear.
func Named(kind EasingKind) Easing {
	switch kind {
	case EaseSmooth:
		return smooth
	case EaseSmoother:
		return smoother
	case EaseBackForth:
		return backForth
	case EaseBounce:
		return FromTween(ease.OutBounce)
	case EaseInOutQuad:
		return FromTween(ease.InOutQuad)
	case EaseOutCubic:
		return FromTween(ease.OutCubic)
	case EaseInOutSine:
		return FromTween(ease.InOutSine)
	case EaseOutElastic:
		return FromTween(ease.OutElastic)
	case EaseInOutBack:
		return FromTween(ease.InOutBack)
	default:
		return Linear
	}
}

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

func smooth(t float64) float64 { return t * t * (3 - 2*t) }

func smoother(t float64) float64 { return t * t * t * (t*(6*t-15) + 10) }

func backForth(t float64) float64 { return t * (2*t - 1) }

// FromTween adapts a gween easing function. The endpoints are pinned so that
// float32 rounding inside the tween never leaks into f(0) and f(1).
func FromTween(fn ease.TweenFunc) Easing {
	return func(t float64) float64 {
		switch {
		case t <= 0:
			return 0
		case t >= 1:
			return 1
		}
		return float64(fn(float32(t), 0, 1, 1))
	}
}

// Threshold jumps from 0 to 1 at theta: f(t) = 0 for t < theta, 1 otherwise.
func Threshold(theta float64) Easing {
	return func(t float64) float64 {
		if t < theta {
			return 0
		}
		return 1
	}
}

// Allocate confines inner to the window [a, b]: the result is 0 before a,
// 1 after b and inner rescaled in between. If b <= a the result is a step at a.
func Allocate(a, b float64, inner Easing) Easing {
	if inner == nil {
		inner = Linear
	}
	return func(t float64) float64 {
		if b <= a {
			if t < a {
				return inner(0)
			}
			return inner(1)
		}
		return inner(clamp01((t - a) / (b - a)))
	}
}

// Repeat plays inner n times over [0, 1]. n < 1 is treated as 1.
func Repeat(n int, inner Easing) Easing {
	if inner == nil {
		inner = Linear
	}
	if n < 1 {
		n = 1
	}
	return func(t float64) float64 {
		if t >= 1 {
			return inner(1)
		}
		x := t * float64(n)
		return inner(x - math.Floor(x))
	}
}

// ThereAndBack plays inner forward over the first half and backward over the
// second, so f(0) = f(1) = inner(0).
func ThereAndBack(inner Easing) Easing {
	if inner == nil {
		inner = Linear
	}
	return func(t float64) float64 {
		if t < 0.5 {
			return inner(2 * t)
		}
		return inner(2 - 2*t)
	}
}

// Reverse plays inner backwards.
func Reverse(inner Easing) Easing {
	if inner == nil {
		inner = Linear
	}
	return func(t float64) float64 { return inner(1 - t) }
}

// Chain applies outer to the result of inner.
func Chain(inner, outer Easing) Easing {
	return func(t float64) float64 { return outer(inner(t)) }
}

func clamp01(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	}
	return x
}
