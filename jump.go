package motion

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// JumpType selects the shape of a jump path.
type JumpType uint8

const (
	JumpNone        JumpType = iota // no jump
	JumpSemicircle                  // circular arc; a true semicircle when the height is half the span
	JumpElliptical                  // half ellipse
	JumpTriangular                  // straight up to the apex at mid-span, then straight down
	JumpParabolical                 // parabola
	JumpSinusoidal                  // one sine hump
	JumpSinusoidal2                 // squared sine, flat at both ends
	JumpCrane                       // up, across, down
)

var jumpNames = [...]string{
	JumpNone:        "none",
	JumpSemicircle:  "semicircle",
	JumpElliptical:  "elliptical",
	JumpTriangular:  "triangular",
	JumpParabolical: "parabolical",
	JumpSinusoidal:  "sinusoidal",
	JumpSinusoidal2: "sinusoidal2",
	JumpCrane:       "crane",
}

// String returns the jump type's name.
func (j JumpType) String() string {
	if int(j) < len(jumpNames) {
		return jumpNames[j]
	}
	return fmt.Sprintf("JumpType(%d)", j)
}

// ParseJumpType returns the jump type with the given name.
func ParseJumpType(name string) (JumpType, error) {
	for k, n := range jumpNames {
		if n == name {
			return JumpType(k), nil
		}
	}
	return JumpNone, errors.Errorf("motion: unknown jump type %q", name)
}

// JumpPath is a precomputed curve from Start to End whose perpendicular
// excursion equals Height. Positive heights bulge to the left of the
// direction of travel in the XY plane. Build it once with [NewJumpPath] and
// sample it every frame with [JumpPath.At].
type JumpPath struct {
	Type   JumpType
	Start  Vec3
	End    Vec3
	Height float64

	span   float64
	dir    Vec3 // unit vector along Start->End
	normal Vec3 // unit planar normal, left of dir

	// semicircle
	radius    float64
	halfAngle float64

	// crane segment lengths
	craneTotal float64
}

// NewJumpPath precomputes the path for the given endpoints, height and type.
func NewJumpPath(kind JumpType, start, end Vec3, height float64) *JumpPath {
	p := &JumpPath{Type: kind, Start: start, End: end, Height: height}
	d := end.Sub(start)
	p.span = d.Len()
	if p.span > 0 {
		p.dir = d.Mul(1 / p.span)
	}
	p.normal = V2(-p.dir.Y, p.dir.X).Normalize()
	if p.normal == (Vec3{}) {
		// Zero span: bulge along +X.
		p.normal = V2(1, 0)
	}

	s := math.Abs(height)
	switch kind {
	case JumpSemicircle:
		if s > 0 && p.span > 0 {
			c := p.span / 2
			p.radius = (c*c + s*s) / (2 * s)
			p.halfAngle = math.Atan2(c, p.radius-s)
		}
	case JumpCrane:
		p.craneTotal = 2*s + p.span
	}
	return p
}

// At returns the point at parameter t in [0, 1]. At(0) is Start and At(1) is
// End.
func (p *JumpPath) At(t float64) Vec3 {
	u, v := p.local(t)
	return p.Start.Add(p.dir.Mul(u)).Add(p.normal.Mul(v))
}

// local returns the position at t as (distance along the chord, signed
// perpendicular offset).
func (p *JumpPath) local(t float64) (u, v float64) {
	h := p.Height
	d := p.span
	switch p.Type {
	case JumpSemicircle:
		if p.radius == 0 {
			return t * d, 0
		}
		theta := math.Pi/2 + p.halfAngle - 2*p.halfAngle*t
		s := math.Abs(h)
		x := d/2 + p.radius*math.Cos(theta)
		y := s - p.radius + p.radius*math.Sin(theta)
		return x, math.Copysign(y, h)
	case JumpElliptical:
		theta := math.Pi * (1 - t)
		return d/2 + d/2*math.Cos(theta), h * math.Sin(theta)
	case JumpTriangular:
		return t * d, h * (1 - math.Abs(2*t-1))
	case JumpParabolical:
		return t * d, h * 4 * t * (1 - t)
	case JumpSinusoidal:
		return t * d, h * math.Sin(math.Pi*t)
	case JumpSinusoidal2:
		s := math.Sin(math.Pi * t)
		return t * d, h * s * s
	case JumpCrane:
		if p.craneTotal == 0 {
			return 0, 0
		}
		s := math.Abs(h)
		l := t * p.craneTotal
		switch {
		case l < s:
			return 0, math.Copysign(l, h)
		case l < s+d:
			return l - s, h
		default:
			return d, math.Copysign(p.craneTotal-l, h)
		}
	default:
		return t * d, 0
	}
}
