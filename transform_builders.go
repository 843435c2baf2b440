package motion

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// degenerateEpsilon is the length below which a correspondence vector or a
// triangle height is treated as zero.
const degenerateEpsilon = 1e-9

// Translation returns the transform that shifts every point by v.
func Translation(v Vec3) Transform {
	return NewTransform(v, V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1))
}

// Scale returns the transform that scales by (sx, sy, sz) around center.
func Scale(center Vec3, sx, sy, sz float64) Transform {
	return aroundCenter(mgl64.Diag3(mgl64.Vec3{sx, sy, sz}), center)
}

// Rotation2D returns the counterclockwise rotation by angle radians in the XY
// plane around center.
func Rotation2D(center Vec3, angle float64) Transform {
	return aroundCenter(mgl64.Rotate3DZ(angle), center)
}

// Rotation3D returns the rotation around center by ax about X, then ay about
// Y, then az about Z. Every angle is scaled by alpha, so alpha=0 is the
// identity and alpha=1 the full rotation.
func Rotation3D(center Vec3, ax, ay, az, alpha float64) Transform {
	return aroundCenter(eulerMatrix(ax*alpha, ay*alpha, az*alpha), center)
}

// Rotation3DBetweenFrames returns the rotation carrying the orthonormal frame
// built from (a->b1, a->b2) onto the frame built from (c->d1, c->d2). The
// Euler angles of the rotation are scaled by alpha and the frame origin moves
// from a towards c. At alpha=1 the result sends a to c, the direction a->b1
// to c->d1 and the plane of (a, b1, b2) onto the plane of (c, d1, d2).
func Rotation3DBetweenFrames(a, b1, b2, c, d1, d2 Vec3, alpha float64) (Transform, error) {
	u, err := orthonormalFrame(a, b1, b2)
	if err != nil {
		return Transform{}, errors.Wrap(err, "source frame")
	}
	v, err := orthonormalFrame(c, d1, d2)
	if err != nil {
		return Transform{}, errors.Wrap(err, "target frame")
	}
	rx, ry, rz := eulerAnglesXYZ(v.Mul3(u.Transpose()))
	return Compose(
		Translation(a.Neg()),
		Rotation3D(Vec3{}, rx, ry, rz, alpha),
		Translation(a.Lerp(c, alpha)),
	), nil
}

// Isomorphism2D returns the orientation-preserving similarity sending a to c
// and b to d. Rotation, uniform scale and translation are each blended from
// the identity by alpha.
func Isomorphism2D(a, b, c, d Vec3, alpha float64) (Transform, error) {
	v1 := planar(b.Sub(a))
	v2 := planar(d.Sub(c))
	l1, l2 := v1.Len(), v2.Len()
	if l1 < degenerateEpsilon || l2 < degenerateEpsilon {
		return Transform{}, errors.Wrapf(ErrDegenerateCorrespondence,
			"isomorphism needs distinct points, |AB|=%g |CD|=%g", l1, l2)
	}
	angle := math.Acos(clampUnit(v1.Dot(v2) / (l1 * l2)))
	if v1.Cross2D(v2) < 0 {
		angle = -angle
	}
	s := lerp(1, l2/l1, alpha)
	return Compose(
		Rotation2D(a, angle*alpha),
		Scale(a, s, s, 1),
		Translation(c.Sub(a).Mul(alpha)),
	), nil
}

// GeneralAffine returns the unique affine map sending the triangle (a, b, c)
// to (d, e, f), blended from the identity by alpha. The triangle normals are
// mapped onto each other, so planar points stay planar.
func GeneralAffine(a, b, c, d, e, f Vec3, alpha float64) (Transform, error) {
	src, err := triangleFrame(a, b, c)
	if err != nil {
		return Transform{}, errors.Wrap(err, "source triangle")
	}
	dst, err := triangleFrame(d, e, f)
	if err != nil {
		return Transform{}, errors.Wrap(err, "target triangle")
	}
	inv, err := src.Inverse()
	if err != nil {
		return Transform{}, err
	}
	return Interpolate(Identity(), inv.Compose(dst), alpha), nil
}

// Reflection returns the mirror that sends a to b, across the perpendicular
// bisector of ab. alpha blends the flip from the identity (alpha=0.5
// collapses the plane onto the mirror line).
func Reflection(a, b Vec3, alpha float64) (Transform, error) {
	d := planar(b.Sub(a))
	if d.Len() < degenerateEpsilon {
		return Transform{}, errors.Wrap(ErrDegenerateCorrespondence, "reflection needs distinct points")
	}
	return mirrorAt(a.Lerp(b, 0.5), math.Atan2(d.Y, d.X), 1-2*alpha, 1), nil
}

// ReflectionByAxis returns the mirror across the line through p and q,
// blended from the identity by alpha.
func ReflectionByAxis(p, q Vec3, alpha float64) (Transform, error) {
	d := planar(q.Sub(p))
	if d.Len() < degenerateEpsilon {
		return Transform{}, errors.Wrap(ErrDegenerateCorrespondence, "reflection axis needs distinct points")
	}
	return mirrorAt(p, math.Atan2(d.Y, d.X), 1, 1-2*alpha), nil
}

// RotateScaleXY aligns segment ab onto de like an isomorphism, then applies
// an independent scale along the perpendicular direction equal to the ratio of
// the signed heights of f over de and c over ab. Lengths along the segment
// scale by |de|/|ab|; heights scale by h(def)/h(abc).
func RotateScaleXY(a, b, c, d, e, f Vec3, alpha float64) (Transform, error) {
	d1 := planar(b.Sub(a))
	d2 := planar(e.Sub(d))
	l1, l2 := d1.Len(), d2.Len()
	if l1 < degenerateEpsilon || l2 < degenerateEpsilon {
		return Transform{}, errors.Wrapf(ErrDegenerateCorrespondence,
			"rotate-scale needs distinct points, |AB|=%g |DE|=%g", l1, l2)
	}
	h1 := d1.Cross2D(planar(c.Sub(a))) / l1
	h2 := d2.Cross2D(planar(f.Sub(d))) / l2
	if math.Abs(h1) < degenerateEpsilon {
		return Transform{}, errors.Wrap(ErrDegenerateCorrespondence, "rotate-scale source points are collinear")
	}
	t1 := math.Atan2(d1.Y, d1.X)
	t2 := math.Atan2(d2.Y, d2.X)
	turn := normalizeAngle(t2 - t1)
	return Compose(
		Translation(a.Neg()),
		Rotation2D(Vec3{}, -t1),
		Scale(Vec3{}, lerp(1, l2/l1, alpha), lerp(1, h2/h1, alpha), 1),
		Rotation2D(Vec3{}, t1+turn*alpha),
		Translation(a.Lerp(d, alpha)),
	), nil
}

// TransformKind names a transform constructor for [BuildTransform].
type TransformKind uint8

const (
	KindTranslation       TransformKind = iota // Vector
	KindScale                                  // Center, Factors
	KindRotation2D                             // Center, Angle
	KindRotation3D                             // Center, Angles
	KindRotation3DFrames                       // Points: A, B1, B2, C, D1, D2
	KindIsomorphism2D                          // Points: A, B, C, D
	KindGeneralAffine                          // Points: A, B, C, D, E, F
	KindReflection                             // Points: A, B
	KindReflectionAxis                         // Points: P, Q
	KindRotateScaleXY                          // Points: A, B, C, D, E, F
)

var kindNames = [...]string{
	KindTranslation:      "translation",
	KindScale:            "scale",
	KindRotation2D:       "rotation2d",
	KindRotation3D:       "rotation3d",
	KindRotation3DFrames: "rotation3d-frames",
	KindIsomorphism2D:    "isomorphism2d",
	KindGeneralAffine:    "general-affine",
	KindReflection:       "reflection",
	KindReflectionAxis:   "reflection-axis",
	KindRotateScaleXY:    "rotate-scale-xy",
}

// String returns the kind's name.
func (k TransformKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("TransformKind(%d)", k)
}

// ParseTransformKind returns the kind with the given name.
func ParseTransformKind(name string) (TransformKind, error) {
	for k, n := range kindNames {
		if n == name {
			return TransformKind(k), nil
		}
	}
	return 0, errors.Errorf("motion: unknown transform kind %q", name)
}

// TransformParams carries the inputs of a named transform. Which fields are
// read depends on the kind.
type TransformParams struct {
	Points  []Vec3
	Vector  Vec3
	Center  Vec3
	Angle   float64
	Angles  Vec3
	Factors Vec3
}

// BuildTransform constructs the full (alpha=1) transform of the given kind.
func BuildTransform(kind TransformKind, p TransformParams) (Transform, error) {
	return BuildTransformAt(kind, p, 1)
}

// BuildTransformAt constructs the transform of the given kind blended from
// the identity by alpha.
func BuildTransformAt(kind TransformKind, p TransformParams, alpha float64) (Transform, error) {
	pts := p.Points
	need := func(n int) error {
		if len(pts) != n {
			return errors.Errorf("motion: %s needs %d points, got %d", kind, n, len(pts))
		}
		return nil
	}

	switch kind {
	case KindTranslation:
		return Translation(p.Vector.Mul(alpha)), nil
	case KindScale:
		f := p.Factors
		return Scale(p.Center, lerp(1, f.X, alpha), lerp(1, f.Y, alpha), lerp(1, f.Z, alpha)), nil
	case KindRotation2D:
		return Rotation2D(p.Center, p.Angle*alpha), nil
	case KindRotation3D:
		return Rotation3D(p.Center, p.Angles.X, p.Angles.Y, p.Angles.Z, alpha), nil
	case KindRotation3DFrames:
		if err := need(6); err != nil {
			return Transform{}, err
		}
		return Rotation3DBetweenFrames(pts[0], pts[1], pts[2], pts[3], pts[4], pts[5], alpha)
	case KindIsomorphism2D:
		if err := need(4); err != nil {
			return Transform{}, err
		}
		return Isomorphism2D(pts[0], pts[1], pts[2], pts[3], alpha)
	case KindGeneralAffine:
		if err := need(6); err != nil {
			return Transform{}, err
		}
		return GeneralAffine(pts[0], pts[1], pts[2], pts[3], pts[4], pts[5], alpha)
	case KindReflection:
		if err := need(2); err != nil {
			return Transform{}, err
		}
		return Reflection(pts[0], pts[1], alpha)
	case KindReflectionAxis:
		if err := need(2); err != nil {
			return Transform{}, err
		}
		return ReflectionByAxis(pts[0], pts[1], alpha)
	case KindRotateScaleXY:
		if err := need(6); err != nil {
			return Transform{}, err
		}
		return RotateScaleXY(pts[0], pts[1], pts[2], pts[3], pts[4], pts[5], alpha)
	default:
		return Transform{}, errors.Errorf("motion: unknown transform kind %d", kind)
	}
}

// --- helpers ---

// aroundCenter returns p -> center + l*(p - center).
func aroundCenter(l mgl64.Mat3, center Vec3) Transform {
	return fromLinear(l, center.Sub(vecFromMgl(l.Mul3x1(center.mgl()))))
}

// mirrorAt scales by (sx, sy) in the frame whose origin is o and whose X axis
// points at angle theta.
func mirrorAt(o Vec3, theta, sx, sy float64) Transform {
	return Compose(
		Translation(o.Neg()),
		Rotation2D(Vec3{}, -theta),
		Scale(Vec3{}, sx, sy, 1),
		Rotation2D(Vec3{}, theta),
		Translation(o),
	)
}

// eulerMatrix returns Rz(az) * Ry(ay) * Rx(ax), the rotation applying X first.
func eulerMatrix(ax, ay, az float64) mgl64.Mat3 {
	return mgl64.Rotate3DZ(az).Mul3(mgl64.Rotate3DY(ay)).Mul3(mgl64.Rotate3DX(ax))
}

// eulerAnglesXYZ decomposes a rotation matrix r = Rz(az)*Ry(ay)*Rx(ax).
// When ay saturates at ±pi/2 only ax∓az is determined; az is pinned to 0.
func eulerAnglesXYZ(r mgl64.Mat3) (ax, ay, az float64) {
	sy := -clampUnit(r.At(2, 0))
	switch {
	case math.Abs(sy) < 1-1e-12:
		ay = math.Asin(sy)
		ax = math.Atan2(r.At(2, 1), r.At(2, 2))
		az = math.Atan2(r.At(1, 0), r.At(0, 0))
	case sy > 0:
		ay = math.Pi / 2
		ax = math.Atan2(r.At(0, 1), r.At(0, 2))
	default:
		ay = -math.Pi / 2
		ax = math.Atan2(-r.At(0, 1), -r.At(0, 2))
	}
	return ax, ay, az
}

// orthonormalFrame runs Gram-Schmidt on (b1-a, b2-a) and completes the frame
// with their cross product. Columns are the frame axes.
func orthonormalFrame(a, b1, b2 Vec3) (mgl64.Mat3, error) {
	u1 := b1.Sub(a)
	if u1.Len() < degenerateEpsilon {
		return mgl64.Mat3{}, errors.Wrap(ErrDegenerateCorrespondence, "zero-length frame axis")
	}
	u1 = u1.Normalize()
	w := b2.Sub(a)
	u2 := w.Sub(u1.Mul(w.Dot(u1)))
	if u2.Len() < degenerateEpsilon {
		return mgl64.Mat3{}, errors.Wrap(ErrDegenerateCorrespondence, "frame points are collinear")
	}
	u2 = u2.Normalize()
	return mgl64.Mat3FromCols(u1.mgl(), u2.mgl(), u1.Cross(u2).mgl()), nil
}

// triangleFrame maps the canonical triangle (0, e1, e2) onto (a, b, c), with
// e3 sent to the unit normal.
func triangleFrame(a, b, c Vec3) (Transform, error) {
	u := b.Sub(a)
	w := c.Sub(a)
	n := u.Cross(w)
	if n.Len() < degenerateEpsilon {
		return Transform{}, errors.Wrap(ErrDegenerateCorrespondence, "triangle points are collinear")
	}
	return NewTransform(a, u, w, n.Normalize()), nil
}

func planar(v Vec3) Vec3 {
	return Vec3{X: v.X, Y: v.Y}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// normalizeAngle wraps an angle into (-pi, pi].
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}
