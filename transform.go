package motion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// singularEpsilon is the determinant magnitude below which the vector block
// of a transform is treated as non-invertible.
const singularEpsilon = 1e-12

// Transform is an affine map of 3D space stored as a 4x4 homogeneous matrix
// applied to row vectors [1 x y z]:
//
//	| 1  ox  oy  oz |   image of the origin
//	| 0  ax  ay  az |   image of e1
//	| 0  bx  by  bz |   image of e2
//	| 0  cx  cy  cz |   image of e3
//
// The leading column is always (1, 0, 0, 0). Transforms are values; the zero
// value is not valid, use [Identity].
type Transform struct {
	m mgl64.Mat4

	backup    mgl64.Mat4
	hasBackup bool
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{m: mgl64.Ident4()}
}

// NewTransform builds the transform that sends the origin to origin and the
// canonical basis vectors to e1, e2, e3.
func NewTransform(origin, e1, e2, e3 Vec3) Transform {
	return Transform{m: mgl64.Mat4FromRows(
		mgl64.Vec4{1, origin.X, origin.Y, origin.Z},
		mgl64.Vec4{0, e1.X, e1.Y, e1.Z},
		mgl64.Vec4{0, e2.X, e2.Y, e2.Z},
		mgl64.Vec4{0, e3.X, e3.Y, e3.Z},
	)}
}

// fromLinear builds a transform from a column-vector 3x3 matrix (the image of
// e_i is column i) and an origin image.
func fromLinear(l mgl64.Mat3, origin Vec3) Transform {
	return NewTransform(origin,
		vecFromMgl(l.Col(0)),
		vecFromMgl(l.Col(1)),
		vecFromMgl(l.Col(2)),
	)
}

// Matrix returns a copy of the underlying homogeneous matrix.
func (t Transform) Matrix() mgl64.Mat4 {
	return t.m
}

// Origin returns the image of the origin.
func (t Transform) Origin() Vec3 {
	return t.row(0)
}

// Basis returns the image of the i-th canonical basis vector (i in 0..2).
// Panics if i is out of range.
func (t Transform) Basis(i int) Vec3 {
	if i < 0 || i > 2 {
		panic("motion: basis index out of range")
	}
	return t.row(i + 1)
}

func (t Transform) row(r int) Vec3 {
	return Vec3{X: t.m.At(r, 1), Y: t.m.At(r, 2), Z: t.m.At(r, 3)}
}

// linear returns the vector block as a column-vector matrix, so that
// linear().Mul3x1(v) is the image of v without translation.
func (t Transform) linear() mgl64.Mat3 {
	return mgl64.Mat3FromCols(t.row(1).mgl(), t.row(2).mgl(), t.row(3).mgl())
}

// Apply maps a point.
func (t Transform) Apply(p Vec3) Vec3 {
	return t.Origin().Add(t.ApplyVector(p))
}

// ApplyVector maps a displacement vector, ignoring translation.
func (t Transform) ApplyVector(v Vec3) Vec3 {
	return vecFromMgl(t.linear().Mul3x1(v.mgl()))
}

// ApplyAll maps every point of pts in place.
func (t Transform) ApplyAll(pts []Vec3) {
	for i := range pts {
		pts[i] = t.Apply(pts[i])
	}
}

// Compose returns the transform that applies t first and then next:
// t.Compose(next).Apply(p) == next.Apply(t.Apply(p)).
func (t Transform) Compose(next Transform) Transform {
	return Transform{m: t.m.Mul4(next.m)}
}

// Compose chains transforms in application order. Compose() is the identity.
func Compose(ts ...Transform) Transform {
	out := Identity()
	for _, t := range ts {
		out = out.Compose(t)
	}
	return out
}

// Determinant returns the determinant of the vector block, the signed
// volume (or area, for planar maps) scale factor.
func (t Transform) Determinant() float64 {
	return t.linear().Det()
}

// Inverse returns the inverse map. Fails with ErrSingularTransform if the
// vector block collapses space.
func (t Transform) Inverse() (Transform, error) {
	l := t.linear()
	det := l.Det()
	if math.Abs(det) < singularEpsilon || math.IsNaN(det) {
		return Transform{}, errors.Wrapf(ErrSingularTransform, "determinant %g", det)
	}
	inv := l.Inv()
	origin := vecFromMgl(inv.Mul3x1(t.Origin().mgl())).Neg()
	return fromLinear(inv, origin), nil
}

// Interpolate blends a and b row by row: every entry of the result is
// (1-lambda)*a + lambda*b. This is a plain linear blend of the image rows and
// not a rotation/scale decomposition, so the midpoint of two rotations is in
// general not a rotation.
func Interpolate(a, b Transform, lambda float64) Transform {
	var out mgl64.Mat4
	for i := range out {
		out[i] = a.m[i] + (b.m[i]-a.m[i])*lambda
	}
	return Transform{m: out}
}

// ApproxEqual reports whether every matrix entry of t and o differs by at
// most eps.
func (t Transform) ApproxEqual(o Transform, eps float64) bool {
	for i := range t.m {
		if math.Abs(t.m[i]-o.m[i]) > eps {
			return false
		}
	}
	return true
}

// IsIdentity reports whether t is exactly the identity.
func (t Transform) IsIdentity() bool {
	return t.m == mgl64.Ident4()
}

// SaveState stores a copy of the current matrix. The backup is an owned value
// and never aliases the live matrix.
func (t *Transform) SaveState() {
	t.backup = t.m
	t.hasBackup = true
}

// RestoreState restores the matrix saved by SaveState. No-op if nothing was
// saved.
func (t *Transform) RestoreState() {
	if !t.hasBackup {
		return
	}
	t.m = t.backup
}
