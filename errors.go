package motion

import "github.com/pkg/errors"

// Error kinds reported by the engine. Returned errors wrap one of these with
// context; test with errors.Is.
var (
	// ErrSingularTransform is returned when the vector block of a transform
	// cannot be inverted.
	ErrSingularTransform = errors.New("motion: singular transform")

	// ErrDegenerateCorrespondence is returned when a constructor needs a
	// non-degenerate basis but gets zero-length vectors or collinear points.
	ErrDegenerateCorrespondence = errors.New("motion: degenerate correspondence")

	// ErrMissingTarget is returned when an animation is initialized without a
	// usable target or stage.
	ErrMissingTarget = errors.New("motion: missing animation target")

	// ErrSequenceBounds is returned for a time outside [0, 1] or a malformed
	// duration table.
	ErrSequenceBounds = errors.New("motion: sequence bounds")
)

func checkUnitTime(t float64) error {
	if t < 0 || t > 1 || t != t {
		return errors.Wrapf(ErrSequenceBounds, "time %v outside [0, 1]", t)
	}
	return nil
}
