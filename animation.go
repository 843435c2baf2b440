package motion

import (
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
)

// Animator is a node of an animation tree: a single [Animation] or a
// composite ([Group], [Sequence]). Time arguments are normalized to [0, 1].
//
// The lifecycle is Initialize once, then any number of Advance calls in any
// order of t, with CleanupAt at composition boundaries and Finish at the end.
// Every Advance is re-derived from t alone, so scrubbing in either direction
// is safe.
type Animator interface {
	// Duration is the play time in seconds.
	Duration() float64
	Status() Status
	Initialize(stage Stage) error
	// PrepareForAnim is an idempotent pre-step run before Advance when the
	// animator becomes active inside a sequence.
	PrepareForAnim(t float64) error
	Advance(t float64) error
	// Finish advances to 1 and commits one-time side effects. It is safe to
	// call more than once.
	Finish() error
	// CleanupAt reverts one-time side effects at t=0 and commits them at t=1.
	CleanupAt(t float64) error
}

// phased is implemented by animators that can split Advance into a restore
// step and an apply step. Groups use it so that siblings driving the same
// object all restore before any of them applies.
type phased interface {
	restoreBaseline()
	applyAt(t float64) error
}

// validator is implemented by animators that can check their targets before
// they are initialized.
type validator interface {
	validate() error
}

// Op is the primary operation of an [Animation].
type Op uint8

const (
	OpShift  Op = iota // translate by a vector
	OpScale            // scale about a pivot
	OpRotate           // rotate in the XY plane about a pivot
	OpAffine           // apply a transform rebuilt for every frame
	OpFade             // ramp draw and fill opacity
	OpCustom           // user closure
)

var opNames = [...]string{
	OpShift:  "shift",
	OpScale:  "scale",
	OpRotate: "rotate",
	OpAffine: "affine",
	OpFade:   "fade",
	OpCustom: "custom",
}

// String returns the operation name.
func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", o)
}

// TransformFunc builds the transform of an [OpAffine] animation at eased
// time alpha. pivot is the target's baseline center.
type TransformFunc func(pivot Vec3, alpha float64) (Transform, error)

// CustomFunc drives one target of an [OpCustom] animation at eased time
// alpha. The target has already been restored to its baseline.
type CustomFunc func(obj Animatable, alpha float64) error

// Animation is a timed change applied to one or more targets. The kind of
// change is selected by its [Op]; construct one with the builders in this
// package ([Shift], [ScaleBy], [TransformWith], ...) and refine it with the
// With* methods before initialization.
type Animation struct {
	// Name labels the animation in logs and dumps.
	Name string

	// AddOnStart puts the targets on stage during the animation and takes
	// them off again when rewound to 0.
	AddOnStart bool
	// RemoveOnFinish takes the targets off stage when committed at 1.
	RemoveOnFinish bool

	op       Op
	duration float64
	easing   Easing
	effects  Effects
	lag      float64

	// Operation parameters. pivot overrides each target's own center.
	vector  Vec3
	moveTo  bool
	pivot   *Vec3
	factors Vec3
	angle   float64
	fadeIn  bool
	build   TransformFunc
	custom  CustomFunc
	targets []Animatable

	// Per-target state captured by Initialize.
	stage     Stage
	baselines []Snapshot
	centers   []Vec3
	shifts    []Vec3
	alphas    []alphaBase
	paths     []*JumpPath
	added     []bool
	removed   []bool

	status Status
	t      float64
}

func newAnimation(op Op, duration float64, targets []Animatable) *Animation {
	return &Animation{
		op:       op,
		duration: duration,
		easing:   Named(EaseSmooth),
		targets:  targets,
	}
}

// WithEasing replaces the easing. nil selects linear.
func (a *Animation) WithEasing(e Easing) *Animation {
	if e == nil {
		e = Linear
	}
	a.easing = e
	return a
}

// WithEffects sets the effect layer.
func (a *Animation) WithEffects(e Effects) *Animation {
	a.effects = e
	return a
}

// WithLag staggers the targets: with ratio r each target starts r of its own
// window after the previous one. 0 runs all targets together, 1 runs them
// back to back. The ratio is clamped to [0, 1].
func (a *Animation) WithLag(r float64) *Animation {
	a.lag = clamp01(r)
	return a
}

// WithPivot makes scale, rotation and affine builders use p instead of each
// target's own center.
func (a *Animation) WithPivot(p Vec3) *Animation {
	a.pivot = &p
	return a
}

// WithName sets the name used in logs and dumps.
func (a *Animation) WithName(name string) *Animation {
	a.Name = name
	return a
}

// Op returns the primary operation.
func (a *Animation) Op() Op { return a.op }

// Duration returns the run time in seconds.
func (a *Animation) Duration() float64 { return a.duration }

// Status returns the lifecycle state.
func (a *Animation) Status() Status { return a.status }

// Time returns the last time passed to Advance.
func (a *Animation) Time() float64 { return a.t }

// Targets returns the animated objects. The returned slice MUST NOT be
// mutated by the caller.
func (a *Animation) Targets() []Animatable { return a.targets }

// Effects returns the effect layer.
func (a *Animation) Effects() Effects { return a.effects }

func (a *Animation) validate() error {
	if len(a.targets) == 0 {
		return errors.Wrapf(ErrMissingTarget, "%s: no targets", a.label())
	}
	for i, obj := range a.targets {
		if obj == nil {
			return errors.Wrapf(ErrMissingTarget, "%s: target %d is nil", a.label(), i)
		}
		if d, ok := obj.(interface{ IsDisposed() bool }); ok && d.IsDisposed() {
			return errors.Wrapf(ErrMissingTarget, "%s: target %d is disposed", a.label(), i)
		}
	}
	if a.op == OpAffine && a.build == nil {
		return errors.Wrapf(ErrMissingTarget, "%s: no transform builder", a.label())
	}
	if a.op == OpCustom && a.custom == nil {
		return errors.Wrapf(ErrMissingTarget, "%s: no custom function", a.label())
	}
	return nil
}

// Initialize registers the targets with stage and captures their baseline.
// It fails with [ErrMissingTarget] when stage or a target is unusable,
// including a [Node] whose parent container is not on stage, and
// with the builder's error when an affine animation cannot be built at its
// end points. Calling it again after success does nothing.
func (a *Animation) Initialize(stage Stage) error {
	if a.status != StatusNotStarted {
		return nil
	}
	if stage == nil {
		return errors.Wrapf(ErrMissingTarget, "%s: nil stage", a.label())
	}
	if err := a.validate(); err != nil {
		return err
	}
	if a.easing == nil {
		a.easing = Linear
	}

	n := len(a.targets)
	centers := make([]Vec3, n)
	for i, obj := range a.targets {
		centers[i] = obj.Center()
		if a.pivot != nil {
			centers[i] = *a.pivot
		}
	}
	if a.op == OpAffine {
		for i := range a.targets {
			for _, alpha := range [...]float64{0, 1} {
				if _, err := a.build(centers[i], alpha); err != nil {
					return errors.Wrapf(err, "%s: build transform at %v", a.label(), alpha)
				}
			}
		}
	}

	for i, obj := range a.targets {
		// Putting such a node on stage would pull it out of its container.
		if n, ok := obj.(*Node); ok && n.Parent != nil && !stage.Contains(n) {
			return errors.Wrapf(ErrMissingTarget, "%s: target %d (%s) belongs to a container that is not on stage",
				a.label(), i, n.Name)
		}
	}

	a.stage = stage
	a.centers = centers
	a.baselines = make([]Snapshot, n)
	a.shifts = make([]Vec3, n)
	a.alphas = make([]alphaBase, n)
	a.paths = make([]*JumpPath, n)
	a.added = make([]bool, n)
	a.removed = make([]bool, n)

	for i, obj := range a.targets {
		if !stage.Contains(obj) {
			stage.Add(obj)
			a.added[i] = true
		}
		a.baselines[i] = obj.SaveState()
		a.shifts[i] = a.vector
		if a.moveTo {
			a.shifts[i] = a.vector.Sub(obj.Center())
		}
		a.alphas[i] = readAlpha(obj)
	}

	if height, kind, ok := a.effects.Jump(); ok {
		for i, obj := range a.targets {
			start := obj.Center()
			if err := a.applyPrimary(i, obj, 1); err != nil {
				a.baselines[i].Restore()
				return err
			}
			end := obj.Center()
			a.baselines[i].Restore()
			a.paths[i] = NewJumpPath(kind, start, end, height)
		}
	}

	a.status = StatusRunning
	Logger().Debug("animation initialized",
		slog.String("name", a.label()),
		slog.String("op", a.op.String()),
		slog.Int("targets", n),
		slog.Float64("duration", a.duration),
	)
	return nil
}

// PrepareForAnim puts back on stage any target a previous cleanup removed.
func (a *Animation) PrepareForAnim(t float64) error {
	if err := a.checkReady(t); err != nil {
		return err
	}
	for i, obj := range a.targets {
		if a.removed[i] || (a.added[i] && !a.stage.Contains(obj)) {
			a.stage.Add(obj)
			a.removed[i] = false
		}
	}
	return nil
}

// Advance restores the baseline and applies the animation at t.
func (a *Animation) Advance(t float64) error {
	if err := a.checkReady(t); err != nil {
		return err
	}
	a.restoreBaseline()
	return a.applyAt(t)
}

func (a *Animation) restoreBaseline() {
	for _, b := range a.baselines {
		b.Restore()
	}
}

func (a *Animation) applyAt(t float64) error {
	for i, obj := range a.targets {
		lt := a.easing(a.targetTime(i, t))
		if err := a.applyPrimary(i, obj, lt); err != nil {
			return err
		}
		a.effects.apply(obj, lt, a.paths[i])
	}
	a.t = t
	if a.status != StatusFinished || t < 1 {
		a.status = StatusRunning
	}
	return nil
}

// targetTime maps t into target i's lag window.
func (a *Animation) targetTime(i int, t float64) float64 {
	n := len(a.targets)
	if a.lag == 0 || n < 2 {
		return t
	}
	w := 1 / (1 + float64(n-1)*a.lag)
	start := float64(i) * a.lag * w
	return Allocate(start, start+w, Linear)(t)
}

func (a *Animation) applyPrimary(i int, obj Animatable, lt float64) error {
	switch a.op {
	case OpShift:
		obj.Shift(a.shifts[i].Mul(lt))
	case OpScale:
		f := a.factors
		obj.Scale(a.centers[i], lerp(1, f.X, lt), lerp(1, f.Y, lt), lerp(1, f.Z, lt))
	case OpRotate:
		obj.Rotate(a.centers[i], a.angle*lt)
	case OpAffine:
		tr, err := a.build(a.centers[i], lt)
		if err != nil {
			return errors.Wrapf(err, "%s: build transform at %v", a.label(), lt)
		}
		obj.ApplyTransform(tr)
	case OpFade:
		f := lt
		if !a.fadeIn {
			f = 1 - lt
		}
		obj.SetDrawAlpha(a.alphas[i].draw * f)
		obj.SetFillAlpha(a.alphas[i].fill * f)
	case OpCustom:
		if err := a.custom(obj, lt); err != nil {
			return errors.Wrapf(err, "%s: custom step", a.label())
		}
	}
	return nil
}

// Finish advances to 1 and commits.
func (a *Animation) Finish() error {
	if err := a.Advance(1); err != nil {
		return err
	}
	return a.CleanupAt(1)
}

// CleanupAt handles one-time side effects. At 0 it takes off stage the
// targets this animation added and puts back the ones it removed. At 1 it
// removes the targets when RemoveOnFinish is set. Other times are ignored.
func (a *Animation) CleanupAt(t float64) error {
	if err := a.checkReady(t); err != nil {
		return err
	}
	switch t {
	case 0:
		for i, obj := range a.targets {
			if a.removed[i] {
				a.stage.Add(obj)
				a.removed[i] = false
			}
			if a.added[i] && a.AddOnStart {
				a.stage.Remove(obj)
			}
		}
		a.status = StatusRewound
	case 1:
		if a.RemoveOnFinish {
			for i, obj := range a.targets {
				if a.stage.Contains(obj) {
					a.stage.Remove(obj)
					a.removed[i] = true
				}
			}
		}
		a.status = StatusFinished
	}
	return nil
}

func (a *Animation) checkReady(t float64) error {
	if err := checkUnitTime(t); err != nil {
		return errors.WithMessage(err, a.label())
	}
	if a.status == StatusNotStarted {
		return errors.Wrapf(ErrMissingTarget, "%s: not initialized", a.label())
	}
	return nil
}

func (a *Animation) label() string {
	if a.Name != "" {
		return a.Name
	}
	return a.op.String()
}
