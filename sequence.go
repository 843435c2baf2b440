package motion

import (
	"log/slog"
	"math"
	"sort"

	"github.com/pkg/errors"
)

// Sequence plays its children back to back. The global time t in [0, 1] is
// mapped to absolute time T = t*total, and the child i with
// cumulative[i] <= T < cumulative[i+1] runs at local time
// (T-cumulative[i])/duration[i]. The last child is closed on the right, so
// a boundary time belongs to the later child at local time 0.
//
// Every Advance resolves the children outside the active one before the
// active one runs: later children are rewound to 0 in descending order and
// earlier children are finished at 1 in ascending order. Jumping straight to
// any t therefore yields the same state as playing up to it.
//
// Children are initialized lazily in order, so each child captures its
// baseline from the state its predecessors left behind.
type Sequence struct {
	Name       string
	children   []Animator
	durations  []float64
	cumulative []float64

	stage  Stage
	status Status
	t      float64
	active int
}

// NewSequence creates a sequence. It fails with [ErrSequenceBounds] when
// there are no children or a child duration is not a positive finite number,
// and with [ErrMissingTarget] for a nil child.
func NewSequence(children ...Animator) (*Sequence, error) {
	if len(children) == 0 {
		return nil, errors.Wrap(ErrSequenceBounds, "sequence: no children")
	}
	s := &Sequence{
		children:   children,
		durations:  make([]float64, len(children)),
		cumulative: make([]float64, len(children)+1),
		active:     -1,
	}
	for i, c := range children {
		if c == nil {
			return nil, errors.Wrapf(ErrMissingTarget, "sequence: child %d is nil", i)
		}
		d := c.Duration()
		if !(d > 0) || math.IsInf(d, 0) {
			return nil, errors.Wrapf(ErrSequenceBounds, "sequence: child %d has duration %v", i, d)
		}
		s.durations[i] = d
		s.cumulative[i+1] = s.cumulative[i] + d
	}
	return s, nil
}

// MustSequence is like NewSequence but panics on error.
func MustSequence(children ...Animator) *Sequence {
	s, err := NewSequence(children...)
	if err != nil {
		panic(err)
	}
	return s
}

// Children returns the child list. The returned slice MUST NOT be mutated by
// the caller.
func (s *Sequence) Children() []Animator { return s.children }

// Duration returns the sum of the child durations.
func (s *Sequence) Duration() float64 { return s.cumulative[len(s.children)] }

// Cumulative returns the boundary table: Cumulative()[0] is 0 and the last
// entry is the total duration. The returned slice MUST NOT be mutated by the
// caller.
func (s *Sequence) Cumulative() []float64 { return s.cumulative }

// Status returns the lifecycle state.
func (s *Sequence) Status() Status { return s.status }

// Time returns the last time passed to Advance.
func (s *Sequence) Time() float64 { return s.t }

// Active returns the index of the child that produced the last frame, or -1
// before the first Advance.
func (s *Sequence) Active() int { return s.active }

// Locate returns the child index active at global time t and its local time.
func (s *Sequence) Locate(t float64) (int, float64) {
	n := len(s.children)
	total := s.cumulative[n]
	at := t * total
	i := sort.Search(n, func(k int) bool { return s.cumulative[k+1] > at })
	if i == n {
		i = n - 1
	}
	return i, clamp01((at - s.cumulative[i]) / s.durations[i])
}

func (s *Sequence) validate() error {
	for i, c := range s.children {
		if v, ok := c.(validator); ok {
			if err := v.validate(); err != nil {
				return errors.WithMessagef(err, "sequence child %d", i)
			}
		}
	}
	return nil
}

// Initialize checks the children and keeps stage for their lazy
// initialization.
func (s *Sequence) Initialize(stage Stage) error {
	if s.status != StatusNotStarted {
		return nil
	}
	if stage == nil {
		return errors.Wrap(ErrMissingTarget, "sequence: nil stage")
	}
	if err := s.validate(); err != nil {
		return err
	}
	s.stage = stage
	s.status = StatusRunning
	return nil
}

// PrepareForAnim forwards to the child active at t if it has started.
func (s *Sequence) PrepareForAnim(t float64) error {
	if err := s.checkReady(t); err != nil {
		return err
	}
	i, lt := s.Locate(t)
	c := s.children[i]
	if c.Status() == StatusNotStarted {
		return nil
	}
	return c.PrepareForAnim(lt)
}

// Advance resolves every child for global time t. A child error aborts the
// frame.
func (s *Sequence) Advance(t float64) error {
	if err := s.checkReady(t); err != nil {
		return err
	}
	i, lt := s.Locate(t)
	if s.active >= 0 && s.active != i {
		Logger().Debug("sequence boundary crossed",
			slog.String("name", s.Name),
			slog.Int("from", s.active),
			slog.Int("to", i),
			slog.Float64("t", t),
		)
	}

	for j := len(s.children) - 1; j > i; j-- {
		if err := s.rewind(j); err != nil {
			return err
		}
	}
	for j := 0; j < i; j++ {
		if err := s.complete(j); err != nil {
			return err
		}
	}

	c := s.children[i]
	if err := c.Initialize(s.stage); err != nil {
		return s.childErr(err, i)
	}
	if err := c.PrepareForAnim(lt); err != nil {
		return s.childErr(err, i)
	}
	if err := c.Advance(lt); err != nil {
		return s.childErr(err, i)
	}
	s.active = i
	s.t = t
	s.status = StatusRunning
	return nil
}

// rewind returns child j to its unstarted state. Children that never started
// or are already rewound are left alone.
func (s *Sequence) rewind(j int) error {
	c := s.children[j]
	switch c.Status() {
	case StatusNotStarted, StatusRewound:
		return nil
	}
	if err := c.Advance(0); err != nil {
		return s.childErr(err, j)
	}
	if err := c.CleanupAt(0); err != nil {
		return s.childErr(err, j)
	}
	return nil
}

// complete brings child j to its finished state, initializing it first if
// needed. Finished children are left alone.
func (s *Sequence) complete(j int) error {
	c := s.children[j]
	if c.Status() == StatusFinished {
		return nil
	}
	if err := c.Initialize(s.stage); err != nil {
		return s.childErr(err, j)
	}
	if err := c.PrepareForAnim(1); err != nil {
		return s.childErr(err, j)
	}
	if err := c.Advance(1); err != nil {
		return s.childErr(err, j)
	}
	if err := c.CleanupAt(1); err != nil {
		return s.childErr(err, j)
	}
	return nil
}

// restoreBaseline returns every started child to the state it captured,
// latest first, which leaves the targets as they were before the sequence.
// Groups call it before any sibling applies.
func (s *Sequence) restoreBaseline() {
	for j := len(s.children) - 1; j >= 0; j-- {
		c := s.children[j]
		if c.Status() == StatusNotStarted {
			continue
		}
		if p, ok := c.(phased); ok {
			p.restoreBaseline()
		}
	}
}

// applyAt renders global time t on top of restored baselines: later children
// only undo their side effects, earlier children are reapplied at 1 in order
// and the active child is applied at its local time. No child restores its
// own baseline, so work done by siblings in the same group is kept.
func (s *Sequence) applyAt(t float64) error {
	if err := s.checkReady(t); err != nil {
		return err
	}
	i, lt := s.Locate(t)

	for j := len(s.children) - 1; j > i; j-- {
		c := s.children[j]
		switch c.Status() {
		case StatusNotStarted, StatusRewound:
			continue
		}
		if err := c.CleanupAt(0); err != nil {
			return s.childErr(err, j)
		}
	}
	for j := 0; j < i; j++ {
		c := s.children[j]
		finished := c.Status() == StatusFinished
		if !finished {
			if err := c.Initialize(s.stage); err != nil {
				return s.childErr(err, j)
			}
			if err := c.PrepareForAnim(1); err != nil {
				return s.childErr(err, j)
			}
		}
		if err := applyChild(c, 1); err != nil {
			return s.childErr(err, j)
		}
		if !finished {
			if err := c.CleanupAt(1); err != nil {
				return s.childErr(err, j)
			}
		}
	}

	c := s.children[i]
	if err := c.Initialize(s.stage); err != nil {
		return s.childErr(err, i)
	}
	if err := c.PrepareForAnim(lt); err != nil {
		return s.childErr(err, i)
	}
	if err := applyChild(c, lt); err != nil {
		return s.childErr(err, i)
	}
	s.active = i
	s.t = t
	s.status = StatusRunning
	return nil
}

// applyChild applies c at t without restoring its baseline when c supports
// it, and falls back to a full Advance otherwise.
func applyChild(c Animator, t float64) error {
	if p, ok := c.(phased); ok {
		return p.applyAt(t)
	}
	return c.Advance(t)
}

// Finish advances to 1 and commits every child.
func (s *Sequence) Finish() error {
	if err := s.Advance(1); err != nil {
		return err
	}
	return s.CleanupAt(1)
}

// CleanupAt rewinds every child at 0 and finishes every child at 1. Other
// times are ignored.
func (s *Sequence) CleanupAt(t float64) error {
	if err := s.checkReady(t); err != nil {
		return err
	}
	switch t {
	case 0:
		for j := len(s.children) - 1; j >= 0; j-- {
			if err := s.rewind(j); err != nil {
				return err
			}
		}
		s.active = -1
		s.status = StatusRewound
	case 1:
		for j := range s.children {
			if err := s.complete(j); err != nil {
				return err
			}
		}
		s.active = len(s.children) - 1
		s.status = StatusFinished
	}
	return nil
}

func (s *Sequence) checkReady(t float64) error {
	if err := checkUnitTime(t); err != nil {
		return errors.WithMessage(err, "sequence")
	}
	if s.status == StatusNotStarted {
		return errors.Wrap(ErrMissingTarget, "sequence: not initialized")
	}
	return nil
}

func (s *Sequence) childErr(err error, i int) error {
	return errors.WithMessagef(err, "sequence child %d", i)
}
