package motion

import "github.com/pkg/errors"

// Group plays its children in parallel: every call forwards the same t to
// each child, with no time remapping. A child error aborts the rest of the
// frame.
type Group struct {
	Name     string
	children []Animator
	duration float64
	status   Status
	t        float64
}

// NewGroup creates a group. Its duration is the longest child duration.
func NewGroup(children ...Animator) *Group {
	g := &Group{children: children}
	for _, c := range children {
		if c != nil && c.Duration() > g.duration {
			g.duration = c.Duration()
		}
	}
	return g
}

// Children returns the child list. The returned slice MUST NOT be mutated by
// the caller.
func (g *Group) Children() []Animator { return g.children }

// Duration returns the longest child duration.
func (g *Group) Duration() float64 { return g.duration }

// Time returns the last time passed to Advance.
func (g *Group) Time() float64 { return g.t }

// Status reports StatusFinished only when every child has finished.
func (g *Group) Status() Status {
	if g.status == StatusNotStarted || g.status == StatusRewound {
		return g.status
	}
	for _, c := range g.children {
		if c.Status() != StatusFinished {
			return StatusRunning
		}
	}
	return StatusFinished
}

func (g *Group) validate() error {
	if len(g.children) == 0 {
		return errors.Wrap(ErrMissingTarget, "group: no children")
	}
	for i, c := range g.children {
		if c == nil {
			return errors.Wrapf(ErrMissingTarget, "group: child %d is nil", i)
		}
		if v, ok := c.(validator); ok {
			if err := v.validate(); err != nil {
				return errors.WithMessagef(err, "group child %d", i)
			}
		}
	}
	return nil
}

// Initialize initializes every child in order.
func (g *Group) Initialize(stage Stage) error {
	if g.status != StatusNotStarted {
		return nil
	}
	if stage == nil {
		return errors.Wrap(ErrMissingTarget, "group: nil stage")
	}
	if err := g.validate(); err != nil {
		return err
	}
	for i, c := range g.children {
		if err := c.Initialize(stage); err != nil {
			return errors.WithMessagef(err, "group child %d", i)
		}
	}
	g.status = StatusRunning
	return nil
}

// PrepareForAnim forwards t to every child.
func (g *Group) PrepareForAnim(t float64) error {
	if err := g.checkReady(t); err != nil {
		return err
	}
	for _, c := range g.children {
		if err := c.PrepareForAnim(t); err != nil {
			return err
		}
	}
	return nil
}

// Advance forwards t to every child. Every child restores its baseline
// before any child applies, so children that drive the same object combine
// instead of overwriting each other. Animators from outside this package
// that cannot split the two steps are advanced one after the other.
func (g *Group) Advance(t float64) error {
	if err := g.checkReady(t); err != nil {
		return err
	}
	if !g.allPhased() {
		for _, c := range g.children {
			if err := c.Advance(t); err != nil {
				return err
			}
		}
		g.markAdvanced(t)
		return nil
	}
	g.restoreBaseline()
	return g.applyAt(t)
}

func (g *Group) allPhased() bool {
	for _, c := range g.children {
		if _, ok := c.(phased); !ok {
			return false
		}
	}
	return true
}

func (g *Group) restoreBaseline() {
	for _, c := range g.children {
		c.(phased).restoreBaseline()
	}
}

func (g *Group) applyAt(t float64) error {
	for _, c := range g.children {
		if err := c.(phased).applyAt(t); err != nil {
			return err
		}
	}
	g.markAdvanced(t)
	return nil
}

func (g *Group) markAdvanced(t float64) {
	g.t = t
	g.status = StatusRunning
}

// Finish advances to 1 and commits every child.
func (g *Group) Finish() error {
	if err := g.Advance(1); err != nil {
		return err
	}
	return g.CleanupAt(1)
}

// CleanupAt forwards to every child. Rewinding visits the children in
// reverse order.
func (g *Group) CleanupAt(t float64) error {
	if err := g.checkReady(t); err != nil {
		return err
	}
	if t == 0 {
		for i := len(g.children) - 1; i >= 0; i-- {
			if err := g.children[i].CleanupAt(0); err != nil {
				return err
			}
		}
		g.status = StatusRewound
		return nil
	}
	for _, c := range g.children {
		if err := c.CleanupAt(t); err != nil {
			return err
		}
	}
	if t == 1 {
		g.status = StatusFinished
	}
	return nil
}

func (g *Group) checkReady(t float64) error {
	if err := checkUnitTime(t); err != nil {
		return errors.WithMessage(err, "group")
	}
	if g.status == StatusNotStarted {
		return errors.Wrap(ErrMissingTarget, "group: not initialized")
	}
	return nil
}
